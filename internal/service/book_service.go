package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marceloamor/reading-list-manager/internal/cache"
	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/model"
	"github.com/marceloamor/reading-list-manager/internal/repository"
)

var (
	// ErrBookNotFound is returned when the requested book id does not exist.
	ErrBookNotFound = apperrors.New(apperrors.KindNotFound, "book not found")
	// ErrNotOwner is returned when the book exists but belongs to another
	// account. The existence check always runs first, so a missing book is
	// reported as not found rather than forbidden.
	ErrNotOwner = apperrors.New(apperrors.KindAuthorization, "you do not have access to this book")
)

// BookInput is the explicit allowlist of client-settable book fields. Owner
// identity never comes from the client.
type BookInput struct {
	Title  string
	Author string
	Genre  string
	Status string
	Notes  string
}

// BookService exposes an account's reading-list operations. Every method is
// scoped to the calling account's id.
type BookService interface {
	List(ctx context.Context, ownerID uint, filter repository.ListFilter) ([]model.Book, error)
	Create(ctx context.Context, ownerID uint, in BookInput) (*model.Book, error)
	Get(ctx context.Context, ownerID, id uint) (*model.Book, error)
	Update(ctx context.Context, ownerID, id uint, in BookInput) (*model.Book, error)
	Delete(ctx context.Context, ownerID, id uint) (uint, error)
}

type bookService struct {
	books repository.BookRepository
	cache *cache.Client
}

// NewBookService builds a BookService over the book repository.
func NewBookService(books repository.BookRepository, cacheClient *cache.Client) BookService {
	return &bookService{books: books, cache: cacheClient}
}

func (s *bookService) List(ctx context.Context, ownerID uint, filter repository.ListFilter) ([]model.Book, error) {
	books, err := s.books.FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("list books: %w", err))
	}
	return books, nil
}

func (s *bookService) Create(ctx context.Context, ownerID uint, in BookInput) (*model.Book, error) {
	if violations := validateBookInput(in); len(violations) > 0 {
		return nil, apperrors.NewValidation(violations...)
	}

	status := model.BookStatus(in.Status)
	if status == "" {
		status = model.StatusToRead
	}

	book := &model.Book{
		Title:   in.Title,
		Author:  in.Author,
		Genre:   in.Genre,
		Status:  status,
		Notes:   in.Notes,
		OwnerID: ownerID, // always the caller, never client input
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("create book: %w", err))
	}

	_ = s.cache.Delete(ctx, communityStatsCacheKey)
	return book, nil
}

func (s *bookService) Get(ctx context.Context, ownerID, id uint) (*model.Book, error) {
	return s.ownedBook(ctx, ownerID, id)
}

// Update replaces every client-settable field and refreshes updated_at.
func (s *bookService) Update(ctx context.Context, ownerID, id uint, in BookInput) (*model.Book, error) {
	book, err := s.ownedBook(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if violations := validateBookInput(in); len(violations) > 0 {
		return nil, apperrors.NewValidation(violations...)
	}

	status := model.BookStatus(in.Status)
	if status == "" {
		status = model.StatusToRead
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Genre = in.Genre
	book.Status = status
	book.Notes = in.Notes

	if err := s.books.Update(ctx, book); err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("update book: %w", err))
	}

	_ = s.cache.Delete(ctx, communityStatsCacheKey)
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, ownerID, id uint) (uint, error) {
	book, err := s.ownedBook(ctx, ownerID, id)
	if err != nil {
		return 0, err
	}

	if err := s.books.Delete(ctx, book.ID); err != nil {
		return 0, apperrors.NewStorage(fmt.Errorf("delete book: %w", err))
	}

	_ = s.cache.Delete(ctx, communityStatsCacheKey)
	return book.ID, nil
}

// ownedBook loads a book and enforces existence before ownership: a missing
// id is not found, an existing foreign-owned id is forbidden.
func (s *bookService) ownedBook(ctx context.Context, ownerID, id uint) (*model.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, apperrors.NewStorage(fmt.Errorf("load book: %w", err))
	}
	if book.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return book, nil
}
