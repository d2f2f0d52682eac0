package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/marceloamor/reading-list-manager/internal/model"
)

// ListFilter narrows an owner's book listing. Zero-valued fields impose no
// constraint. Status and Genre match exactly (case-sensitive); Search is a
// case-insensitive substring match over title or author.
type ListFilter struct {
	Status string
	Genre  string
	Search string
}

// BookRepository defines book persistence and aggregate-query operations.
// The aggregate methods never select owner columns.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByOwner(ctx context.Context, ownerID uint, filter ListFilter) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	TopBooks(ctx context.Context, limit int) ([]model.BookCount, error)
	TopGenres(ctx context.Context, limit int) ([]model.GenreCount, error)
	TopAuthors(ctx context.Context, limit int) ([]model.AuthorCount, error)
	StatusCounts(ctx context.Context) ([]model.StatusCount, error)
	SearchGrouped(ctx context.Context, query, genre string, limit int) ([]model.SearchResult, error)
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository builds a GORM-backed book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByOwner(ctx context.Context, ownerID uint, filter ListFilter) ([]model.Book, error) {
	// Status and genre columns are collated utf8mb4_bin, so plain equality
	// is already case-sensitive.
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Genre != "" {
		q = q.Where("genre = ?", filter.Genre)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", needle, needle)
	}

	books := []model.Book{}
	if err := q.Order("created_at DESC, id DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Book{}, id).Error
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Book{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *bookRepository) TopBooks(ctx context.Context, limit int) ([]model.BookCount, error) {
	results := []model.BookCount{}
	err := r.db.WithContext(ctx).Model(&model.Book{}).
		Select("title, author, COUNT(*) AS count").
		Group("title, author").
		Order("count DESC, title ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepository) TopGenres(ctx context.Context, limit int) ([]model.GenreCount, error) {
	results := []model.GenreCount{}
	err := r.db.WithContext(ctx).Model(&model.Book{}).
		Select("genre, COUNT(*) AS count").
		Where("genre <> ''").
		Group("genre").
		Order("count DESC, genre ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepository) TopAuthors(ctx context.Context, limit int) ([]model.AuthorCount, error) {
	results := []model.AuthorCount{}
	err := r.db.WithContext(ctx).Model(&model.Book{}).
		Select("author, COUNT(*) AS count").
		Where("author <> ''").
		Group("author").
		Order("count DESC, author ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepository) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	results := []model.StatusCount{}
	err := r.db.WithContext(ctx).Model(&model.Book{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC, status ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepository) SearchGrouped(ctx context.Context, query, genre string, limit int) ([]model.SearchResult, error) {
	needle := "%" + strings.ToLower(query) + "%"
	q := r.db.WithContext(ctx).Model(&model.Book{}).
		Select("title, author, genre, COUNT(*) AS count").
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", needle, needle)
	if genre != "" {
		q = q.Where("genre = ?", genre)
	}

	results := []model.SearchResult{}
	err := q.Group("title, author, genre").
		Order("count DESC, title ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
