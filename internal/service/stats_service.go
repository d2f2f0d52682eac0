package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/marceloamor/reading-list-manager/internal/cache"
	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/model"
	"github.com/marceloamor/reading-list-manager/internal/repository"
)

const (
	topN           = 10
	searchLimit    = 20
	searchQueryMin = 2

	communityStatsCacheKey = "community:stats"
	communityStatsCacheTTL = time.Minute
)

// ErrQueryTooShort is returned when a public search query is under the
// minimum length after trimming.
var ErrQueryTooShort = apperrors.NewValidation(fmt.Sprintf("search query must be at least %d characters", searchQueryMin))

// StatsService computes the anonymised community view over every account's
// books. Nothing it returns identifies an owner.
type StatsService interface {
	Community(ctx context.Context) (*model.CommunityStats, error)
	Search(ctx context.Context, query, genre string) ([]model.SearchResult, error)
}

type statsService struct {
	books    repository.BookRepository
	accounts repository.AccountRepository
	cache    *cache.Client
}

// NewStatsService builds a StatsService over both repositories.
func NewStatsService(books repository.BookRepository, accounts repository.AccountRepository, cacheClient *cache.Client) StatsService {
	return &statsService{books: books, accounts: accounts, cache: cacheClient}
}

// Community computes the popularity rankings, status distribution and totals.
// A short-lived cached snapshot is served when present; every account or book
// write invalidates it, so reads never trail a mutation.
func (s *statsService) Community(ctx context.Context) (*model.CommunityStats, error) {
	if data, _ := s.cache.Get(ctx, communityStatsCacheKey); data != nil {
		var cached model.CommunityStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, communityStatsCacheKey, payload, communityStatsCacheTTL)
	}
	return stats, nil
}

func (s *statsService) compute(ctx context.Context) (*model.CommunityStats, error) {
	popularBooks, err := s.books.TopBooks(ctx, topN)
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("top books: %w", err))
	}
	popularGenres, err := s.books.TopGenres(ctx, topN)
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("top genres: %w", err))
	}
	popularAuthors, err := s.books.TopAuthors(ctx, topN)
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("top authors: %w", err))
	}
	statusCounts, err := s.books.StatusCounts(ctx)
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("status counts: %w", err))
	}
	totalBooks, err := s.books.Count(ctx)
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("count books: %w", err))
	}
	totalAccounts, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("count accounts: %w", err))
	}

	return &model.CommunityStats{
		PopularBooks:       popularBooks,
		PopularGenres:      popularGenres,
		PopularAuthors:     popularAuthors,
		StatusDistribution: statusCounts,
		TotalBooks:         totalBooks,
		TotalAccounts:      totalAccounts,
	}, nil
}

// Search matches title or author by case-insensitive substring and returns
// popularity-ranked (title, author, genre) groups. An empty result set is not
// an error.
func (s *statsService) Search(ctx context.Context, query, genre string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < searchQueryMin {
		return nil, ErrQueryTooShort
	}

	results, err := s.books.SearchGrouped(ctx, query, genre, searchLimit)
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("search books: %w", err))
	}
	return results, nil
}
