package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/geobooks/library-system/internal/api/metrics"
	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

// BookService manages the catalog.
type BookService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
}

func NewBookService(repo ports.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, logger: logger}
}

func (s *BookService) Create(ctx context.Context, input ports.CreateBookInput) (string, error) {
	book := &domain.Book{
		Name:        input.Name,
		Code:        input.Code,
		Author:      input.Author,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
		Copies:      input.Copies,
		AddedAt:     time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Str("code", book.Code).Msg("failed to create book")
		return "", err
	}

	metrics.BooksCreatedTotal.WithLabelValues(categoryLabel(book.Category)).Inc()
	s.logger.Info().Str("book_id", id).Str("code", book.Code).Msg("book added")
	return id, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update. An empty Image preserves the stored
// image URL: edit flows only send a replacement when one was chosen.
func (s *BookService) Update(ctx context.Context, id string, input ports.UpdateBookInput) (int64, error) {
	modified, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Str("book_id", id).Int64("modified", modified).Msg("book updated")
	return modified, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("book_id", id).Msg("book deleted")
	return nil
}

func categoryLabel(category string) string {
	if category == "" {
		return "uncategorized"
	}
	return category
}
