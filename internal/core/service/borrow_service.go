package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/geobooks/library-system/internal/api/metrics"
	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) used to absorb
// replayed borrow submissions.
type DedupChecker interface {
	// Seen returns the inserted id recorded for key, or "" when unseen.
	Seen(ctx context.Context, key string) (string, error)
	Mark(ctx context.Context, key, insertedID string) error
}

type borrowService struct {
	borrows ports.BorrowRepository
	books   ports.BookRepository
	users   ports.UserRepository
	dedup   DedupChecker
	log     zerolog.Logger
}

// NewBorrowService returns a BorrowService implementation.
func NewBorrowService(
	borrows ports.BorrowRepository,
	books ports.BookRepository,
	users ports.UserRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.BorrowService {
	return &borrowService{
		borrows: borrows,
		books:   books,
		users:   users,
		dedup:   dedup,
		log:     log,
	}
}

// Borrow validates a borrow transaction, takes one copy, and appends a
// ledger entry. The copy decrement is conditional on stock so two racing
// borrows can never drive copies below zero.
func (s *borrowService) Borrow(ctx context.Context, in ports.BorrowInput) (*ports.BorrowResult, error) {
	start := time.Now()

	// 1. Idempotency check — replays are acknowledged, not re-applied.
	if in.IdempotencyKey != "" && s.dedup != nil {
		id, err := s.dedup.Seen(ctx, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", in.IdempotencyKey).Msg("dedup check failed, processing anyway")
		} else if id != "" {
			metrics.BorrowsDedupTotal.WithLabelValues("hit").Inc()
			s.log.Info().Str("key", in.IdempotencyKey).Str("borrow_id", id).Msg("idempotent replay")
			return &ports.BorrowResult{InsertedID: id, AlreadyExisted: true}, nil
		}
		metrics.BorrowsDedupTotal.WithLabelValues("miss").Inc()
	}

	// 2. The roll must belong to a registered user.
	if _, err := s.users.FindByRoll(ctx, in.Roll); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.BorrowsTotal.WithLabelValues("roll_not_found").Inc()
			return nil, domain.ErrRollNotFound
		}
		return nil, fmt.Errorf("verify roll: %w", err)
	}

	// 3. Take one copy. Fails at zero stock or unknown book.
	if err := s.books.DecrementCopies(ctx, in.BookID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoCopiesAvailable):
			metrics.BorrowsTotal.WithLabelValues("unavailable").Inc()
		case errors.Is(err, domain.ErrBookNotFound):
			metrics.BorrowsTotal.WithLabelValues("book_not_found").Inc()
		}
		return nil, err
	}

	borrowDate := in.BorrowDate
	if borrowDate.IsZero() {
		borrowDate = time.Now().UTC()
	}

	rec := &domain.BorrowRecord{
		Email:      in.Email,
		Roll:       in.Roll,
		BookID:     in.BookID,
		BookName:   in.BookName,
		BookCode:   in.BookCode,
		Author:     in.Author,
		BorrowDate: borrowDate,
		Returned:   false,
	}

	id, err := s.borrows.Create(ctx, rec)
	if err != nil {
		// Ledger insert failed after the copy was taken: put it back.
		if restoreErr := s.books.IncrementCopiesByCode(ctx, in.BookCode); restoreErr != nil {
			s.log.Error().Err(restoreErr).Str("code", in.BookCode).Msg("failed to restore copy after ledger error")
		}
		metrics.BorrowsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("insert borrow: %w", err)
	}

	if in.IdempotencyKey != "" && s.dedup != nil {
		if markErr := s.dedup.Mark(ctx, in.IdempotencyKey, id); markErr != nil {
			s.log.Warn().Err(markErr).Str("key", in.IdempotencyKey).Msg("failed to set dedup key")
		}
	}

	metrics.BorrowsTotal.WithLabelValues("ok").Inc()
	metrics.BorrowProcessingDuration.WithLabelValues("borrow").Observe(time.Since(start).Seconds())
	s.log.Info().
		Str("borrow_id", id).
		Str("roll", in.Roll).
		Str("book_code", in.BookCode).
		Msg("borrow recorded")

	return &ports.BorrowResult{InsertedID: id}, nil
}

func (s *borrowService) ListByEmail(ctx context.Context, email string) ([]*domain.BorrowRecord, error) {
	return s.borrows.ListByEmail(ctx, email)
}

func (s *borrowService) ListAll(ctx context.Context) ([]*domain.BorrowRecord, error) {
	return s.borrows.ListAll(ctx)
}

// Return flips the record's returned flag and restores the copy to stock.
func (s *borrowService) Return(ctx context.Context, id, bookCode string) (int64, error) {
	start := time.Now()

	rec, err := s.borrows.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if rec.Returned {
		return 0, domain.ErrAlreadyReturned
	}
	if rec.BookCode != bookCode {
		return 0, domain.ErrCodeMismatch
	}

	modified, err := s.borrows.MarkReturned(ctx, id, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("mark returned: %w", err)
	}
	if modified == 0 {
		// Raced with another return of the same record.
		return 0, domain.ErrAlreadyReturned
	}

	if err := s.books.IncrementCopiesByCode(ctx, bookCode); err != nil {
		// The ledger flip stands; log the stock discrepancy for followup.
		s.log.Error().Err(err).Str("code", bookCode).Msg("failed to restore copy on return")
	}

	metrics.ReturnsTotal.Inc()
	metrics.BorrowProcessingDuration.WithLabelValues("return").Observe(time.Since(start).Seconds())
	s.log.Info().Str("borrow_id", id).Str("book_code", bookCode).Msg("borrow returned")

	return modified, nil
}
