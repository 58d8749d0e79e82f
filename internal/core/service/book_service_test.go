package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

func TestBookService_Create_SetsAddedAt(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewBookService(repo, zerolog.Nop())

	id, err := svc.Create(context.Background(), ports.CreateBookInput{
		Name:   "Atlas of Clouds",
		Code:   "AC-100",
		Author: "N. Wren",
		Copies: 3,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stored := repo.books[id]
	if stored == nil {
		t.Fatalf("book not stored")
	}
	if stored.AddedAt.IsZero() {
		t.Fatalf("AddedAt not set")
	}
	if stored.Copies != 3 {
		t.Fatalf("unexpected copies: %d", stored.Copies)
	}
}

func TestBookService_Update_EmptyImagePreservesCover(t *testing.T) {
	repo := newStubBookRepo(&domain.Book{
		ID:     "bk1",
		Name:   "Atlas of Clouds",
		Code:   "AC-100",
		Image:  "https://img.example.com/atlas.png",
		Copies: 2,
	})
	svc := NewBookService(repo, zerolog.Nop())

	modified, err := svc.Update(context.Background(), "bk1", ports.UpdateBookInput{
		Name:   "Atlas of Clouds, 2nd ed.",
		Code:   "AC-100",
		Copies: 4,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if modified != 1 {
		t.Fatalf("expected 1 modified, got %d", modified)
	}

	stored := repo.books["bk1"]
	if stored.Image != "https://img.example.com/atlas.png" {
		t.Fatalf("image replaced by empty update: %q", stored.Image)
	}
	if stored.Name != "Atlas of Clouds, 2nd ed." || stored.Copies != 4 {
		t.Fatalf("update not applied: %+v", stored)
	}
}

func TestBookService_Update_NotFound(t *testing.T) {
	svc := NewBookService(newStubBookRepo(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), "missing", ports.UpdateBookInput{Name: "x"}); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookService_Delete(t *testing.T) {
	repo := newStubBookRepo(&domain.Book{ID: "bk1", Code: "AC-100"})
	svc := NewBookService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), "bk1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := repo.books["bk1"]; ok {
		t.Fatalf("book still present after delete")
	}
}
