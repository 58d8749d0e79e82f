package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

type stubBookRepo struct {
	books     map[string]*domain.Book
	createErr error
}

func newStubBookRepo(books ...*domain.Book) *stubBookRepo {
	r := &stubBookRepo{books: make(map[string]*domain.Book)}
	for _, b := range books {
		clone := *b
		r.books[b.ID] = &clone
	}
	return r
}

func (r *stubBookRepo) Create(_ context.Context, b *domain.Book) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	clone := *b
	if clone.ID == "" {
		clone.ID = "book-" + strconv.Itoa(len(r.books)+1)
	}
	r.books[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	if b, ok := r.books[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, domain.ErrBookNotFound
}

func (r *stubBookRepo) List(_ context.Context) ([]*domain.Book, error) {
	out := make([]*domain.Book, 0, len(r.books))
	for _, b := range r.books {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBookRepo) Update(_ context.Context, id string, input ports.UpdateBookInput) (int64, error) {
	b, ok := r.books[id]
	if !ok {
		return 0, domain.ErrBookNotFound
	}
	b.Name = input.Name
	b.Code = input.Code
	b.Author = input.Author
	b.Category = input.Category
	b.Description = input.Description
	if input.Image != "" {
		b.Image = input.Image
	}
	b.Copies = input.Copies
	return 1, nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *stubBookRepo) DecrementCopies(_ context.Context, id string) error {
	b, ok := r.books[id]
	if !ok {
		return domain.ErrBookNotFound
	}
	if b.Copies <= 0 {
		return domain.ErrNoCopiesAvailable
	}
	b.Copies--
	return nil
}

func (r *stubBookRepo) IncrementCopiesByCode(_ context.Context, code string) error {
	for _, b := range r.books {
		if b.Code == code {
			b.Copies++
			return nil
		}
	}
	return domain.ErrBookNotFound
}

type stubBorrowRepo struct {
	records   map[string]*domain.BorrowRecord
	createErr error
	next      int
}

func newStubBorrowRepo() *stubBorrowRepo {
	return &stubBorrowRepo{records: make(map[string]*domain.BorrowRecord)}
}

func (r *stubBorrowRepo) Create(_ context.Context, rec *domain.BorrowRecord) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.next++
	clone := *rec
	clone.ID = "borrow-" + strconv.Itoa(r.next)
	r.records[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubBorrowRepo) FindByID(_ context.Context, id string) (*domain.BorrowRecord, error) {
	if rec, ok := r.records[id]; ok {
		clone := *rec
		return &clone, nil
	}
	return nil, domain.ErrBorrowNotFound
}

func (r *stubBorrowRepo) ListByEmail(_ context.Context, email string) ([]*domain.BorrowRecord, error) {
	out := make([]*domain.BorrowRecord, 0)
	for _, rec := range r.records {
		if rec.Email == email {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBorrowRepo) ListAll(_ context.Context) ([]*domain.BorrowRecord, error) {
	out := make([]*domain.BorrowRecord, 0, len(r.records))
	for _, rec := range r.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBorrowRepo) MarkReturned(_ context.Context, id string, at time.Time) (int64, error) {
	rec, ok := r.records[id]
	if !ok || rec.Returned {
		return 0, nil
	}
	rec.Returned = true
	rec.ReturnDate = &at
	return 1, nil
}

type stubDedup struct {
	seen map[string]string
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]string)}
}

func (d *stubDedup) Seen(_ context.Context, key string) (string, error) {
	return d.seen[key], nil
}

func (d *stubDedup) Mark(_ context.Context, key, insertedID string) error {
	d.seen[key] = insertedID
	return nil
}

func testBorrowInput() ports.BorrowInput {
	return ports.BorrowInput{
		Email:    "reader@example.com",
		Roll:     "R-17",
		BookID:   "bk1",
		BookName: "Atlas of Clouds",
		BookCode: "AC-100",
		Author:   "N. Wren",
	}
}

func borrowFixture(t *testing.T) (*stubBorrowRepo, *stubBookRepo, *stubUserRepo, *stubDedup, ports.BorrowService) {
	t.Helper()
	borrows := newStubBorrowRepo()
	books := newStubBookRepo(&domain.Book{ID: "bk1", Name: "Atlas of Clouds", Code: "AC-100", Copies: 2})
	users := newStubUserRepo()
	if _, err := users.Create(context.Background(), &domain.User{Email: "reader@example.com", Roll: "R-17"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	dedup := newStubDedup()
	svc := NewBorrowService(borrows, books, users, dedup, zerolog.Nop())
	return borrows, books, users, dedup, svc
}

func TestBorrowService_Borrow_Success(t *testing.T) {
	borrows, books, _, dedup, svc := borrowFixture(t)

	res, err := svc.Borrow(context.Background(), testBorrowInput())
	if err != nil {
		t.Fatalf("Borrow returned error: %v", err)
	}
	if res.InsertedID == "" || res.AlreadyExisted {
		t.Fatalf("unexpected result: %+v", res)
	}

	if books.books["bk1"].Copies != 1 {
		t.Fatalf("expected 1 copy left, got %d", books.books["bk1"].Copies)
	}
	rec := borrows.records[res.InsertedID]
	if rec == nil {
		t.Fatalf("ledger entry not created")
	}
	if rec.Returned {
		t.Fatalf("new record should not be returned")
	}
	if rec.BorrowDate.IsZero() {
		t.Fatalf("borrow date not set")
	}
	if len(dedup.seen) != 0 {
		t.Fatalf("dedup key stored without idempotency key")
	}
}

func TestBorrowService_Borrow_RollNotFound(t *testing.T) {
	_, books, _, _, svc := borrowFixture(t)

	in := testBorrowInput()
	in.Roll = "missing"
	if _, err := svc.Borrow(context.Background(), in); !errors.Is(err, domain.ErrRollNotFound) {
		t.Fatalf("expected ErrRollNotFound, got %v", err)
	}
	if books.books["bk1"].Copies != 2 {
		t.Fatalf("copy taken despite roll failure")
	}
}

func TestBorrowService_Borrow_NoCopies(t *testing.T) {
	borrows, books, _, _, svc := borrowFixture(t)
	books.books["bk1"].Copies = 0

	if _, err := svc.Borrow(context.Background(), testBorrowInput()); !errors.Is(err, domain.ErrNoCopiesAvailable) {
		t.Fatalf("expected ErrNoCopiesAvailable, got %v", err)
	}
	if books.books["bk1"].Copies != 0 {
		t.Fatalf("copies went negative: %d", books.books["bk1"].Copies)
	}
	if len(borrows.records) != 0 {
		t.Fatalf("ledger entry created despite zero stock")
	}
}

func TestBorrowService_Borrow_BookNotFound(t *testing.T) {
	_, _, _, _, svc := borrowFixture(t)

	in := testBorrowInput()
	in.BookID = "nope"
	if _, err := svc.Borrow(context.Background(), in); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBorrowService_Borrow_IdempotentReplay(t *testing.T) {
	borrows, books, _, _, svc := borrowFixture(t)

	in := testBorrowInput()
	in.IdempotencyKey = "key-1"

	first, err := svc.Borrow(context.Background(), in)
	if err != nil {
		t.Fatalf("first borrow failed: %v", err)
	}
	second, err := svc.Borrow(context.Background(), in)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	if !second.AlreadyExisted {
		t.Fatalf("replay not recognised")
	}
	if second.InsertedID != first.InsertedID {
		t.Fatalf("replay returned a different id: %s vs %s", second.InsertedID, first.InsertedID)
	}
	if len(borrows.records) != 1 {
		t.Fatalf("replay created a second ledger entry")
	}
	if books.books["bk1"].Copies != 1 {
		t.Fatalf("replay took a second copy: %d left", books.books["bk1"].Copies)
	}
}

func TestBorrowService_Borrow_LedgerFailureRestoresCopy(t *testing.T) {
	borrows, books, _, _, svc := borrowFixture(t)
	borrows.createErr = errors.New("insert failed")

	if _, err := svc.Borrow(context.Background(), testBorrowInput()); err == nil {
		t.Fatalf("expected error from ledger insert")
	}
	if books.books["bk1"].Copies != 2 {
		t.Fatalf("copy not restored after ledger failure: %d", books.books["bk1"].Copies)
	}
}

func TestBorrowService_Return_Success(t *testing.T) {
	borrows, books, _, _, svc := borrowFixture(t)

	res, err := svc.Borrow(context.Background(), testBorrowInput())
	if err != nil {
		t.Fatalf("borrow failed: %v", err)
	}

	modified, err := svc.Return(context.Background(), res.InsertedID, "AC-100")
	if err != nil {
		t.Fatalf("Return returned error: %v", err)
	}
	if modified != 1 {
		t.Fatalf("expected 1 modified, got %d", modified)
	}

	rec := borrows.records[res.InsertedID]
	if !rec.Returned || rec.ReturnDate == nil {
		t.Fatalf("record not flipped: %+v", rec)
	}
	if books.books["bk1"].Copies != 2 {
		t.Fatalf("copy not restored: %d", books.books["bk1"].Copies)
	}
}

func TestBorrowService_Return_AlreadyReturned(t *testing.T) {
	_, _, _, _, svc := borrowFixture(t)

	res, err := svc.Borrow(context.Background(), testBorrowInput())
	if err != nil {
		t.Fatalf("borrow failed: %v", err)
	}
	if _, err := svc.Return(context.Background(), res.InsertedID, "AC-100"); err != nil {
		t.Fatalf("first return failed: %v", err)
	}
	if _, err := svc.Return(context.Background(), res.InsertedID, "AC-100"); !errors.Is(err, domain.ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned, got %v", err)
	}
}

func TestBorrowService_Return_CodeMismatch(t *testing.T) {
	borrows, _, _, _, svc := borrowFixture(t)

	res, err := svc.Borrow(context.Background(), testBorrowInput())
	if err != nil {
		t.Fatalf("borrow failed: %v", err)
	}
	if _, err := svc.Return(context.Background(), res.InsertedID, "WRONG"); !errors.Is(err, domain.ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	if borrows.records[res.InsertedID].Returned {
		t.Fatalf("record flipped despite code mismatch")
	}
}

func TestBorrowService_Return_NotFound(t *testing.T) {
	_, _, _, _, svc := borrowFixture(t)

	if _, err := svc.Return(context.Background(), "missing", "AC-100"); !errors.Is(err, domain.ErrBorrowNotFound) {
		t.Fatalf("expected ErrBorrowNotFound, got %v", err)
	}
}
