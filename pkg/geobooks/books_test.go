package geobooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func catalogFixture() []Book {
	return []Book{
		{ID: "1", Name: "Atlas of Clouds", Code: "AC-100", Copies: 2},
		{ID: "2", Name: "Orbit Mechanics", Code: "OM-200", Copies: 0},
		{ID: "3", Name: "The Silent Atlas", Code: "SA-300", Copies: 1},
	}
}

func TestFilterBooks_EmptyTermReturnsAll(t *testing.T) {
	books := catalogFixture()
	got := FilterBooks(books, "")
	if len(got) != len(books) {
		t.Fatalf("expected %d books, got %d", len(books), len(got))
	}
	got = FilterBooks(books, "   ")
	if len(got) != len(books) {
		t.Fatalf("whitespace term should match all, got %d", len(got))
	}
}

func TestFilterBooks_NameMatchCaseInsensitive(t *testing.T) {
	got := FilterBooks(catalogFixture(), "atlas")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, b := range got {
		if b.Name != "Atlas of Clouds" && b.Name != "The Silent Atlas" {
			t.Fatalf("unexpected match: %s", b.Name)
		}
	}

	upper := FilterBooks(catalogFixture(), "ATLAS")
	if len(upper) != len(got) {
		t.Fatalf("case sensitivity leaked: %d vs %d", len(upper), len(got))
	}
}

func TestFilterBooks_CodeMatch(t *testing.T) {
	got := FilterBooks(catalogFixture(), "om-2")
	if len(got) != 1 || got[0].Name != "Orbit Mechanics" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestFilterBooks_NoMatch(t *testing.T) {
	if got := FilterBooks(catalogFixture(), "zephyr"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestFilterBooks_PartialTermAndAvailability(t *testing.T) {
	books := []Book{
		{Name: "Atlas", Code: "A1", Copies: 2},
		{Name: "Orbit", Code: "O9", Copies: 0},
	}

	got := FilterBooks(books, "at")
	if len(got) != 1 || got[0].Name != "Atlas" {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if !got[0].Available() {
		t.Fatalf("Atlas should be available with 2 copies")
	}
	if books[1].Available() {
		t.Fatalf("Orbit should be unavailable at 0 copies")
	}
}

func TestBookAvailable(t *testing.T) {
	if !(Book{Copies: 1}).Available() {
		t.Fatalf("one copy should be available")
	}
	if (Book{Copies: 0}).Available() {
		t.Fatalf("zero copies should be unavailable")
	}
}

func TestAddBook_RequiresImageURL(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.AddBook(context.Background(), BookForm{
		Name:   "Atlas of Clouds",
		Code:   "AC-100",
		Author: "N. Wren",
		Image:  "not-a-url",
		Copies: 2,
	})

	fe, ok := IsFormError(err)
	if !ok {
		t.Fatalf("expected form error, got %v", err)
	}
	if _, bad := fe.Fields["image"]; !bad {
		t.Fatalf("expected image field error, got %+v", fe.Fields)
	}
	if calls != 0 {
		t.Fatalf("invalid form reached the network (%d calls)", calls)
	}
}

func TestUpdateBook_EmptyImageAllowed(t *testing.T) {
	var sent bookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(modifiedResponse{ModifiedCount: 1})
	}))
	defer srv.Close()

	c := New(srv.URL)
	modified, err := c.UpdateBook(context.Background(), "bk1", EditBookForm{
		Name:   "Atlas of Clouds",
		Code:   "AC-100",
		Author: "N. Wren",
		Copies: 3,
	})
	if err != nil {
		t.Fatalf("UpdateBook returned error: %v", err)
	}
	if modified != 1 {
		t.Fatalf("expected 1 modified, got %d", modified)
	}
	if sent.Image != "" {
		t.Fatalf("empty image should stay empty on the wire, got %q", sent.Image)
	}
}

func TestBooks_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "book not found"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Book(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
