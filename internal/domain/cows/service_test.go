package cows

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Cow
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Cow{}}
}

func (r *testRepo) Create(ctx context.Context, c Cow) error {
	if _, ok := r.byID[c.CowID]; ok {
		return ErrDuplicateID
	}
	r.byID[c.CowID] = c
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, cowID string) (Cow, error) {
	c, ok := r.byID[cowID]
	if !ok {
		return Cow{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) List(ctx context.Context) ([]Cow, error) {
	out := make([]Cow, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, cowID string) (bool, error) {
	if _, ok := r.byID[cowID]; !ok {
		return false, nil
	}
	delete(r.byID, cowID)
	return true, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_TrimsAndStores(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Create(context.Background(), CreateInput{CowID: "  A1  ", Notes: " primera "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CowID != "A1" || c.Notes != "primera" {
		t.Fatalf("expected trimmed fields, got %+v", c)
	}
	if !c.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, c.CreatedAt)
	}
}

func TestService_Create_DuplicateID(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), CreateInput{CowID: "A1", Notes: "original"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(context.Background(), CreateInput{CowID: "A1", Notes: "otra"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	// El registro existente no se toca.
	c, err := svc.GetByID(context.Background(), "A1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Notes != "original" {
		t.Fatalf("existing cow was modified: %+v", c)
	}
}

func TestService_Create_EmptyIDRejected(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), CreateInput{CowID: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Delete_AbsentReturnsFalse(t *testing.T) {
	svc := NewService(newTestRepo())

	ok, err := svc.Delete(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected false for absent cow")
	}
}

func TestService_Delete_Existing(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), CreateInput{CowID: "A1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := svc.Delete(context.Background(), "A1")
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, ok=%v err=%v", ok, err)
	}
	if _, err := svc.GetByID(context.Background(), "A1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
