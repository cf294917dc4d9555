package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"cow-manager/internal/domain/cows"
	"cow-manager/internal/domain/herd"
	"cow-manager/internal/domain/settings"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCowRepo_Delete_CascadesToEvents(t *testing.T) {
	st := NewStore()
	cowRepo := NewCowRepo(st)
	eventRepo := NewEventRepo(st)
	ctx := context.Background()

	if err := cowRepo.Create(ctx, cows.Cow{CowID: "A1", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("create cow: %v", err)
	}
	events := []herd.Event{
		{ID: "e1", CowID: "A1", Type: herd.EventTypeInsemination, Date: day(2024, 1, 1), Source: herd.SourceManual},
		{ID: "e2", CowID: "A1", Type: herd.EventTypeCalving, Date: day(2024, 10, 7), Source: herd.SourceGenerated},
		{ID: "e3", CowID: "B2", Type: herd.EventTypeInsemination, Date: day(2024, 2, 1), Source: herd.SourceManual},
	}
	for _, e := range events {
		if err := eventRepo.Create(ctx, e); err != nil {
			t.Fatalf("create event %s: %v", e.ID, err)
		}
	}

	ok, err := cowRepo.Delete(ctx, "A1")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}

	if _, err := cowRepo.GetByID(ctx, "A1"); !errors.Is(err, cows.ErrNotFound) {
		t.Fatalf("expected cow gone, got %v", err)
	}
	got, _ := eventRepo.ListByCow(ctx, "A1")
	if len(got) != 0 {
		t.Fatalf("expected no events for deleted cow, got %d", len(got))
	}
	// Los eventos de otras vacas no se tocan.
	other, _ := eventRepo.ListByCow(ctx, "B2")
	if len(other) != 1 {
		t.Fatalf("expected B2 events untouched, got %d", len(other))
	}
}

func TestCowRepo_Create_Duplicate(t *testing.T) {
	st := NewStore()
	repo := NewCowRepo(st)
	ctx := context.Background()

	if err := repo.Create(ctx, cows.Cow{CowID: "A1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, cows.Cow{CowID: "A1"}); !errors.Is(err, cows.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestEventRepo_ReplaceGenerated_SwapsOnlyGenerated(t *testing.T) {
	st := NewStore()
	repo := NewEventRepo(st)
	ctx := context.Background()

	seed := []herd.Event{
		{ID: "m1", CowID: "A1", Type: herd.EventTypeInsemination, Date: day(2024, 1, 1), Source: herd.SourceManual},
		{ID: "g1", CowID: "A1", Type: herd.EventTypePregnancyCheck, Date: day(2024, 2, 5), Source: herd.SourceGenerated},
		{ID: "g2", CowID: "A1", Type: herd.EventTypeCalving, Date: day(2024, 10, 7), Source: herd.SourceGenerated},
	}
	for _, e := range seed {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create %s: %v", e.ID, err)
		}
	}

	replacement := []herd.Event{
		{ID: "g3", CowID: "A1", Type: herd.EventTypeWeaning, Date: day(2024, 12, 26), Source: herd.SourceGenerated},
	}
	if err := repo.ReplaceGenerated(ctx, "A1", replacement); err != nil {
		t.Fatalf("replace: %v", err)
	}

	all, _ := repo.ListByCow(ctx, "A1")
	if len(all) != 2 {
		t.Fatalf("expected manual + 1 generated, got %d", len(all))
	}
	for _, e := range all {
		if e.Generated() && e.ID != "g3" {
			t.Fatalf("old generated event survived: %s", e.ID)
		}
	}
}

func TestEventRepo_FindGeneratedIgnoresDate(t *testing.T) {
	st := NewStore()
	repo := NewEventRepo(st)
	ctx := context.Background()

	if err := repo.Create(ctx, herd.Event{ID: "g1", CowID: "A1", Type: herd.EventTypeDryOff, Date: day(2024, 8, 8), Source: herd.SourceGenerated}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindGenerated(ctx, "A1", herd.EventTypeDryOff)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != "g1" {
		t.Fatalf("expected g1, got %s", got.ID)
	}

	if _, err := repo.FindGenerated(ctx, "A1", herd.EventTypeCulling); !errors.Is(err, herd.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepo_ListByCow_Ordering(t *testing.T) {
	st := NewStore()
	repo := NewEventRepo(st)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	seed := []herd.Event{
		{ID: "b", CowID: "A1", Type: "weighing", Date: day(2024, 3, 1), RecordedAt: base},
		{ID: "a", CowID: "A1", Type: "weighing", Date: day(2024, 1, 1), RecordedAt: base.Add(time.Hour)},
		{ID: "c", CowID: "A1", Type: "weighing", Date: day(2024, 3, 1), RecordedAt: base.Add(-time.Hour)},
	}
	for _, e := range seed {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create %s: %v", e.ID, err)
		}
	}

	got, _ := repo.ListByCow(ctx, "A1")
	wantOrder := []string{"a", "c", "b"} // fecha asc, empates por recorded_at
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSettingRepo_Roundtrip(t *testing.T) {
	st := NewStore()
	repo := NewSettingRepo(st)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Upsert(ctx, settings.Setting{Key: "k", Value: "v1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, settings.Setting{Key: "k", Value: "v2"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Value != "v2" {
		t.Fatalf("expected upsert to overwrite, got %q", got.Value)
	}
}
