package memory

import (
	"context"
	"errors"
	"time"

	"cow-manager/internal/domain/herd"
)

type eventRepo struct {
	s *Store
}

func NewEventRepo(s *Store) herd.Repository {
	return &eventRepo{s: s}
}

func (r *eventRepo) Create(ctx context.Context, e herd.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.s.events[e.ID]; exists {
		return errors.New("event already exists")
	}
	r.s.events[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (herd.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return herd.Event{}, herd.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) Update(ctx context.Context, e herd.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[e.ID]; !ok {
		return herd.ErrNotFound
	}
	r.s.events[e.ID] = e
	return nil
}

func (r *eventRepo) ListByCow(ctx context.Context, cowID string) ([]herd.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(e herd.Event) bool { return e.CowID == cowID }), nil
}

func (r *eventRepo) ListAll(ctx context.Context) ([]herd.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(herd.Event) bool { return true }), nil
}

func (r *eventRepo) ListByType(ctx context.Context, t herd.EventType) ([]herd.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(e herd.Event) bool { return e.Type == t }), nil
}

func (r *eventRepo) FindGenerated(ctx context.Context, cowID string, t herd.EventType) (herd.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Por invariante hay a lo sumo uno; collect ordena por si algún
	// estado viejo dejó más de uno.
	matches := r.collect(func(e herd.Event) bool {
		return e.CowID == cowID && e.Type == t && e.Generated()
	})
	if len(matches) == 0 {
		return herd.Event{}, herd.ErrNotFound
	}
	return matches[0], nil
}

func (r *eventRepo) FindByKey(ctx context.Context, cowID string, t herd.EventType, date time.Time) (herd.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := r.collect(func(e herd.Event) bool {
		return e.CowID == cowID && e.Type == t && e.Date.Equal(date)
	})
	if len(matches) == 0 {
		return herd.Event{}, herd.ErrNotFound
	}
	return matches[0], nil
}

func (r *eventRepo) ReplaceGenerated(ctx context.Context, cowID string, evs []herd.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range evs {
		if e.ID == "" {
			return errors.New("event id required")
		}
	}

	// Wipe + insert bajo el mismo lock: ningún lector ve el estado
	// intermedio.
	for id, e := range r.s.events {
		if e.CowID == cowID && e.Generated() {
			delete(r.s.events, id)
		}
	}
	for _, e := range evs {
		r.s.events[e.ID] = e
	}
	return nil
}

// collect filtra y ordena; el caller debe tener el lock tomado.
func (r *eventRepo) collect(keep func(herd.Event) bool) []herd.Event {
	out := make([]herd.Event, 0)
	for _, e := range r.s.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out
}
