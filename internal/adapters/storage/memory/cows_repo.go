package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cow-manager/internal/domain/cows"
)

type cowRepo struct {
	s *Store
}

func NewCowRepo(s *Store) cows.Repository {
	return &cowRepo{s: s}
}

func (r *cowRepo) Create(ctx context.Context, c cows.Cow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(c.CowID) == "" {
		return errors.New("cow id required")
	}
	if _, exists := r.s.cows[c.CowID]; exists {
		return cows.ErrDuplicateID
	}
	r.s.cows[c.CowID] = c
	return nil
}

func (r *cowRepo) GetByID(ctx context.Context, cowID string) (cows.Cow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cows[cowID]
	if !ok {
		return cows.Cow{}, cows.ErrNotFound
	}
	return c, nil
}

func (r *cowRepo) List(ctx context.Context) ([]cows.Cow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]cows.Cow, 0, len(r.s.cows))
	for _, c := range r.s.cows {
		out = append(out, c)
	}

	// Orden estable por created_at, luego id (solo para consistencia
	// en dev y tests).
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CowID < out[j].CowID
	})
	return out, nil
}

func (r *cowRepo) Delete(ctx context.Context, cowID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cows[cowID]; !ok {
		return false, nil
	}

	// Cascada: eventos primero, después la vaca, bajo el mismo lock.
	for id, e := range r.s.events {
		if e.CowID == cowID {
			delete(r.s.events, id)
		}
	}
	delete(r.s.cows, cowID)
	return true, nil
}
