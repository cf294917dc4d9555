package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cow-manager/internal/domain/settings"
)

type settingRepo struct {
	s *Store
}

func NewSettingRepo(s *Store) settings.Repository {
	return &settingRepo{s: s}
}

func (r *settingRepo) Get(ctx context.Context, key string) (settings.Setting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.settings[key]
	if !ok {
		return settings.Setting{}, settings.ErrNotFound
	}
	return st, nil
}

func (r *settingRepo) Upsert(ctx context.Context, st settings.Setting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(st.Key) == "" {
		return errors.New("setting key required")
	}
	r.s.settings[st.Key] = st
	return nil
}

func (r *settingRepo) List(ctx context.Context) ([]settings.Setting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]settings.Setting, 0, len(r.s.settings))
	for _, st := range r.s.settings {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
