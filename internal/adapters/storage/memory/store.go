package memory

import (
	"sort"
	"sync"

	"cow-manager/internal/domain/cows"
	"cow-manager/internal/domain/herd"
	"cow-manager/internal/domain/settings"
)

// Store guarda todo el estado bajo un solo RWMutex. Un lock único es
// lo que hace atómicos el borrado en cascada de una vaca y el
// ReplaceGenerated del scheduler, cosa que locks por repo no dan.
type Store struct {
	mu       sync.RWMutex
	cows     map[string]cows.Cow
	events   map[string]herd.Event
	settings map[string]settings.Setting
}

func NewStore() *Store {
	return &Store{
		cows:     make(map[string]cows.Cow),
		events:   make(map[string]herd.Event),
		settings: make(map[string]settings.Setting),
	}
}

// sortEvents ordena por (fecha, recorded_at, id) ascendente; mismo
// criterio que los ORDER BY de los adapters SQL.
func sortEvents(evs []herd.Event) {
	sort.Slice(evs, func(i, j int) bool {
		if !evs[i].Date.Equal(evs[j].Date) {
			return evs[i].Date.Before(evs[j].Date)
		}
		if !evs[i].RecordedAt.Equal(evs[j].RecordedAt) {
			return evs[i].RecordedAt.Before(evs[j].RecordedAt)
		}
		return evs[i].ID < evs[j].ID
	})
}
