package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("setting not found")

	// ErrBadDefinitions marca un value de event_definitions que no
	// parsea como lista de reglas. El scheduler lo trata como lista
	// vacía (degradación leniente), pero debe quedar en el log.
	ErrBadDefinitions = errors.New("malformed event definitions")
)

type Service struct {
	repo     Repository
	defaults map[string]string
}

// NewService recibe los defaults explícitamente (ver DefaultSettings)
// para que sean inyectables en tests y no un singleton compartido.
func NewService(repo Repository, defaults map[string]string) *Service {
	if defaults == nil {
		defaults = map[string]string{}
	}
	return &Service{repo: repo, defaults: defaults}
}

// Get devuelve el value guardado si existe, si no el default de
// fábrica, si no "".
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidInput
	}

	st, err := s.repo.Get(ctx, key)
	if err == nil {
		return st.Value, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	return s.defaults[key], nil
}

// Set hace upsert por clave.
func (s *Service) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidInput
	}
	return s.repo.Upsert(ctx, Setting{Key: key, Value: value})
}

// All devuelve defaults de fábrica mezclados con los overrides
// guardados; lo guardado gana.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(s.defaults)+len(stored))
	for k, v := range s.defaults {
		out[k] = v
	}
	for _, st := range stored {
		out[st.Key] = st.Value
	}
	return out, nil
}

// EventDefinitions parsea las reglas vigentes. Un value que no parsea
// devuelve ErrBadDefinitions; los errores del store se propagan tal
// cual.
func (s *Service) EventDefinitions(ctx context.Context) ([]EventDefinition, error) {
	raw, err := s.Get(ctx, KeyEventDefinitions)
	if err != nil {
		return nil, err
	}

	var defs []EventDefinition
	if err := json.Unmarshal([]byte(raw), &defs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDefinitions, err)
	}
	return defs, nil
}
