package herd

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cow-manager/internal/domain/settings"
	"cow-manager/internal/platform/logger"
	"cow-manager/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
)

// DefinitionSource entrega las reglas de derivación vigentes. Lo
// implementa settings.Service.
type DefinitionSource interface {
	EventDefinitions(ctx context.Context) ([]settings.EventDefinition, error)
}

type Service struct {
	repo Repository
	defs DefinitionSource
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, defs DefinitionSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.New(logger.Options{Level: logger.Info})
	}
	return &Service{
		repo: repo,
		defs: defs,
		log:  log,
		now:  time.Now,
	}
}

// RecordInput es la única forma de entrada del path de guardado. Los
// campos de generación (Source/Descriptions/DaysOffset) solo los
// llena el propio scheduler; el boundary HTTP siempre registra
// eventos manuales.
type RecordInput struct {
	CowID string
	Type  EventType
	Date  time.Time
	Meta  map[string]string

	Source       Source
	Descriptions map[string]string
	DaysOffset   int
}

// Record guarda un evento con dedup y dispara la regeneración si el
// tipo es inseminación. La validación de que la vaca exista es del
// caller (el handler la hace contra el registro de vacas).
func (s *Service) Record(ctx context.Context, in RecordInput) (Event, error) {
	cowID := strings.TrimSpace(in.CowID)
	if cowID == "" || in.Type == "" || in.Date.IsZero() {
		return Event{}, ErrInvalidInput
	}
	in.CowID = cowID
	in.Date = DateOnly(in.Date)

	ev, err := s.saveDeduped(ctx, in)
	if err != nil {
		return Event{}, err
	}
	metrics.EventsRecorded.Inc()

	// Se regenera aunque el dedup haya devuelto un evento existente:
	// reenviar la misma inseminación reconstruye contra las reglas
	// vigentes, igual que el primer registro.
	if in.Type == EventTypeInsemination {
		if err := s.Regenerate(ctx, in.CowID, in.Date); err != nil {
			return Event{}, err
		}
	}
	return ev, nil
}

// saveDeduped aplica el dedup en este orden:
//  1. entrada generada: si la vaca ya tiene un evento generado del
//     mismo tipo (cualquier fecha), se pisa in place — así la
//     regeneración reemplaza sin acumular duplicados;
//  2. clave natural (vaca, tipo, fecha) idéntica: se devuelve el
//     existente sin tocar (reenvío idempotente);
//  3. si no, se crea con un ID nuevo.
func (s *Service) saveDeduped(ctx context.Context, in RecordInput) (Event, error) {
	if in.Source == SourceGenerated {
		existing, err := s.repo.FindGenerated(ctx, in.CowID, in.Type)
		switch {
		case err == nil:
			existing.Date = in.Date
			existing.Descriptions = in.Descriptions
			existing.DaysOffset = in.DaysOffset
			existing.Meta = in.Meta
			if err := s.repo.Update(ctx, existing); err != nil {
				return Event{}, err
			}
			return existing, nil
		case !errors.Is(err, ErrNotFound):
			return Event{}, err
		}
	}

	existing, err := s.repo.FindByKey(ctx, in.CowID, in.Type, in.Date)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, ErrNotFound):
		return Event{}, err
	}

	src := in.Source
	if src == "" {
		src = SourceManual
	}

	e := Event{
		ID:           uuid.NewString(),
		CowID:        in.CowID,
		Type:         in.Type,
		Date:         in.Date,
		Source:       src,
		Descriptions: in.Descriptions,
		DaysOffset:   in.DaysOffset,
		Meta:         in.Meta,
		RecordedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// UpdateInput es un patch disperso: nil = no tocar el campo.
type UpdateInput struct {
	Date *time.Time
	Type *EventType
	Meta *map[string]string
}

// Update aplica el patch y, si el evento resultante es una
// inseminación cuya fecha cambió, regenera el calendario de la vaca
// desde la fecha nueva.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}

	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}

	if in.Type != nil {
		ev.Type = *in.Type
	}
	if in.Date != nil {
		ev.Date = DateOnly(*in.Date)
	}
	if in.Meta != nil {
		ev.Meta = *in.Meta
	}

	if err := s.repo.Update(ctx, ev); err != nil {
		return Event{}, err
	}

	if ev.Type == EventTypeInsemination && in.Date != nil {
		if err := s.Regenerate(ctx, ev.CowID, ev.Date); err != nil {
			return Event{}, err
		}
	}
	return ev, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCow(ctx context.Context, cowID string) ([]Event, error) {
	cowID = strings.TrimSpace(cowID)
	if cowID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCow(ctx, cowID)
}

func (s *Service) ListAll(ctx context.Context) ([]Event, error) {
	return s.repo.ListAll(ctx)
}
