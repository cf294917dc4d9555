package herd

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"cow-manager/internal/domain/settings"
	"cow-manager/internal/platform/metrics"
)

// Regenerate reconstruye el calendario derivado de una vaca anclado
// en una fecha de inseminación: borra TODOS sus eventos generados y
// crea uno por regla vigente. Es wipe-and-rebuild, no un diff
// incremental: las reglas pueden cambiar, achicarse o reordenarse
// entre llamadas y el rebuild completo converge siempre al set
// actual.
func (s *Service) Regenerate(ctx context.Context, cowID string, inseminationDate time.Time) error {
	defs, err := s.defs.EventDefinitions(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrBadDefinitions) {
			return err
		}
		// Reglas ilegibles: se regenera contra un set vacío, que
		// equivale a una pasada de borrado. No es un éxito
		// silencioso: queda en el log y en el contador.
		s.log.Warn("event_definitions malformed, regenerating with empty rule set", map[string]any{
			"cow_id": cowID,
			"err":    err.Error(),
		})
		metrics.BadDefinitions.Inc()
		defs = nil
	}

	anchor := DateOnly(inseminationDate)
	now := s.now()

	generated := make([]Event, 0, len(defs))
	for _, d := range defs {
		// IDs nuevos siempre; no se reusa el del evento borrado del
		// mismo tipo.
		generated = append(generated, Event{
			ID:           uuid.NewString(),
			CowID:        cowID,
			Type:         EventType(d.Type),
			Date:         anchor.AddDate(0, 0, d.Days),
			Source:       SourceGenerated,
			Descriptions: d.Names,
			DaysOffset:   d.Days,
			RecordedAt:   now,
		})
	}

	if err := s.repo.ReplaceGenerated(ctx, cowID, generated); err != nil {
		return err
	}
	metrics.Regenerations.Inc()

	s.log.Debug("schedule regenerated", map[string]any{
		"cow_id": cowID,
		"anchor": anchor.Format("2006-01-02"),
		"rules":  len(generated),
	})
	return nil
}

// RefreshAll regenera una vez por cada evento de inseminación, en
// orden ascendente de (fecha, recorded_at, id). Con varias
// inseminaciones por vaca cada regeneración pisa a la anterior, así
// que gana determinísticamente la de fecha más reciente.
func (s *Service) RefreshAll(ctx context.Context) error {
	inseminations, err := s.repo.ListByType(ctx, EventTypeInsemination)
	if err != nil {
		return err
	}

	for _, ins := range inseminations {
		if err := s.Regenerate(ctx, ins.CowID, ins.Date); err != nil {
			return err
		}
	}
	return nil
}
