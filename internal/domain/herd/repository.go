package herd

import (
	"context"
	"time"
)

// Repository persiste eventos. Todas las listas vuelven ordenadas por
// (fecha, recorded_at, id) ascendente.
type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, e Event) error

	ListByCow(ctx context.Context, cowID string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
	ListByType(ctx context.Context, t EventType) ([]Event, error)

	// FindGenerated busca el evento generado de la vaca para un tipo,
	// sin importar la fecha. Por invariante hay a lo sumo uno.
	FindGenerated(ctx context.Context, cowID string, t EventType) (Event, error)

	// FindByKey busca por la clave natural (vaca, tipo, fecha).
	FindByKey(ctx context.Context, cowID string, t EventType, date time.Time) (Event, error)

	// ReplaceGenerated borra todos los eventos generados de la vaca e
	// inserta el set reconstruido como una sola unidad: ningún lector
	// debe ver tipos generados duplicados en el medio.
	ReplaceGenerated(ctx context.Context, cowID string, evs []Event) error
}
