package cows

import "context"

type Repository interface {
	Create(ctx context.Context, c Cow) error
	GetByID(ctx context.Context, cowID string) (Cow, error)
	List(ctx context.Context) ([]Cow, error)

	// Delete borra la vaca y todos sus eventos como una sola unidad
	// (transacción en los adapters SQL, un solo lock en memoria).
	// Devuelve false si la vaca no existe.
	Delete(ctx context.Context, cowID string) (bool, error)
}
