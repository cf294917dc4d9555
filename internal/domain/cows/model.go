package cows

import "time"

// Cow representa un animal del hato. El ID lo asigna el productor
// (número de arete/caravana), no el sistema, y es la identidad
// primaria.
type Cow struct {
	CowID string
	Notes string

	CreatedAt time.Time
}
