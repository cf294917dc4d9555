package herd

import "time"

// Event es una ocurrencia fechada de una vaca. La fecha es de
// calendario (medianoche UTC), no un instante.
type Event struct {
	ID    string
	CowID string

	Type EventType
	Date time.Time

	Source Source

	// Solo en eventos generados: nombres visibles por idioma de la
	// regla que lo produjo y su offset en días desde la inseminación.
	Descriptions map[string]string
	DaysOffset   int

	// Metadata libre de eventos manuales.
	Meta map[string]string

	RecordedAt time.Time
}

// Generated indica si el evento es propiedad del scheduler.
func (e Event) Generated() bool {
	return e.Source == SourceGenerated
}

// DateOnly normaliza un instante a su fecha de calendario en UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
