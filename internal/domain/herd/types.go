package herd

// EventType etiqueta el tipo de evento. Es abierta: las reglas de
// event_definitions pueden introducir tipos nuevos sin tocar código.
type EventType string

const (
	// EventTypeInsemination es el único tipo con semántica propia:
	// registrarlo (o moverle la fecha) dispara la regeneración del
	// calendario derivado de la vaca.
	EventTypeInsemination EventType = "insemination"
)

// Tipos de las reglas de fábrica, solo como constantes de
// conveniencia para tests y clientes.
const (
	EventTypePregnancyCheck  EventType = "pregnancy_check"
	EventTypeDryOff          EventType = "dry_off"
	EventTypeExpectedCalving EventType = "expected_calving"
	EventTypeCalving         EventType = "calving"
	EventTypeWeaning         EventType = "weaning"
	EventTypeCulling         EventType = "culling"
)

// Source distingue eventos cargados a mano de los que construye el
// scheduler. Los generados son propiedad exclusiva del scheduler: se
// pisan y se borran en bloque en cada regeneración.
type Source string

const (
	SourceManual    Source = "manual"
	SourceGenerated Source = "system_generated"
)
