// Package metrics expone contadores Prometheus del proceso.
// Se registran en el registry default y se sirven en /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsRecorded cuenta eventos guardados, manuales y generados.
	EventsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cowmanager_events_recorded_total",
		Help: "Events saved through the record path (manual and generated).",
	})

	// Regenerations cuenta reconstrucciones del calendario derivado
	// (una por vaca por disparo).
	Regenerations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cowmanager_schedule_regenerations_total",
		Help: "Derived-event regenerations executed.",
	})

	// BadDefinitions cuenta las veces que event_definitions no parseó
	// y la regeneración corrió con reglas vacías.
	BadDefinitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cowmanager_bad_event_definitions_total",
		Help: "Regenerations that fell back to an empty rule set because event_definitions failed to parse.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
