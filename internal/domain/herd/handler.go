package herd

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cow-manager/internal/domain/cows"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service, cowsSvc *cows.Service) {
	// Paths bajo /cows por compatibilidad con el frontend existente.
	// chi resuelve los segmentos estáticos ("events") antes que
	// {cowID}, así que no chocan.
	r.Get("/cows/events/all", listAllEventsHandler(svc))
	r.Patch("/cows/events/{eventID}", updateEventHandler(svc))
	r.Post("/cows/{cowID}/events", createEventHandler(svc, cowsSvc))
	r.Get("/cows/{cowID}/events", listCowEventsHandler(svc, cowsSvc))
}

type createEventRequest struct {
	CowID     string            `json:"cow_id"`
	EventType string            `json:"event_type"`
	EventDate string            `json:"event_date"` // YYYY-MM-DD
	Meta      map[string]string `json:"meta"`
}

type updateEventRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	EventDate *string            `json:"event_date"` // YYYY-MM-DD
	EventType *string            `json:"event_type"`
	Meta      *map[string]string `json:"meta"`
}

type eventResponse struct {
	ID        string         `json:"id"`
	CowID     string         `json:"cow_id"`
	EventType string         `json:"event_type"`
	EventDate string         `json:"event_date"`
	Meta      map[string]any `json:"meta,omitempty"`
}

func createEventHandler(svc *Service, cowsSvc *cows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cowID := chi.URLParam(r, "cowID")

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.CowID != cowID {
			http.Error(w, "cow_id in path must match body", http.StatusBadRequest)
			return
		}

		if _, err := cowsSvc.GetByID(r.Context(), cowID); err != nil {
			http.Error(w, "cow not found", http.StatusNotFound)
			return
		}

		date, err := time.Parse(dateLayout, req.EventDate)
		if err != nil {
			http.Error(w, "event_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		// El boundary solo registra eventos manuales; el marcador de
		// generación no se acepta desde afuera.
		delete(req.Meta, "source_event")

		ev, err := svc.Record(r.Context(), RecordInput{
			CowID: cowID,
			Type:  EventType(req.EventType),
			Date:  date,
			Meta:  req.Meta,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(ev))
	}
}

func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var in UpdateInput
		if req.EventDate != nil {
			d, err := time.Parse(dateLayout, *req.EventDate)
			if err != nil {
				http.Error(w, "event_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}
		if req.EventType != nil {
			t := EventType(*req.EventType)
			in.Type = &t
		}
		if req.Meta != nil {
			delete(*req.Meta, "source_event")
			in.Meta = req.Meta
		}

		ev, err := svc.Update(r.Context(), eventID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "event not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(ev))
	}
}

func listCowEventsHandler(svc *Service, cowsSvc *cows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cowID := chi.URLParam(r, "cowID")

		if _, err := cowsSvc.GetByID(r.Context(), cowID); err != nil {
			http.Error(w, "cow not found", http.StatusNotFound)
			return
		}

		items, err := svc.ListByCow(r.Context(), cowID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeEventList(w, items)
	}
}

func listAllEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeEventList(w, items)
	}
}

func writeEventList(w http.ResponseWriter, items []Event) {
	out := make([]eventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// toEventResponse reconstruye el objeto meta del wire format
// histórico: los generados llevan source_event/descriptions/
// days_offset, los manuales su metadata libre.
func toEventResponse(e Event) eventResponse {
	var meta map[string]any
	switch {
	case e.Generated():
		meta = map[string]any{
			"source_event": string(SourceGenerated),
			"descriptions": e.Descriptions,
			"days_offset":  e.DaysOffset,
		}
	case len(e.Meta) > 0:
		meta = make(map[string]any, len(e.Meta))
		for k, v := range e.Meta {
			meta[k] = v
		}
	}

	return eventResponse{
		ID:        e.ID,
		CowID:     e.CowID,
		EventType: string(e.Type),
		EventDate: e.Date.Format(dateLayout),
		Meta:      meta,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (ver nota en cows/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
