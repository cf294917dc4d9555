package cows

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Rutas planas con path completo: /cows/settings y /cows/events/*
	// las registran otros módulos y chi prioriza segmentos estáticos
	// sobre {cowID}.
	r.Post("/cows", createCowHandler(svc))
	r.Get("/cows", listCowsHandler(svc))
	r.Get("/cows/{cowID}", getCowHandler(svc))
	r.Delete("/cows/{cowID}", deleteCowHandler(svc))
}

type createCowRequest struct {
	CowID string `json:"cow_id"`
	Notes string `json:"notes"`
}

type cowResponse struct {
	CowID     string    `json:"cow_id"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func createCowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			CowID: req.CowID,
			Notes: req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicateID):
				http.Error(w, "cow id already exists", http.StatusBadRequest)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "cow_id is required", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toCowResponse(c))
	}
}

func listCowsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]cowResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCowResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getCowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "cowID"))
		if err != nil {
			http.Error(w, "cow not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toCowResponse(c))
	}
}

func deleteCowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.Delete(r.Context(), chi.URLParam(r, "cowID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "cow not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "cow deleted"})
	}
}

func toCowResponse(c Cow) cowResponse {
	return cowResponse{
		CowID:     c.CowID,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en los handlers de cada
// módulo para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
