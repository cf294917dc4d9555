package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Refresher regenera los eventos derivados de todas las vacas. Lo
// implementa el servicio de herd; acá solo vemos la interfaz para no
// acoplar paquetes en círculo.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

func RegisterRoutes(r chi.Router, svc *Service, refresher Refresher) {
	// Bajo /cows por compatibilidad con el frontend existente.
	r.Get("/cows/settings", getSettingsHandler(svc))
	r.Post("/cows/settings", updateSettingsHandler(svc, refresher))
}

func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.All(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func updateSettingsHandler(svc *Service, refresher Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Los values llegan como string o como JSON arbitrario; lo
		// segundo se guarda serializado tal cual.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		definitionsUpdated := false
		for key, rv := range raw {
			var value string
			if err := json.Unmarshal(rv, &value); err != nil {
				value = string(rv)
			}
			if err := svc.Set(r.Context(), key, value); err != nil {
				if err == ErrInvalidInput {
					http.Error(w, "invalid setting key", http.StatusBadRequest)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if key == KeyEventDefinitions {
				definitionsUpdated = true
			}
		}

		// Cambiar las reglas reconstruye el calendario derivado de
		// todas las vacas con inseminación registrada.
		if definitionsUpdated && refresher != nil {
			if err := refresher.RefreshAll(r.Context()); err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "settings updated"})
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (ver nota en cows/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
