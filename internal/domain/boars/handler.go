package boars

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sow-breeding-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/boars", func(br chi.Router) {
		br.Post("/", createBoarHandler(svc))
		br.Get("/", listBoarsHandler(svc))
		br.Get("/{boarID}", getBoarHandler(svc))
		br.Patch("/{boarID}", updateBoarHandler(svc))
		br.Delete("/{boarID}", deleteBoarHandler(svc))
	})
}

type createBoarRequest struct {
	Code  string `json:"codigo"`
	Name  string `json:"nombre"`
	Breed string `json:"raza"`
}

type updateBoarRequest struct {
	Code   *string `json:"codigo"`
	Name   *string `json:"nombre"`
	Breed  *string `json:"raza"`
	Active *bool   `json:"activo"`
}

type boarResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"codigo"`
	Name      string    `json:"nombre"`
	Breed     string    `json:"raza"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createBoarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createBoarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBoarResponse(b))
	}
}

// listBoarsHandler: ?activos=true para el selector de cubrición.
func listBoarsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		activeOnly := false
		if raw := strings.TrimSpace(r.URL.Query().Get("activos")); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				http.Error(w, "activos must be a boolean", http.StatusBadRequest)
				return
			}
			activeOnly = v
		}

		items, err := svc.List(r.Context(), activeOnly)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]boarResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBoarResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getBoarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "boarID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBoarResponse(b))
	}
}

func updateBoarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateBoarRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Update(r.Context(), chi.URLParam(r, "boarID"), UpdateInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBoarResponse(b))
	}
}

func deleteBoarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "boarID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func authorized(r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	return ok && strings.TrimSpace(claims.UserID) != ""
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "boar not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicateCode):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toBoarResponse(b Boar) boarResponse {
	return boarResponse{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		Breed:     b.Breed,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
