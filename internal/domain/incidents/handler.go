package incidents

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sow-breeding-records/internal/domain/sows"
	"sow-breeding-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sows/{sowID}/incidents", func(ir chi.Router) {
		ir.Post("/", createIncidentHandler(svc))
		ir.Get("/", listSowIncidentsHandler(svc))
	})

	r.Route("/incidents", func(ir chi.Router) {
		// ?dias=30&pendientes=true
		ir.Get("/", listRecentIncidentsHandler(svc))
		ir.Patch("/{incidentID}", updateIncidentHandler(svc))
		ir.Delete("/{incidentID}", deleteIncidentHandler(svc))
	})
}

type createIncidentRequest struct {
	At   string `json:"fecha_hora"` // RFC3339 opcional, por defecto ahora
	Text string `json:"texto"`
}

type updateIncidentRequest struct {
	Resolved *bool `json:"resuelta"`
}

type incidentResponse struct {
	ID        string    `json:"id"`
	SowID     string    `json:"cerda_id"`
	UserID    string    `json:"usuario_id"`
	At        time.Time `json:"fecha_hora"`
	Text      string    `json:"texto"`
	Resolved  bool      `json:"resuelta"`
	CreatedAt time.Time `json:"created_at"`
}

func createIncidentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createIncidentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var at *time.Time
		if v := strings.TrimSpace(req.At); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "fecha_hora must be RFC3339", http.StatusBadRequest)
				return
			}
			at = &t
		}

		i, err := svc.Create(r.Context(), chi.URLParam(r, "sowID"), claims.UserID, CreateInput{At: at, Text: req.Text})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toIncidentResponse(i))
	}
}

func listSowIncidentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListBySow(r.Context(), chi.URLParam(r, "sowID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toIncidentResponses(items))
	}
}

func listRecentIncidentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		days := DefaultDays
		if v := strings.TrimSpace(q.Get("dias")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "dias must be a positive integer", http.StatusBadRequest)
				return
			}
			days = n
		}
		openOnly := false
		if v := strings.TrimSpace(q.Get("pendientes")); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "pendientes must be a boolean", http.StatusBadRequest)
				return
			}
			openOnly = b
		}

		items, err := svc.Recent(r.Context(), days, openOnly)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toIncidentResponses(items))
	}
}

func updateIncidentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateIncidentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Resolved == nil {
			http.Error(w, "resuelta is required", http.StatusBadRequest)
			return
		}

		i, err := svc.SetResolved(r.Context(), chi.URLParam(r, "incidentID"), *req.Resolved)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toIncidentResponse(i))
	}
}

func deleteIncidentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "incidentID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sows.ErrNotFound):
		http.Error(w, "sow not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "incident not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toIncidentResponses(items []Incident) []incidentResponse {
	out := make([]incidentResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toIncidentResponse(i))
	}
	return out
}

func toIncidentResponse(i Incident) incidentResponse {
	return incidentResponse{
		ID:        i.ID,
		SowID:     i.SowID,
		UserID:    i.UserID,
		At:        i.At,
		Text:      i.Text,
		Resolved:  i.Resolved,
		CreatedAt: i.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
