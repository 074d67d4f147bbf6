package sows

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sows", func(sr chi.Router) {
		sr.Post("/", createSowHandler(svc))
		sr.Get("/", listSowsHandler(svc))
		sr.Get("/{sowID}", getSowHandler(svc))

		// Edición administrativa (incluye estado)
		sr.Patch("/{sowID}", updateSowHandler(svc))

		// Baja lógica
		sr.Delete("/{sowID}", deactivateSowHandler(svc))
	})
}

type createSowRequest struct {
	Code         string `json:"codigo"`
	Name         string `json:"nombre"`
	Origin       string `json:"origen"`
	Barn         string `json:"nave"`
	BirthDate    string `json:"fecha_nacimiento"` // YYYY-MM-DD opcional
	RegisteredAt string `json:"fecha_alta"`       // YYYY-MM-DD opcional, por defecto hoy
}

type updateSowRequest struct {
	// Punteros para PATCH: nil = no tocar.
	Code      *string          `json:"codigo"`
	Name      *string          `json:"nombre"`
	Origin    *string          `json:"origen"`
	Barn      *string          `json:"nave"`
	BirthDate *string          `json:"fecha_nacimiento"`
	Status    *breeding.Status `json:"estado"`
	Parity    *int             `json:"paridad"`
	Active    *bool            `json:"activa"`
}

// SowResponse es la representación JSON de una cerda. Exportado para el cliente CLI.
type SowResponse struct {
	ID             string             `json:"id"`
	Code           string             `json:"codigo"`
	Name           string             `json:"nombre"`
	Status         breeding.Status    `json:"estado"`
	Parity         int                `json:"paridad"`
	Averages       *breeding.Averages `json:"medios"`
	Barn           string             `json:"nave"`
	Origin         string             `json:"origen"`
	RegisteredAt   *string            `json:"fecha_alta,omitempty"`
	BirthDate      *string            `json:"fecha_nacimiento,omitempty"`
	LastIncidentAt *time.Time         `json:"ultima_incidencia_fecha,omitempty"`
	Active         bool               `json:"activa"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	CreatedBy      string             `json:"created_by,omitempty"`
}

func createSowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createSowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := parseOptionalDate(req.BirthDate)
		if err != nil {
			http.Error(w, "fecha_nacimiento must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		alta, err := parseOptionalDate(req.RegisteredAt)
		if err != nil {
			http.Error(w, "fecha_alta must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		s, err := svc.Register(r.Context(), claims.UserID, RegisterInput{
			Code:         req.Code,
			Name:         req.Name,
			Origin:       req.Origin,
			Barn:         req.Barn,
			BirthDate:    bd,
			RegisteredAt: alta,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(s))
	}
}

// listSowsHandler admite ?estado=a,b&q=texto&incidencias_dias=N&inactivas=true
func listSowsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		var filter ListFilter

		if raw := strings.TrimSpace(q.Get("estado")); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				st := breeding.Status(strings.TrimSpace(part))
				if st == "" {
					continue
				}
				if !st.Valid() {
					http.Error(w, "unknown estado: "+string(st), http.StatusBadRequest)
					return
				}
				filter.Statuses = append(filter.Statuses, st)
			}
		}

		filter.Search = q.Get("q")

		if raw := strings.TrimSpace(q.Get("incidencias_dias")); raw != "" {
			days, err := strconv.Atoi(raw)
			if err != nil || days < 0 {
				http.Error(w, "incidencias_dias must be a non-negative integer", http.StatusBadRequest)
				return
			}
			since := time.Now().UTC().AddDate(0, 0, -days)
			filter.IncidentsSince = &since
		}

		if raw := strings.TrimSpace(q.Get("inactivas")); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				http.Error(w, "inactivas must be a boolean", http.StatusBadRequest)
				return
			}
			filter.IncludeInactive = v
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]SowResponse, 0, len(items))
		for _, s := range items {
			out = append(out, ToResponse(s))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getSowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		s, err := svc.GetByID(r.Context(), chi.URLParam(r, "sowID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(s))
	}
}

func updateSowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateSowRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Code:   req.Code,
			Name:   req.Name,
			Barn:   req.Barn,
			Origin: req.Origin,
			Status: req.Status,
			Parity: req.Parity,
			Active: req.Active,
		}
		if req.BirthDate != nil {
			t, err := breeding.ParseDate(strings.TrimSpace(*req.BirthDate))
			if err != nil {
				http.Error(w, "fecha_nacimiento must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.BirthDate = &t
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "sowID"), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(updated))
	}
}

func deactivateSowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		s, err := svc.Deactivate(r.Context(), chi.URLParam(r, "sowID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(s))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "sow not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicateCode):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := breeding.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(breeding.DateLayout)
	return &s
}

func ToResponse(s Sow) SowResponse {
	return SowResponse{
		ID:             s.ID,
		Code:           s.Code,
		Name:           s.Name,
		Status:         s.Status,
		Parity:         s.Parity,
		Averages:       s.Averages,
		Barn:           s.Barn,
		Origin:         s.Origin,
		RegisteredAt:   formatDate(s.RegisteredAt),
		BirthDate:      formatDate(s.BirthDate),
		LastIncidentAt: s.LastIncidentAt,
		Active:         s.Active,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		CreatedBy:      s.CreatedBy,
	}
}

// writeJSON está duplicado en los handlers de cada módulo (sows/events/...).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
