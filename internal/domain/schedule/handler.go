package schedule

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/sows"
	"sow-breeding-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// ?fecha=YYYY-MM-DD, por defecto hoy
	r.Get("/schedule", getScheduleHandler(svc))
}

// EntryResponse y AgendaResponse son exportados para el cliente CLI.
type EntryResponse struct {
	EventID      string          `json:"evento_id"`
	SowID        string          `json:"cerda_id"`
	SowCode      string          `json:"codigo"`
	SowName      string          `json:"nombre"`
	SowStatus    breeding.Status `json:"estado"`
	ServiceDate  string          `json:"fecha_cubricion"`
	ExpectedDate string          `json:"fecha_prevista"`
	OffsetDays   int             `json:"dias_diferencia"`
}

type SowRef struct {
	ID     string          `json:"id"`
	Code   string          `json:"codigo"`
	Name   string          `json:"nombre"`
	Status breeding.Status `json:"estado"`
	Barn   string          `json:"nave"`
}

type AgendaResponse struct {
	Date               string          `json:"fecha"`
	ExpectedFarrowings []EntryResponse `json:"partos_previstos"`
	ExpectedCheckups   []EntryResponse `json:"revisiones_previstas"`
	ReadyForService    []SowRef        `json:"en_servicio"`
	Lactating          []SowRef        `json:"en_lactancia"`
}

func getScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d := svc.Today()
		if v := strings.TrimSpace(r.URL.Query().Get("fecha")); v != "" {
			t, err := breeding.ParseDate(v)
			if err != nil {
				http.Error(w, "fecha must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			d = t
		}

		agenda, err := svc.ForDate(r.Context(), d)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toAgendaResponse(agenda))
	}
}

func toAgendaResponse(a Agenda) AgendaResponse {
	return AgendaResponse{
		Date:               formatDate(a.Date),
		ExpectedFarrowings: toEntries(a.ExpectedFarrowings),
		ExpectedCheckups:   toEntries(a.ExpectedCheckups),
		ReadyForService:    toRefs(a.ReadyForService),
		Lactating:          toRefs(a.Lactating),
	}
}

func toEntries(in []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(in))
	for _, e := range in {
		out = append(out, EntryResponse{
			EventID:      e.EventID,
			SowID:        e.SowID,
			SowCode:      e.SowCode,
			SowName:      e.SowName,
			SowStatus:    e.SowStatus,
			ServiceDate:  formatDate(e.ServiceDate),
			ExpectedDate: formatDate(e.ExpectedDate),
			OffsetDays:   e.OffsetDays,
		})
	}
	return out
}

func toRefs(in []sows.Sow) []SowRef {
	out := make([]SowRef, 0, len(in))
	for _, s := range in {
		out = append(out, SowRef{
			ID:     s.ID,
			Code:   s.Code,
			Name:   s.Name,
			Status: s.Status,
			Barn:   s.Barn,
		})
	}
	return out
}

func formatDate(t time.Time) string {
	return t.Format(breeding.DateLayout)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
