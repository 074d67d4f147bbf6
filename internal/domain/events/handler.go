package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sow-breeding-records/internal/domain/boars"
	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/events/details"
	"sow-breeding-records/internal/domain/sows"
	"sow-breeding-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, sowsSvc *sows.Service) {
	r.Route("/sows/{sowID}/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))
		er.Get("/", listEventsHandler(svc, sowsSvc))
		er.Get("/{eventID}", getEventHandler(svc))

		// Corrección de fecha/notas
		er.Patch("/{eventID}", updateEventHandler(svc))
	})

	// Recalcula paridad y medios desde el historial
	r.Post("/sows/{sowID}/rebuild", rebuildHandler(svc))
}

// createEventRequest es el cuerpo para registrar un evento reproductivo.
type createEventRequest struct {
	Kind  breeding.EventKind `json:"tipo_evento" enums:"cubricion,parto,destete,gestacion,ecografia,baja"`
	Date  string             `json:"fecha"` // YYYY-MM-DD opcional, por defecto hoy
	Notes string             `json:"notas"`
	Data  json.RawMessage    `json:"datos" swaggertype:"object"`
}

type updateEventRequest struct {
	Date  *string `json:"fecha"`
	Notes *string `json:"notas"`
}

// eventResponse es un evento reproductivo devuelto por la API.
type eventResponse struct {
	ID        string             `json:"id"`
	SowID     string             `json:"cerda_id"`
	Kind      breeding.EventKind `json:"tipo_evento"`
	Date      string             `json:"fecha"`
	Data      details.Payload    `json:"datos" swaggertype:"object"`
	Notes     string             `json:"notas"`
	UserID    string             `json:"usuario_id"`
	CreatedAt time.Time          `json:"created_at"`
}

// recordResponse devuelve el evento y la cerda ya actualizada.
type recordResponse struct {
	Event eventResponse    `json:"evento"`
	Sow   sows.SowResponse `json:"cerda"`
}

// createEventHandler godoc
// @Summary Registrar evento reproductivo
// @Description Registra un evento sobre la cerda y aplica su transición (cubricion → cubierta, parto → parto con paridad+1, destete → destete con medios recalculados). gestacion, ecografia y baja sólo se registran. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sowID path string true "ID de la cerda"
// @Param payload body createEventRequest true "Evento; fecha en formato YYYY-MM-DD"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / fecha inválida / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "sow not found"
// @Failure 409 {string} string "no farrowing on record / sow is not active"
// @Router /sows/{sowID}/events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var date *time.Time
		if v := strings.TrimSpace(req.Date); v != "" {
			t, err := breeding.ParseDate(v)
			if err != nil {
				http.Error(w, "fecha must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = &t
		}

		data, err := details.Decode(req.Kind, req.Data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := svc.Record(r.Context(), chi.URLParam(r, "sowID"), claims.UserID, RecordInput{
			Kind:  req.Kind,
			Date:  date,
			Notes: req.Notes,
			Data:  data,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, recordResponse{
			Event: toEventResponse(res.Event),
			Sow:   sows.ToResponse(res.Sow),
		})
	}
}

// listEventsHandler godoc
// @Summary Listar eventos de una cerda
// @Description Historial de la cerda, más reciente primero. Permite filtrar por tipos y rango de fechas.
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sowID path string true "ID de la cerda"
// @Param limit query int false "Máximo de eventos a devolver (1-200). Por defecto 50"
// @Param tipos query string false "Lista CSV de tipos (ej: parto,destete)"
// @Param desde query string false "Fecha mínima (YYYY-MM-DD)"
// @Param hasta query string false "Fecha máxima (YYYY-MM-DD)"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "sow not found"
// @Failure 500 {string} string "internal error"
// @Router /sows/{sowID}/events [get]
func listEventsHandler(svc *Service, sowsSvc *sows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sowID := chi.URLParam(r, "sowID")
		if _, err := sowsSvc.GetByID(r.Context(), sowID); err != nil {
			writeError(w, err)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListBySow(r.Context(), sowID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getEventHandler godoc
// @Summary Obtener un evento
// @Tags events
// @Produce json
// @Param sowID path string true "ID de la cerda"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "event not found"
// @Router /sows/{sowID}/events/{eventID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "sowID"), chi.URLParam(r, "eventID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// updateEventHandler godoc
// @Summary Corregir fecha o notas de un evento
// @Description Sólo fecha y notas son editables. No recalcula la cerda; usar /sows/{sowID}/rebuild si la corrección altera el orden de partos y destetes.
// @Tags events
// @Accept json
// @Produce json
// @Param sowID path string true "ID de la cerda"
// @Param eventID path string true "ID del evento"
// @Param payload body updateEventRequest true "Campos a corregir"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid json / fecha inválida / notas demasiado largas"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "event not found"
// @Router /sows/{sowID}/events/{eventID} [patch]
func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateEventRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{Notes: req.Notes}
		if req.Date != nil {
			t, err := breeding.ParseDate(strings.TrimSpace(*req.Date))
			if err != nil {
				http.Error(w, "fecha must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &t
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "sowID"), chi.URLParam(r, "eventID"), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// rebuildHandler godoc
// @Summary Reconstruir paridad y medios
// @Description Recorre el historial en orden cronológico y recalcula paridad y medios históricos. El estado no cambia.
// @Tags events
// @Produce json
// @Param sowID path string true "ID de la cerda"
// @Success 200 {object} sows.SowResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "sow not found"
// @Failure 409 {string} string "no farrowing on record"
// @Router /sows/{sowID}/rebuild [post]
func rebuildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		s, err := svc.Rebuild(r.Context(), chi.URLParam(r, "sowID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sows.ToResponse(s))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, details.ErrInvalidPayload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, boars.ErrNotFound), errors.Is(err, boars.ErrInactive):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sows.ErrNotFound):
		http.Error(w, "sow not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, breeding.ErrNoFarrowing), errors.Is(err, sows.ErrInactive):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// tipos=parto,destete
	if v := strings.TrimSpace(r.URL.Query().Get("tipos")); v != "" {
		for _, p := range strings.Split(v, ",") {
			k := breeding.EventKind(strings.TrimSpace(p))
			if k == "" {
				continue
			}
			if !k.Valid() {
				return ListFilter{}, errors.New("unknown tipo_evento: " + string(k))
			}
			filter.Kinds = append(filter.Kinds, k)
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("desde")); v != "" {
		t, err := breeding.ParseDate(v)
		if err != nil {
			return ListFilter{}, errors.New("desde must be YYYY-MM-DD")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("hasta")); v != "" {
		t, err := breeding.ParseDate(v)
		if err != nil {
			return ListFilter{}, errors.New("hasta must be YYYY-MM-DD")
		}
		filter.To = &t
	}

	return filter, nil
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		SowID:     e.SowID,
		Kind:      e.Kind,
		Date:      e.Date.Format(breeding.DateLayout),
		Data:      e.Data,
		Notes:     e.Notes,
		UserID:    e.UserID,
		CreatedAt: e.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
