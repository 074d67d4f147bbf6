package events

import (
	"time"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/events/details"
)

// Event es un hecho reproductivo registrado sobre una cerda.
type Event struct {
	ID    string
	SowID string

	Kind breeding.EventKind
	Date time.Time // fecha civil del hecho
	Data details.Payload

	Notes  string
	UserID string

	CreatedAt time.Time
}

// Farrowing devuelve los datos de parto si el evento es un parto.
func (e Event) Farrowing() (details.Farrowing, bool) {
	f, ok := e.Data.(details.Farrowing)
	return f, ok && e.Kind == breeding.KindFarrowing
}

// History convierte el evento a la forma que usa breeding.Rebuild.
func (e Event) History() breeding.HistoryEvent {
	h := breeding.HistoryEvent{
		ID:         e.ID,
		Kind:       e.Kind,
		Date:       e.Date,
		RecordedAt: e.CreatedAt,
	}
	switch d := e.Data.(type) {
	case details.Farrowing:
		h.BornAlive = d.BornAlive
	case details.Weaning:
		h.Weaned = d.PigletsWeaned
		h.FarrowingID = d.FarrowingID
	}
	return h
}
