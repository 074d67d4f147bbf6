package schedule

import (
	"context"
	"time"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/events"
	"sow-breeding-records/internal/domain/sows"
)

type EventLister interface {
	ListByKind(ctx context.Context, kind breeding.EventKind) ([]events.Event, error)
}

type SowLister interface {
	List(ctx context.Context, filter sows.ListFilter) ([]sows.Sow, error)
}

// Entry es una cubrición cuya fecha proyectada cae en la ventana del día.
type Entry struct {
	breeding.Projection
	SowName string
}

// Agenda es lo previsto para un día.
type Agenda struct {
	Date               time.Time
	ExpectedFarrowings []Entry
	ExpectedCheckups   []Entry
	ReadyForService    []sows.Sow // en_servicio
	Lactating          []sows.Sow // parto
}

type Service struct {
	events EventLister
	sows   SowLister
	now    func() time.Time
}

func NewService(ev EventLister, sl SowLister) *Service {
	return &Service{events: ev, sows: sl, now: time.Now}
}

// Today es la fecha civil actual.
func (s *Service) Today() time.Time {
	return breeding.Date(s.now())
}

// ForDate arma la agenda de d. Sólo cuenta cerdas activas; no se deduplica:
// una cerda con dos cubriciones en ventana aparece dos veces.
func (s *Service) ForDate(ctx context.Context, d time.Time) (Agenda, error) {
	d = breeding.Date(d)

	active, err := s.sows.List(ctx, sows.ListFilter{})
	if err != nil {
		return Agenda{}, err
	}
	byID := make(map[string]sows.Sow, len(active))
	agenda := Agenda{
		Date:               d,
		ExpectedFarrowings: []Entry{},
		ExpectedCheckups:   []Entry{},
		ReadyForService:    []sows.Sow{},
		Lactating:          []sows.Sow{},
	}
	for _, sow := range active {
		byID[sow.ID] = sow
		switch sow.Status {
		case breeding.StatusInService:
			agenda.ReadyForService = append(agenda.ReadyForService, sow)
		case breeding.StatusFarrowed:
			agenda.Lactating = append(agenda.Lactating, sow)
		}
	}

	services, err := s.events.ListByKind(ctx, breeding.KindService)
	if err != nil {
		return Agenda{}, err
	}

	records := make([]breeding.ServiceRecord, 0, len(services))
	for _, e := range services {
		sow, ok := byID[e.SowID]
		if !ok {
			continue
		}
		records = append(records, breeding.ServiceRecord{
			EventID:     e.ID,
			SowID:       sow.ID,
			SowCode:     sow.Code,
			SowStatus:   sow.Status,
			ServiceDate: e.Date,
		})
	}

	for p := range breeding.FarrowingsDue(d, records) {
		agenda.ExpectedFarrowings = append(agenda.ExpectedFarrowings, Entry{Projection: p, SowName: byID[p.SowID].Name})
	}
	for p := range breeding.CheckupsDue(d, records) {
		agenda.ExpectedCheckups = append(agenda.ExpectedCheckups, Entry{Projection: p, SowName: byID[p.SowID].Name})
	}

	return agenda, nil
}
