package schedule

import (
	"context"
	"testing"
	"time"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/events"
	"sow-breeding-records/internal/domain/sows"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvents []events.Event

func (f fakeEvents) ListByKind(_ context.Context, kind breeding.EventKind) ([]events.Event, error) {
	out := []events.Event{}
	for _, e := range f {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSows []sows.Sow

func (f fakeSows) List(_ context.Context, filter sows.ListFilter) ([]sows.Sow, error) {
	out := []sows.Sow{}
	for _, s := range f {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func date(s string) time.Time {
	t, err := breeding.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func service(id, sowID, day string) events.Event {
	return events.Event{ID: id, SowID: sowID, Kind: breeding.KindService, Date: date(day)}
}

func TestForDate(t *testing.T) {
	herd := fakeSows{
		{ID: "s1", Code: "C-1", Name: "Lola", Status: breeding.StatusServed, Active: true},
		{ID: "s2", Code: "C-2", Status: breeding.StatusPregnant, Active: true},
		{ID: "s3", Code: "C-3", Status: breeding.StatusInService, Active: true},
		{ID: "s4", Code: "C-4", Status: breeding.StatusFarrowed, Active: true},
		{ID: "s5", Code: "C-5", Status: breeding.StatusServed, Active: false},
	}
	evs := fakeEvents{
		service("e1", "s1", "2024-01-01"), // revisión 01-22, parto 04-24
		service("e2", "s2", "2024-01-02"), // gestante: no revisión
		service("e3", "s5", "2024-01-01"), // inactiva
		{ID: "p1", SowID: "s4", Kind: breeding.KindFarrowing, Date: date("2024-01-01")},
	}
	svc := NewService(evs, herd)

	t.Run("checkup window", func(t *testing.T) {
		a, err := svc.ForDate(context.Background(), date("2024-01-23"))
		require.NoError(t, err)

		require.Len(t, a.ExpectedCheckups, 1)
		c := a.ExpectedCheckups[0]
		assert.Equal(t, "e1", c.EventID)
		assert.Equal(t, "Lola", c.SowName)
		assert.Equal(t, -1, c.OffsetDays)
		assert.Empty(t, a.ExpectedFarrowings)

		require.Len(t, a.ReadyForService, 1)
		assert.Equal(t, "s3", a.ReadyForService[0].ID)
		require.Len(t, a.Lactating, 1)
		assert.Equal(t, "s4", a.Lactating[0].ID)
	})

	t.Run("farrowing window ignores status", func(t *testing.T) {
		a, err := svc.ForDate(context.Background(), date("2024-04-26"))
		require.NoError(t, err)

		require.Len(t, a.ExpectedFarrowings, 2)
		ids := []string{a.ExpectedFarrowings[0].EventID, a.ExpectedFarrowings[1].EventID}
		assert.ElementsMatch(t, []string{"e1", "e2"}, ids)
		assert.Empty(t, a.ExpectedCheckups)
	})

	t.Run("nothing due", func(t *testing.T) {
		a, err := svc.ForDate(context.Background(), date("2024-03-01"))
		require.NoError(t, err)
		assert.Empty(t, a.ExpectedFarrowings)
		assert.Empty(t, a.ExpectedCheckups)
		assert.NotNil(t, a.ExpectedFarrowings)
	})
}

func TestForDate_NoDedupe(t *testing.T) {
	herd := fakeSows{{ID: "s1", Code: "C-1", Status: breeding.StatusServed, Active: true}}
	evs := fakeEvents{
		service("e1", "s1", "2024-01-01"),
		service("e2", "s1", "2024-01-03"),
	}

	a, err := NewService(evs, herd).ForDate(context.Background(), date("2024-01-23"))
	require.NoError(t, err)
	assert.Len(t, a.ExpectedCheckups, 2)
}
