package memory

import (
	"context"
	"errors"
	"sort"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/events"
)

type eventRepo struct {
	store *Store
	tx    *state
}

func (r *eventRepo) view(write bool, fn func(st *state) error) error {
	return r.store.view(r.tx, write, fn)
}

func (r *eventRepo) Create(ctx context.Context, e events.Event) error {
	if e.ID == "" {
		return errors.New("event id required")
	}
	return r.view(true, func(st *state) error {
		if _, exists := st.events[e.ID]; exists {
			return errors.New("event already exists")
		}
		st.events[e.ID] = e
		return nil
	})
}

func (r *eventRepo) Update(ctx context.Context, e events.Event) error {
	return r.view(true, func(st *state) error {
		if _, exists := st.events[e.ID]; !exists {
			return events.ErrNotFound
		}
		st.events[e.ID] = e
		return nil
	})
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	var out events.Event
	err := r.view(false, func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return events.ErrNotFound
		}
		out = e
		return nil
	})
	return out, err
}

func (r *eventRepo) ListBySow(ctx context.Context, sowID string, filter events.ListFilter) ([]events.Event, error) {
	out := make([]events.Event, 0)
	err := r.view(false, func(st *state) error {
		for _, e := range st.events {
			if e.SowID == sowID && filter.Matches(e) {
				out = append(out, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return events.Less(out[i], out[j]) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *eventRepo) ListByKind(ctx context.Context, kind breeding.EventKind) ([]events.Event, error) {
	out := make([]events.Event, 0)
	err := r.view(false, func(st *state) error {
		for _, e := range st.events {
			if e.Kind != kind {
				continue
			}
			if s, ok := st.sows[e.SowID]; !ok || !s.Active {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return events.Less(out[i], out[j]) })
	return out, nil
}
