package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"sow-breeding-records/internal/domain/sows"
)

type sowRepo struct {
	store *Store
	tx    *state
}

func (r *sowRepo) view(write bool, fn func(st *state) error) error {
	return r.store.view(r.tx, write, fn)
}

func (r *sowRepo) Create(ctx context.Context, s sows.Sow) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("sow id required")
	}
	return r.view(true, func(st *state) error {
		if _, exists := st.sows[s.ID]; exists {
			return errors.New("sow already exists")
		}
		if codeTaken(st, s) {
			return sows.ErrDuplicateCode
		}
		st.sows[s.ID] = s
		return nil
	})
}

func (r *sowRepo) Update(ctx context.Context, s sows.Sow) error {
	return r.view(true, func(st *state) error {
		if _, exists := st.sows[s.ID]; !exists {
			return sows.ErrNotFound
		}
		if codeTaken(st, s) {
			return sows.ErrDuplicateCode
		}
		st.sows[s.ID] = s
		return nil
	})
}

func (r *sowRepo) GetByID(ctx context.Context, id string) (sows.Sow, error) {
	var out sows.Sow
	err := r.view(false, func(st *state) error {
		s, ok := st.sows[id]
		if !ok {
			return sows.ErrNotFound
		}
		out = s
		return nil
	})
	return out, err
}

func (r *sowRepo) List(ctx context.Context, filter sows.ListFilter) ([]sows.Sow, error) {
	out := make([]sows.Sow, 0)
	err := r.view(false, func(st *state) error {
		for _, s := range st.sows {
			if filter.Matches(s) {
				out = append(out, s)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func codeTaken(st *state, s sows.Sow) bool {
	for _, other := range st.sows {
		if other.ID != s.ID && other.Code == s.Code {
			return true
		}
	}
	return false
}
