package boars

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byID map[string]Boar
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: map[string]Boar{}} }

func (f *fakeRepo) Create(_ context.Context, b Boar) error {
	for _, e := range f.byID {
		if e.Code == b.Code {
			return ErrDuplicateCode
		}
	}
	f.byID[b.ID] = b
	return nil
}

func (f *fakeRepo) Update(_ context.Context, b Boar) error {
	if _, ok := f.byID[b.ID]; !ok {
		return ErrNotFound
	}
	f.byID[b.ID] = b
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (Boar, error) {
	b, ok := f.byID[id]
	if !ok {
		return Boar{}, ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) List(_ context.Context, activeOnly bool) ([]Boar, error) {
	out := []Boar{}
	for _, b := range f.byID {
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func newTestService() *Service {
	svc := NewService(newFakeRepo())
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreate_ActiveByDefault(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), CreateInput{Code: " V-01 ", Name: "Tornado", Breed: "Duroc"})
	require.NoError(t, err)
	assert.Equal(t, "V-01", b.Code)
	assert.True(t, b.Active)

	_, err = svc.Create(context.Background(), CreateInput{Code: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetActive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateInput{Code: "V-01"})
	require.NoError(t, err)

	got, err := svc.GetActive(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	off := false
	_, err = svc.Update(ctx, b.ID, UpdateInput{Active: &off})
	require.NoError(t, err)

	_, err = svc.GetActive(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInactive)

	_, err = svc.GetActive(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_ActiveOnly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{Code: "V-02"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Code: "V-01"})
	require.NoError(t, err)

	off := false
	_, err = svc.Update(ctx, a.ID, UpdateInput{Active: &off})
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "V-01", all[0].Code)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "V-01", active[0].Code)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateInput{Code: "V-01"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrNotFound)
}
