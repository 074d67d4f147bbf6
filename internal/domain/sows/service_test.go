package sows

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"sow-breeding-records/internal/domain/breeding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu   sync.Mutex
	byID map[string]Sow
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]Sow{}}
}

func (f *fakeRepo) Create(_ context.Context, s Sow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Code == s.Code {
			return ErrDuplicateCode
		}
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeRepo) Update(_ context.Context, s Sow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[s.ID]; !ok {
		return ErrNotFound
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (Sow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return Sow{}, ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) List(_ context.Context, filter ListFilter) ([]Sow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Sow{}
	for _, s := range f.byID {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate(context.Context) { c.n++ }

func fixedNow() time.Time {
	return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
}

func newTestService() (*Service, *fakeRepo, *countingInvalidator) {
	repo := newFakeRepo()
	inv := &countingInvalidator{}
	svc := NewService(repo).WithInvalidator(inv)
	svc.now = fixedNow
	return svc, repo, inv
}

func TestRegister_StartsInServiceWithZeroParity(t *testing.T) {
	svc, _, inv := newTestService()

	s, err := svc.Register(context.Background(), "user-1", RegisterInput{Code: " C-001 ", Name: "Lola", Barn: "N1"})
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "C-001", s.Code)
	assert.Equal(t, breeding.StatusInService, s.Status)
	assert.Equal(t, 0, s.Parity)
	assert.Nil(t, s.Averages)
	assert.True(t, s.Active)
	assert.Equal(t, "user-1", s.CreatedBy)
	require.NotNil(t, s.RegisteredAt)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *s.RegisteredAt)
	assert.Equal(t, 1, inv.n)
}

func TestRegister_RequiresCode(t *testing.T) {
	svc, _, inv := newTestService()

	_, err := svc.Register(context.Background(), "user-1", RegisterInput{Code: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, inv.n)
}

func TestRegister_DuplicateCode(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "u", RegisterInput{Code: "C-001"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, "u", RegisterInput{Code: "C-001"})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_AdminStatusOverride(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	s, err := svc.Register(ctx, "u", RegisterInput{Code: "C-001"})
	require.NoError(t, err)

	culled := breeding.StatusCulled
	name := "Rosa"
	updated, err := svc.Update(ctx, s.ID, UpdateInput{Status: &culled, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, breeding.StatusCulled, updated.Status)
	assert.Equal(t, "Rosa", updated.Name)

	bogus := breeding.Status("volando")
	_, err = svc.Update(ctx, s.ID, UpdateInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)

	empty := " "
	_, err = svc.Update(ctx, s.ID, UpdateInput{Code: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_AdminParity(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	s, err := svc.Register(ctx, "u", RegisterInput{Code: "C-001"})
	require.NoError(t, err)

	three := 3
	updated, err := svc.Update(ctx, s.ID, UpdateInput{Parity: &three})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Parity)
	assert.Nil(t, updated.Averages)
	assert.Equal(t, 3, repo.byID[s.ID].Parity)

	negative := -1
	_, err = svc.Update(ctx, s.ID, UpdateInput{Parity: &negative})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 3, repo.byID[s.ID].Parity)
}

func TestDeactivate_HidesFromDefaultList(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "u", RegisterInput{Code: "A"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, "u", RegisterInput{Code: "B"})
	require.NoError(t, err)

	off, err := svc.Deactivate(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, off.Active)

	items, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Code)

	all, err := svc.List(ctx, ListFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTouchIncident_KeepsMostRecent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	s, err := svc.Register(ctx, "u", RegisterInput{Code: "A"})
	require.NoError(t, err)

	later := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	earlier := later.Add(-48 * time.Hour)

	require.NoError(t, svc.TouchIncident(ctx, s.ID, later))
	require.NoError(t, svc.TouchIncident(ctx, s.ID, earlier))

	got := repo.byID[s.ID]
	require.NotNil(t, got.LastIncidentAt)
	assert.Equal(t, later, *got.LastIncidentAt)
}

func TestListFilter_Matches(t *testing.T) {
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	recent := since.Add(time.Hour)
	old := since.Add(-time.Hour)

	base := Sow{Code: "C-017", Name: "Paca", Status: breeding.StatusServed, Active: true}

	tests := []struct {
		name   string
		sow    func(Sow) Sow
		filter ListFilter
		want   bool
	}{
		{"no filter", nil, ListFilter{}, true},
		{"inactive hidden", func(s Sow) Sow { s.Active = false; return s }, ListFilter{}, false},
		{"inactive included", func(s Sow) Sow { s.Active = false; return s }, ListFilter{IncludeInactive: true}, true},
		{"status match", nil, ListFilter{Statuses: []breeding.Status{breeding.StatusDry, breeding.StatusServed}}, true},
		{"status mismatch", nil, ListFilter{Statuses: []breeding.Status{breeding.StatusDry}}, false},
		{"search code", nil, ListFilter{Search: "c-01"}, true},
		{"search name", nil, ListFilter{Search: "PACA"}, true},
		{"search miss", nil, ListFilter{Search: "lola"}, false},
		{"incident none", nil, ListFilter{IncidentsSince: &since}, false},
		{"incident old", func(s Sow) Sow { s.LastIncidentAt = &old; return s }, ListFilter{IncidentsSince: &since}, false},
		{"incident recent", func(s Sow) Sow { s.LastIncidentAt = &recent; return s }, ListFilter{IncidentsSince: &since}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			if tt.sow != nil {
				s = tt.sow(s)
			}
			assert.Equal(t, tt.want, tt.filter.Matches(s))
		})
	}
}
