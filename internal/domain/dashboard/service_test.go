package dashboard

import (
	"context"
	"testing"
	"time"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/sows"
	"sow-breeding-records/internal/platform/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSows struct {
	items []sows.Sow
	calls int
}

func (f *fakeSows) List(_ context.Context, filter sows.ListFilter) ([]sows.Sow, error) {
	f.calls++
	out := []sows.Sow{}
	for _, s := range f.items {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeIncidents struct {
	open []time.Time
}

func (f fakeIncidents) CountOpen(_ context.Context, since *time.Time) (int, error) {
	n := 0
	for _, at := range f.open {
		if since == nil || !at.Before(*since) {
			n++
		}
	}
	return n, nil
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func herd() []sows.Sow {
	return []sows.Sow{
		{ID: "1", Status: breeding.StatusWeaned, Active: true, UpdatedAt: now,
			Averages: &breeding.Averages{BornAlive: 12, Weaned: 10, Viability: 83}},
		{ID: "2", Status: breeding.StatusWeaned, Active: true, UpdatedAt: now,
			Averages: &breeding.Averages{BornAlive: 13.5, Weaned: 11.2, Viability: 83}},
		// sin nacidos vivos: fuera de las medias
		{ID: "3", Status: breeding.StatusDry, Active: true, UpdatedAt: now.AddDate(0, 0, -61),
			Averages: &breeding.Averages{}},
		{ID: "4", Status: breeding.StatusDry, Active: true, UpdatedAt: now.AddDate(0, 0, -10)},
		{ID: "5", Status: breeding.StatusServed, Active: true, UpdatedAt: now},
		// inactiva: no cuenta
		{ID: "6", Status: breeding.StatusDry, Active: false, UpdatedAt: now.AddDate(-1, 0, 0)},
	}
}

func newTestService(t *testing.T, kv cache.KVStore) (*Service, *fakeSows) {
	t.Helper()
	fs := &fakeSows{items: herd()}
	inc := fakeIncidents{open: []time.Time{now.Add(-2 * time.Hour), now.AddDate(0, 0, -3)}}
	svc := NewService(fs, inc, kv, 0, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, fs
}

func TestCompute(t *testing.T) {
	svc, _ := newTestService(t, cache.NewMemoryKVStore())

	st, err := svc.Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, st.TotalSows)
	assert.Equal(t, 2, st.ByStatus[breeding.StatusWeaned])
	assert.Equal(t, 2, st.ByStatus[breeding.StatusDry])
	assert.Equal(t, 1, st.ByStatus[breeding.StatusServed])
	assert.Equal(t, 0, st.ByStatus[breeding.StatusCulled])
	assert.Len(t, st.ByStatus, len(breeding.Statuses()))

	assert.Equal(t, 12.8, st.MeanBornAlive) // 12.75
	assert.Equal(t, 10.6, st.MeanWeaned)
	assert.Equal(t, 83.0, st.MeanViability)

	assert.Equal(t, 2, st.OpenIncidents)
	assert.Equal(t, 1, st.OpenIncidents24h)
	assert.Equal(t, 1, st.StaleDry)
}

func TestCompute_EmptyHerd(t *testing.T) {
	svc := NewService(&fakeSows{}, fakeIncidents{}, cache.NewMemoryKVStore(), 0, nil)

	st, err := svc.Compute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.TotalSows)
	assert.Zero(t, st.MeanBornAlive)
}

func TestGet_CachesUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc, fs := newTestService(t, cache.NewRedisKVStore(client))
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(CacheKey))
	assert.Equal(t, DefaultTTL, mr.TTL(CacheKey))

	second, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fs.calls)

	svc.Invalidate(ctx)
	assert.False(t, mr.Exists(CacheKey))

	_, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fs.calls)
}

func TestGet_KVDownStillServes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	svc, _ := newTestService(t, cache.NewRedisKVStore(client))

	st, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, st.TotalSows)
}

func TestGet_CorruptEntryRecomputes(t *testing.T) {
	kv := cache.NewMemoryKVStore()
	require.NoError(t, kv.Set(context.Background(), CacheKey, "{not json", 0))

	svc, fs := newTestService(t, kv)

	st, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, st.TotalSows)
	assert.Equal(t, 1, fs.calls)
}
