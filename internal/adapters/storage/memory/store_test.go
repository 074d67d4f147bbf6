package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sow-breeding-records/internal/domain/boars"
	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/events"
	"sow-breeding-records/internal/domain/events/details"
	"sow-breeding-records/internal/domain/sows"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSow(t *testing.T, s *Store, id, code string) sows.Sow {
	t.Helper()
	sow := sows.Sow{ID: id, Code: code, Status: breeding.StatusInService, Active: true}
	require.NoError(t, s.Sows().Create(context.Background(), sow))
	return sow
}

func TestSowRepo_UniqueCode(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedSow(t, s, "s1", "C-1")
	b := seedSow(t, s, "s2", "C-2")

	err := s.Sows().Create(ctx, sows.Sow{ID: "s3", Code: "C-1"})
	assert.ErrorIs(t, err, sows.ErrDuplicateCode)

	b.Code = "C-1"
	assert.ErrorIs(t, s.Sows().Update(ctx, b), sows.ErrDuplicateCode)

	_, err = s.Sows().GetByID(ctx, "nope")
	assert.ErrorIs(t, err, sows.ErrNotFound)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedSow(t, s, "s1", "C-1")

	err := s.WithinTx(ctx, func(ctx context.Context, tx events.TxRepos) error {
		sow, err := tx.Sows.GetByID(ctx, "s1")
		require.NoError(t, err)
		sow.Status = breeding.StatusServed
		if err := tx.Events.Create(ctx, events.Event{ID: "e1", SowID: "s1", Kind: breeding.KindService}); err != nil {
			return err
		}
		return tx.Sows.Update(ctx, sow)
	})
	require.NoError(t, err)

	sow, err := s.Sows().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, breeding.StatusServed, sow.Status)

	_, err = s.Events().GetByID(ctx, "e1")
	assert.NoError(t, err)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedSow(t, s, "s1", "C-1")
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, tx events.TxRepos) error {
		sow, _ := tx.Sows.GetByID(ctx, "s1")
		sow.Parity = 9
		require.NoError(t, tx.Sows.Update(ctx, sow))
		require.NoError(t, tx.Events.Create(ctx, events.Event{ID: "e1", SowID: "s1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	sow, err := s.Sows().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, sow.Parity)

	_, err = s.Events().GetByID(ctx, "e1")
	assert.ErrorIs(t, err, events.ErrNotFound)
}

func TestEventRepo_OrderAndFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedSow(t, s, "s1", "C-1")
	off := seedSow(t, s, "s2", "C-2")
	off.Active = false
	require.NoError(t, s.Sows().Update(ctx, off))

	d := func(v string) time.Time { dt, _ := breeding.ParseDate(v); return dt }
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := s.Events()
	for _, e := range []events.Event{
		{ID: "a", SowID: "s1", Kind: breeding.KindService, Date: d("2024-01-01"), CreatedAt: base},
		{ID: "b", SowID: "s1", Kind: breeding.KindFarrowing, Date: d("2024-04-24"), CreatedAt: base.Add(time.Minute)},
		{ID: "c", SowID: "s1", Kind: breeding.KindFarrowing, Date: d("2024-04-24"), CreatedAt: base.Add(2 * time.Minute)},
		{ID: "z", SowID: "s2", Kind: breeding.KindService, Date: d("2024-02-01"), CreatedAt: base},
	} {
		require.NoError(t, repo.Create(ctx, e))
	}

	all, err := repo.ListBySow(ctx, "s1", events.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	latest, err := repo.ListBySow(ctx, "s1", events.ListFilter{Kinds: []breeding.EventKind{breeding.KindFarrowing}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "c", latest[0].ID)

	from := d("2024-02-01")
	ranged, err := repo.ListBySow(ctx, "s1", events.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	services, err := repo.ListByKind(ctx, breeding.KindService)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "a", services[0].ID)
}

func TestStore_EndToEndWeaning(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedSow(t, s, "s1", "C-1")

	boarRepo := NewBoarRepo()
	boarSvc := boars.NewService(boarRepo)
	b, err := boarSvc.Create(ctx, boars.CreateInput{Code: "V-1"})
	require.NoError(t, err)

	svc := events.NewService(s.Events(), s, boarSvc, nil)

	_, err = svc.Record(ctx, "s1", "u", events.RecordInput{Kind: breeding.KindService, Data: details.Mating{BoarID: b.ID}})
	require.NoError(t, err)
	_, err = svc.Record(ctx, "s1", "u", events.RecordInput{Kind: breeding.KindFarrowing, Data: details.Farrowing{BornAlive: 12}})
	require.NoError(t, err)
	res, err := svc.Record(ctx, "s1", "u", events.RecordInput{Kind: breeding.KindWeaning, Data: details.Weaning{PigletsWeaned: 9}})
	require.NoError(t, err)

	assert.Equal(t, breeding.Averages{BornAlive: 12, Weaned: 9, Viability: 75}, *res.Sow.Averages)

	sow, err := s.Sows().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, res.Sow, sow)
}

func TestStore_ConcurrentReadsDuringTx(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedSow(t, s, "s1", "C-1")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.WithinTx(ctx, func(ctx context.Context, tx events.TxRepos) error {
				sow, err := tx.Sows.GetByID(ctx, "s1")
				if err != nil {
					return err
				}
				sow.Parity++
				return tx.Sows.Update(ctx, sow)
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Sows().List(ctx, sows.ListFilter{})
		}()
	}
	wg.Wait()

	sow, err := s.Sows().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 20, sow.Parity)
}
