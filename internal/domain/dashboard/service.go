package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/sows"
	"sow-breeding-records/internal/platform/cache"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	CacheKey     = "dashboard:stats"
	DefaultTTL   = 30 * time.Second
	StaleDryDays = 60
)

type SowLister interface {
	List(ctx context.Context, filter sows.ListFilter) ([]sows.Sow, error)
}

type IncidentCounter interface {
	CountOpen(ctx context.Context, since *time.Time) (int, error)
}

// Service calcula las estadísticas y las guarda en el KV hasta que expiran
// o alguna escritura llama a Invalidate.
type Service struct {
	sows      SowLister
	incidents IncidentCounter
	kv        cache.KVStore
	ttl       time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewService(sowLister SowLister, incidents IncidentCounter, kv cache.KVStore, ttl time.Duration, log *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		sows:      sowLister,
		incidents: incidents,
		kv:        kv,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
	}
}

// Get devuelve las estadísticas cacheadas o las recalcula.
// Un KV caído no rompe el dashboard: se loguea y se calcula en el momento.
func (s *Service) Get(ctx context.Context) (Stats, error) {
	raw, err := s.kv.Get(ctx, CacheKey)
	switch {
	case err == nil:
		var st Stats
		if jerr := json.Unmarshal([]byte(raw), &st); jerr == nil {
			return st, nil
		}
		s.log.Warn("dashboard cache corrupt", zap.String("key", CacheKey))
	case !errors.Is(err, cache.ErrCacheMiss):
		s.log.Warn("dashboard cache get failed", zap.Error(err))
	}

	st, err := s.Compute(ctx)
	if err != nil {
		return Stats{}, err
	}

	if b, err := json.Marshal(st); err == nil {
		if err := s.kv.Set(ctx, CacheKey, string(b), s.ttl); err != nil {
			s.log.Warn("dashboard cache set failed", zap.Error(err))
		}
	}
	return st, nil
}

// Invalidate descarta las estadísticas cacheadas.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.kv.Delete(ctx, CacheKey); err != nil {
		s.log.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}

// Compute recalcula sin pasar por el cache.
func (s *Service) Compute(ctx context.Context) (Stats, error) {
	active, err := s.sows.List(ctx, sows.ListFilter{})
	if err != nil {
		return Stats{}, err
	}

	now := s.now()
	st := Stats{
		TotalSows: len(active),
		ByStatus:  make(map[breeding.Status]int, len(breeding.Statuses())),
	}
	for _, status := range breeding.Statuses() {
		st.ByStatus[status] = 0
	}

	var (
		sumBorn, sumWeaned, sumViability decimal.Decimal
		withAverages                     int64
	)
	staleBefore := now.AddDate(0, 0, -StaleDryDays)

	for _, sow := range active {
		st.ByStatus[sow.Status]++

		if sow.Status == breeding.StatusDry && sow.UpdatedAt.Before(staleBefore) {
			st.StaleDry++
		}

		if sow.Averages == nil || sow.Averages.BornAlive <= 0 {
			continue
		}
		withAverages++
		sumBorn = sumBorn.Add(decimal.NewFromFloat(sow.Averages.BornAlive))
		sumWeaned = sumWeaned.Add(decimal.NewFromFloat(sow.Averages.Weaned))
		sumViability = sumViability.Add(decimal.NewFromInt(int64(sow.Averages.Viability)))
	}

	if withAverages > 0 {
		n := decimal.NewFromInt(withAverages)
		st.MeanBornAlive = mean(sumBorn, n)
		st.MeanWeaned = mean(sumWeaned, n)
		st.MeanViability = mean(sumViability, n)
	}

	if st.OpenIncidents, err = s.incidents.CountOpen(ctx, nil); err != nil {
		return Stats{}, err
	}
	since := now.Add(-24 * time.Hour)
	if st.OpenIncidents24h, err = s.incidents.CountOpen(ctx, &since); err != nil {
		return Stats{}, err
	}

	return st, nil
}

func mean(sum, n decimal.Decimal) float64 {
	f, _ := sum.Div(n).Round(1).Float64()
	return f
}
