package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "sow-breeding-records/docs"
	mem "sow-breeding-records/internal/adapters/storage/memory"
	pg "sow-breeding-records/internal/adapters/storage/postgres"
	"sow-breeding-records/internal/domain/boars"
	"sow-breeding-records/internal/domain/dashboard"
	"sow-breeding-records/internal/domain/events"
	"sow-breeding-records/internal/domain/incidents"
	"sow-breeding-records/internal/domain/schedule"
	"sow-breeding-records/internal/domain/sows"
	"sow-breeding-records/internal/middleware"
	"sow-breeding-records/internal/platform/cache"
	"sow-breeding-records/internal/platform/metrics"
	"sow-breeding-records/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: cache del dashboard (Redis). Si no, in-memory.
	KV           cache.KVStore
	DashboardTTL time.Duration

	Logger *zap.Logger

	// Opcional: registry propio (tests). Si no, uno nuevo con collectors de Go/proceso.
	Registry *prometheus.Registry
}

// repos agrupa los repositorios de un backend concreto.
type repos struct {
	sows      sows.Repository
	events    events.Repository
	tx        events.Transactor
	boars     boars.Repository
	incidents incidents.Repository
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	kv := opts.KV
	if kv == nil {
		kv = cache.NewMemoryKVStore()
	}
	m := metrics.New(reg)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(m.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler(reg))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var rp repos
	if opts.DB != nil {
		store := pg.NewStore(opts.DB)
		rp = repos{
			sows:      store.Sows(),
			events:    store.Events(),
			tx:        store,
			boars:     pg.NewBoarsRepo(opts.DB),
			incidents: pg.NewIncidentsRepo(opts.DB),
		}
	} else {
		store := mem.NewStore()
		rp = repos{
			sows:      store.Sows(),
			events:    store.Events(),
			tx:        store,
			boars:     mem.NewBoarRepo(),
			incidents: mem.NewIncidentRepo(),
		}
	}

	// Services por módulo
	sowsSvc := sows.NewService(rp.sows)
	boarsSvc := boars.NewService(rp.boars)
	dashSvc := dashboard.NewService(sowsSvc, rp.incidents, kv, opts.DashboardTTL, log)

	sowsSvc.WithInvalidator(dashSvc)
	eventsSvc := events.NewService(rp.events, rp.tx, boarsSvc, log).
		WithInvalidator(dashSvc).
		WithMetrics(m)
	incidentsSvc := incidents.NewService(rp.incidents, sowsSvc).WithInvalidator(dashSvc)
	scheduleSvc := schedule.NewService(rp.events, rp.sows)

	// Rutas por módulo
	sows.RegisterRoutes(r, sowsSvc)
	events.RegisterRoutes(r, eventsSvc, sowsSvc)
	incidents.RegisterRoutes(r, incidentsSvc)
	boars.RegisterRoutes(r, boarsSvc)
	schedule.RegisterRoutes(r, scheduleSvc)
	dashboard.RegisterRoutes(r, dashSvc)

	return r
}
