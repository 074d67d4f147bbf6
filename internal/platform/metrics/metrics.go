// Package metrics expone contadores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sows"

type Metrics struct {
	eventsRecorded *prometheus.CounterVec
	eventsRejected *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registra los colectores en reg. Con un registry nuevo por proceso
// (o por test) no hay colisiones de registro.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		eventsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_recorded_total",
			Help:      "Eventos reproductivos registrados, por tipo.",
		}, []string{"tipo"}),
		eventsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_rejected_total",
			Help:      "Eventos rechazados, por tipo y motivo.",
		}, []string{"tipo", "motivo"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.eventsRecorded, m.eventsRejected, m.httpDuration)
	return m
}

// NewRegistry crea un registry con los colectores de proceso y runtime.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (m *Metrics) EventRecorded(kind string) {
	m.eventsRecorded.WithLabelValues(kind).Inc()
}

func (m *Metrics) EventRejected(kind, reason string) {
	m.eventsRejected.WithLabelValues(kind, reason).Inc()
}

// Middleware mide la duración por patrón de ruta chi, no por path concreto.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// Handler sirve /metrics desde g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
