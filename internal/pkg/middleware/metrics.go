package middleware

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores HTTP expostos em /metrics.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inflight        *prometheus.GaugeVec
	gatherer        prometheus.Gatherer
}

// NewMetrics registra as métricas HTTP (e, se db != nil, as do pool de conexões) no registry.
func NewMetrics(reg *prometheus.Registry, db *sql.DB) (*Metrics, error) {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requisições processadas",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latência das requisições HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requisições em andamento por método e rota",
		}, []string{"method", "path"}),
		gatherer: reg,
	}

	collectors := []prometheus.Collector{m.requestsTotal, m.requestDuration, m.inflight}
	if db != nil {
		collectors = append(collectors, newDBPoolCollector(db))
	}
	for _, c := range collectors {
		if err := registerCollector(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler devolve o handler de exposição do /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Instrument mede contagem, latência e requisições em andamento.
// O rótulo path usa o padrão de rota do chi, evitando um rótulo por id.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.ToUpper(r.Method)
		inflightPath := normalizePath(r.URL.Path)

		m.inflight.WithLabelValues(method, inflightPath).Inc()
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			m.inflight.WithLabelValues(method, inflightPath).Dec()

			pathLabel := routePattern(r)
			m.requestDuration.WithLabelValues(method, pathLabel).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(method, pathLabel, strconv.Itoa(rec.Status())).Inc()
		}()

		next.ServeHTTP(rec, r)
	})
}

// registerCollector registra o coletor ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// routePattern usa o padrão casado pelo chi; fora do roteador cai para o path normalizado.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return normalizePath(r.URL.Path)
}

// normalizePath troca segmentos numéricos por {id}.
func normalizePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	out := segments[:0]
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
			seg = "{id}"
		}
		out = append(out, seg)
	}
	return "/" + strings.Join(out, "/")
}

// dbPoolCollector expõe gauges do pool do database/sql.
type dbPoolCollector struct {
	db *sql.DB

	openDesc      *prometheus.Desc
	inUseDesc     *prometheus.Desc
	idleDesc      *prometheus.Desc
	waitCountDesc *prometheus.Desc
}

func newDBPoolCollector(db *sql.DB) *dbPoolCollector {
	return &dbPoolCollector{
		db:            db,
		openDesc:      prometheus.NewDesc("db_pool_open_connections", "Conexões abertas no pool", nil, nil),
		inUseDesc:     prometheus.NewDesc("db_pool_in_use", "Conexões em uso", nil, nil),
		idleDesc:      prometheus.NewDesc("db_pool_idle", "Conexões ociosas", nil, nil),
		waitCountDesc: prometheus.NewDesc("db_pool_wait_count_total", "Total de esperas por conexão", nil, nil),
	}
}

func (c *dbPoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.openDesc
	ch <- c.inUseDesc
	ch <- c.idleDesc
	ch <- c.waitCountDesc
}

func (c *dbPoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.db.Stats()
	ch <- prometheus.MustNewConstMetric(c.openDesc, prometheus.GaugeValue, float64(stats.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUseDesc, prometheus.GaugeValue, float64(stats.InUse))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(stats.Idle))
	ch <- prometheus.MustNewConstMetric(c.waitCountDesc, prometheus.CounterValue, float64(stats.WaitCount))
}
