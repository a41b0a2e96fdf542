// Package metrics exposes process counters/histograms for Prometheus
// scraping (spec.md's ambient observability stack).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the control plane registers.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	PurchasesTotal     *prometheus.CounterVec
	RechargeAmountCoin *prometheus.CounterVec

	TrafficTuplesTotal   prometheus.Counter
	TrafficTuplesAcked   prometheus.Counter
	TrafficBytesIngested *prometheus.CounterVec

	NodeHeartbeatsTotal *prometheus.CounterVec
	NodesOnline         prometheus.Gauge

	DBQueryDuration *prometheus.HistogramVec
	CacheHitsTotal  *prometheus.CounterVec
	CacheMissTotal  *prometheus.CounterVec
}

func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	f := promauto.With(registry)

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: "nodal_http_requests_total", Help: "Total HTTP requests"},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nodal_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "path"},
		),
		PurchasesTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: "nodal_purchases_total", Help: "Total package purchase attempts"},
			[]string{"status"},
		),
		RechargeAmountCoin: f.NewCounterVec(
			prometheus.CounterOpts{Name: "nodal_recharge_amount_coin_total", Help: "Total coin recharged"},
			[]string{"status"},
		),
		TrafficTuplesTotal: f.NewCounter(
			prometheus.CounterOpts{Name: "nodal_traffic_tuples_total", Help: "Total traffic tuples read from the stream"},
		),
		TrafficTuplesAcked: f.NewCounter(
			prometheus.CounterOpts{Name: "nodal_traffic_tuples_acked_total", Help: "Total traffic tuples acknowledged after a committed update"},
		),
		TrafficBytesIngested: f.NewCounterVec(
			prometheus.CounterOpts{Name: "nodal_traffic_bytes_ingested_total", Help: "Total traffic bytes ingested"},
			[]string{"direction"},
		),
		NodeHeartbeatsTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: "nodal_node_heartbeats_total", Help: "Total node heartbeat calls"},
			[]string{"status"},
		),
		NodesOnline: f.NewGauge(
			prometheus.GaugeOpts{Name: "nodal_nodes_online", Help: "Current count of online nodes"},
		),
		DBQueryDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nodal_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),
		CacheHitsTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: "nodal_cache_hits_total", Help: "Total cache hits"},
			[]string{"cache"},
		),
		CacheMissTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: "nodal_cache_misses_total", Help: "Total cache misses"},
			[]string{"cache"},
		),
	}
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObservePurchase(status string) {
	m.PurchasesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRecharge(status string, amount int64) {
	m.RechargeAmountCoin.WithLabelValues(status).Add(float64(amount))
}

func (m *Metrics) ObserveTrafficBatch(tupleCount, ackedCount int, uploadBytes, downloadBytes uint64) {
	m.TrafficTuplesTotal.Add(float64(tupleCount))
	m.TrafficTuplesAcked.Add(float64(ackedCount))
	m.TrafficBytesIngested.WithLabelValues("upload").Add(float64(uploadBytes))
	m.TrafficBytesIngested.WithLabelValues("download").Add(float64(downloadBytes))
}

func (m *Metrics) ObserveHeartbeat(status string) {
	m.NodeHeartbeatsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) SetNodesOnline(count int) {
	m.NodesOnline.Set(float64(count))
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) ObserveCacheHit(cache string)  { m.CacheHitsTotal.WithLabelValues(cache).Inc() }
func (m *Metrics) ObserveCacheMiss(cache string) { m.CacheMissTotal.WithLabelValues(cache).Inc() }
