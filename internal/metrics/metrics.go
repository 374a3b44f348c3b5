// Package metrics exposes wallet, settlement and HTTP metrics to
// Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "wallet"

// Collector implements the wallet engine's MetricsCollector on top of a
// Prometheus registry.
type Collector struct {
	gatherer prometheus.Gatherer

	operationDuration *prometheus.HistogramVec
	operationResults  *prometheus.CounterVec
	errors            *prometheus.CounterVec
	transactions      *prometheus.CounterVec
	volume            *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	settlements       *prometheus.CounterVec
	queueDepth        prometheus.Gauge
	httpLatency       *prometheus.HistogramVec
}

// NewCollector registers all metrics with reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewCollector(reg *prometheus.Registry) *Collector {
	f := promauto.With(reg)
	return &Collector{
		gatherer: reg,
		operationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of wallet operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		operationResults: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_results_total",
			Help:      "Wallet operations by terminal result.",
		}, []string{"operation", "result"}),
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Wallet operation failures by error code.",
		}, []string{"operation", "code"}),
		transactions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Committed ledger entries.",
		}, []string{"type"}),
		volume: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transaction_volume_total",
			Help:      "Sum of committed ledger entry amounts.",
		}, []string{"type"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Read cache lookups by outcome.",
		}, []string{"cache", "outcome"}),
		settlements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlement attempts by direction and outcome.",
		}, []string{"direction", "outcome"}),
		queueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "settlement_queue_depth",
			Help:      "Tasks waiting in the settlement queue.",
		}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (c *Collector) RecordOperationDuration(operation string, d time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *Collector) RecordOperationResult(operation, result string) {
	c.operationResults.WithLabelValues(operation, result).Inc()
}

func (c *Collector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}

func (c *Collector) RecordTransaction(txType string, amount decimal.Decimal) {
	c.transactions.WithLabelValues(txType).Inc()
	c.volume.WithLabelValues(txType).Add(amount.InexactFloat64())
}

func (c *Collector) RecordCacheHit(cache string) {
	c.cacheLookups.WithLabelValues(cache, "hit").Inc()
}

func (c *Collector) RecordCacheMiss(cache string) {
	c.cacheLookups.WithLabelValues(cache, "miss").Inc()
}

func (c *Collector) RecordSettlement(direction string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.settlements.WithLabelValues(direction, outcome).Inc()
}

func (c *Collector) SetQueueDepth(n int) {
	c.queueDepth.Set(float64(n))
}

// Middleware observes request latency labelled by the matched route.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := ctx.Route().Path
		if route == "" {
			route = ctx.Path()
		}
		c.httpLatency.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
