package prom

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	xhttp "github.com/bdauda29-ux/bdj-ledger/pkg/http"
	"github.com/bdauda29-ux/bdj-ledger/pkg/logger"
)

const (
	SystemLedger = "ledger"
)

const (
	MetricTransactionsCreated  = "transactions_created_total"
	MetricTransactionsPaid     = "transactions_paid_total"
	MetricTransactionsEdited   = "transactions_edited_total"
	MetricTransactionsDeleted  = "transactions_deleted_total"
	MetricTransactionsRestored = "transactions_restored_total"
	MetricBalanceEntries       = "balance_entries_total"
	MetricOperationDuration    = "operation_duration_seconds"
)

var (
	mu        sync.Mutex
	namespace = "none"
	enabled   = false

	counters      = make(map[string]prometheus.Counter)
	counterVecs   = make(map[string]*prometheus.CounterVec)
	histogramVecs = make(map[string]*prometheus.HistogramVec)

	defaultLabels prometheus.Labels
)

// Create registers the ledger metric set and enables collection.
func Create(host string, env string, nameSpace string) error {
	defaultLabels = prometheus.Labels{"env": env, "instance": host}
	namespace = nameSpace
	enabled = true

	var err error
	hasError := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	hasError(createCounter(SystemLedger, MetricTransactionsCreated))
	hasError(createCounter(SystemLedger, MetricTransactionsPaid))
	hasError(createCounter(SystemLedger, MetricTransactionsEdited))
	hasError(createCounter(SystemLedger, MetricTransactionsDeleted))
	hasError(createCounter(SystemLedger, MetricTransactionsRestored))
	hasError(createCounterVec(SystemLedger, MetricBalanceEntries, []string{"type"}))
	hasError(createHistogramVec(SystemLedger, MetricOperationDuration, []string{"op"}))

	return err
}

// ListenAndServe exposes /metrics (or url) on its own listener.
func ListenAndServe(addr string, url string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.CreateServer()
	s.GET(url, hh)
	logger.Info("[metrics-server] listening...", "url", url)
	if err := s.ListenAndServe(addr); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}

func createCounter(subsystem, name string) error {
	mu.Lock()
	defer mu.Unlock()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	})
	counters[subsystem+name] = c
	return prometheus.Register(c)
}

func createCounterVec(subsystem, name string, labels []string) error {
	mu.Lock()
	defer mu.Unlock()
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	}, labels)
	counterVecs[subsystem+name] = c
	return prometheus.Register(c)
}

func createHistogramVec(subsystem, name string, labels []string) error {
	mu.Lock()
	defer mu.Unlock()
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
		Buckets:     prometheus.DefBuckets,
	}, labels)
	histogramVecs[subsystem+name] = h
	return prometheus.Register(h)
}

func IncCounter(subsystem, name string) {
	if !enabled {
		return
	}
	if v, ok := counters[subsystem+name]; ok {
		v.Inc()
		return
	}
	logger.Warn("[metrics-server] counter not found", "subsystem", subsystem, "name", name)
}

func IncCounterVec(subsystem, name string, labelValues ...string) {
	if !enabled {
		return
	}
	if v, ok := counterVecs[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Inc()
		return
	}
	logger.Warn("[metrics-server] counter vec not found", "subsystem", subsystem, "name", name)
}

func ObserveHistogramVec(subsystem, name string, value float64, labelValues ...string) {
	if !enabled {
		return
	}
	if v, ok := histogramVecs[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Observe(value)
		return
	}
	logger.Warn("[metrics-server] histogram not found", "subsystem", subsystem, "name", name)
}
