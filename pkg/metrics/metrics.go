package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the till's business counters. A nil *Recorder is valid and records nothing.
type Recorder struct {
	gatherer        prometheus.Gatherer
	salesCommitted  prometheus.Counter
	commitFailures  *prometheus.CounterVec
	saleAmount      prometheus.Histogram
	receiptsPrinted prometheus.Counter
	restores        *prometheus.CounterVec
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	r := &Recorder{
		gatherer: reg,
		salesCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_sales_committed_total",
			Help: "Sales committed to the store.",
		}),
		commitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_sale_commit_failures_total",
			Help: "Sale commits that were rejected or rolled back, by error kind.",
		}, []string{"kind"}),
		saleAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pos_sale_total_amount",
			Help:    "Grand total of committed sales.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}),
		receiptsPrinted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_receipts_printed_total",
			Help: "Receipt print actions recorded.",
		}),
		restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_restores_total",
			Help: "Restore runs by period.",
		}, []string{"period"}),
	}
	reg.MustRegister(r.salesCommitted, r.commitFailures, r.saleAmount, r.receiptsPrinted, r.restores)
	return r
}

func (r *Recorder) SaleCommitted(total float64) {
	if r == nil {
		return
	}
	r.salesCommitted.Inc()
	r.saleAmount.Observe(total)
}

func (r *Recorder) SaleFailed(kind string) {
	if r == nil {
		return
	}
	r.commitFailures.WithLabelValues(kind).Inc()
}

func (r *Recorder) ReceiptPrinted() {
	if r == nil {
		return
	}
	r.receiptsPrinted.Inc()
}

func (r *Recorder) Restored(period string) {
	if r == nil {
		return
	}
	r.restores.WithLabelValues(period).Inc()
}

// Handler exposes the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
