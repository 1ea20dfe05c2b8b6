package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Quoting records quote and listing activity. A nil *Quoting is a valid no-op.
type Quoting struct {
	quotes        *prometheus.CounterVec
	quoteDuration *prometheus.HistogramVec
	probes        *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

// NewQuoting registers the collectors on reg. A nil registerer yields a no-op recorder.
func NewQuoting(reg prometheus.Registerer) *Quoting {
	if reg == nil {
		return &Quoting{}
	}

	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_total",
		Help: "Quotation requests by source and outcome.",
	}, []string{"source", "outcome"})
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of quotation requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	probes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_probes_total",
		Help: "Upstream quote probes issued while synthesizing vehicle listings.",
	}, []string{"outcome"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_cache_lookups_total",
		Help: "Vehicle listing cache lookups by result.",
	}, []string{"result"})

	reg.MustRegister(quotes, quoteDuration, probes, cacheLookups)
	return &Quoting{
		quotes:        quotes,
		quoteDuration: quoteDuration,
		probes:        probes,
		cacheLookups:  cacheLookups,
	}
}

func (q *Quoting) ObserveQuote(source string, err error, took time.Duration) {
	if q == nil || q.quotes == nil {
		return
	}
	source = normalizeLabel(source)
	q.quotes.WithLabelValues(source, outcome(err)).Inc()
	q.quoteDuration.WithLabelValues(source).Observe(took.Seconds())
}

func (q *Quoting) IncProbe(err error) {
	if q == nil || q.probes == nil {
		return
	}
	q.probes.WithLabelValues(outcome(err)).Inc()
}

func (q *Quoting) IncCacheLookup(hit bool) {
	if q == nil || q.cacheLookups == nil {
		return
	}
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	q.cacheLookups.WithLabelValues(result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
