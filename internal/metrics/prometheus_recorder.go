package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdlinks"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	filesChecked prom.Counter
	linksChecked *prom.CounterVec
	findings     *prom.CounterVec
	cacheLookups *prom.CounterVec
	runDuration  prom.Histogram
	runOutcome   *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		filesChecked: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_checked_total",
			Help:      "Markdown files whose links were validated",
		}),
		linksChecked: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_checked_total",
			Help:      "Links validated, by link kind",
		}, []string{"kind"}),
		findings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Broken or invalid links, by finding kind",
		}, []string{"kind"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "document_cache_lookups_total",
			Help:      "Document cache lookups by result",
		}, []string{"result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete check run",
			Buckets:   prom.DefBuckets,
		}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Check runs by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.filesChecked, pr.linksChecked, pr.findings, pr.cacheLookups, pr.runDuration, pr.runOutcome)
	return pr
}

func (p *PrometheusRecorder) IncFilesChecked() {
	if p == nil {
		return
	}
	p.filesChecked.Inc()
}

func (p *PrometheusRecorder) IncLinksChecked(kind string) {
	if p == nil {
		return
	}
	p.linksChecked.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncFinding(kind string) {
	if p == nil {
		return
	}
	p.findings.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncCacheLookup(hit bool) {
	if p == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheLookups.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}
