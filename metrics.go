package ancestree

import (
	"context"
	"time"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/prometheus/client_golang/prometheus"
)

type instrumentedProvider struct {
	cp        CountProvider
	queries   *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

/*
InstrumentProvider takes a CountProvider and a prometheus Registerer
and returns a CountProvider that forwards every request to the given
one, recording on the registerer the number of requests made and their
durations by method. An error is returned if the metrics cannot be
registered.
*/
func InstrumentProvider(cp CountProvider, reg prometheus.Registerer) (CountProvider, error) {
	ip := &instrumentedProvider{
		cp: cp,
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ancestree",
			Subsystem: "provider",
			Name:      "queries_total",
			Help:      "Number of label count requests made to the count provider.",
		}, []string{"method"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ancestree",
			Subsystem: "provider",
			Name:      "query_duration_seconds",
			Help:      "Duration of label count requests made to the count provider.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"method"}),
	}
	for _, c := range []prometheus.Collector{ip.queries, ip.durations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return ip, nil
}

func (ip *instrumentedProvider) observe(method string, start time.Time) {
	ip.queries.WithLabelValues(method).Inc()
	ip.durations.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (ip *instrumentedProvider) RootCounts(ctx context.Context) (*counts.Table, error) {
	defer ip.observe("RootCounts", time.Now())
	return ip.cp.RootCounts(ctx)
}

func (ip *instrumentedProvider) CountsWith(ctx context.Context, p feature.Path, f feature.Feature) (*counts.Table, error) {
	defer ip.observe("CountsWith", time.Now())
	return ip.cp.CountsWith(ctx, p, f)
}

// CountsFor accumulates through the instrumented methods when
// the wrapped provider cannot count paths itself.
func (ip *instrumentedProvider) CountsFor(ctx context.Context, p feature.Path) (*counts.Table, error) {
	pc, ok := ip.cp.(PathCounter)
	if !ok {
		return accumulateCounts(ctx, ip, p)
	}
	defer ip.observe("CountsFor", time.Now())
	return pc.CountsFor(ctx, p)
}
