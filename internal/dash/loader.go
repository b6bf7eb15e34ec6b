package dash

import "context"

// CacheKey identifies one fetchable dataset. At most one cache entry and at
// most one in-flight fetch exist per key.
type CacheKey struct {
	AppID uint64
	View  View
}

// Result is a finished tab fetch, observed through Poll.
type Result struct {
	Key  CacheKey
	Data Dataset
	Err  error
}

// MetricResult is a finished metric-series fetch from the single drill slot.
type MetricResult struct {
	AppID  uint64
	Metric string
	Series any
	Err    error
}

type pendingLoad struct {
	cancel context.CancelFunc
	done   chan Result
}

type metricLoad struct {
	appID  uint64
	metric string
	cancel context.CancelFunc
	done   chan MetricResult
}

// Loader dispatches background fetches and reports completion without ever
// blocking. All methods are called from the event-loop goroutine only; the
// spawned fetch goroutines hand results back through buffered channels and
// never touch shared state.
type Loader struct {
	gw      Gateway
	pending map[CacheKey]*pendingLoad
	metric  *metricLoad
}

func NewLoader(gw Gateway) *Loader {
	return &Loader{gw: gw, pending: make(map[CacheKey]*pendingLoad)}
}

// Start dispatches a fetch for key unless one is already in flight.
func (l *Loader) Start(key CacheKey) {
	if _, ok := l.pending[key]; ok {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() {
		data, err := l.fetch(ctx, key)
		done <- Result{Key: key, Data: data, Err: err}
	}()
	l.pending[key] = &pendingLoad{cancel: cancel, done: done}
}

func (l *Loader) fetch(ctx context.Context, key CacheKey) (Dataset, error) {
	switch key.View {
	case ViewEndpoints:
		payload, err := l.gw.Endpoints(ctx, key.AppID)
		if err != nil {
			return Dataset{}, err
		}
		return endpointDataset(payload), nil
	case ViewInsights:
		payload, err := l.gw.Insights(ctx, key.AppID)
		if err != nil {
			return Dataset{}, err
		}
		return insightDataset(payload), nil
	case ViewMetrics:
		names, err := l.gw.MetricTypes(ctx, key.AppID)
		if err != nil {
			return Dataset{}, err
		}
		return metricsDataset(names), nil
	default:
		groups, err := l.gw.ErrorGroups(ctx, key.AppID)
		if err != nil {
			return Dataset{}, err
		}
		return errorsDataset(groups), nil
	}
}

// Poll drains every finished tab fetch without blocking. Results come back
// in observation order, not dispatch order; callers re-check relevance
// before applying them.
func (l *Loader) Poll() []Result {
	var out []Result
	for key, p := range l.pending {
		select {
		case r := <-p.done:
			delete(l.pending, key)
			out = append(out, r)
		default:
		}
	}
	return out
}

// StartMetric dispatches a metric-series fetch, aborting any outstanding
// one first. Only one series fetch is ever in flight.
func (l *Loader) StartMetric(appID uint64, metricType string) {
	if l.metric != nil {
		l.metric.cancel()
		l.metric = nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan MetricResult, 1)
	go func() {
		series, err := l.gw.MetricSeries(ctx, appID, metricType)
		done <- MetricResult{AppID: appID, Metric: metricType, Series: series, Err: err}
	}()
	l.metric = &metricLoad{appID: appID, metric: metricType, cancel: cancel, done: done}
}

// PollMetric reports the finished series fetch, if any, without blocking.
// A fetch superseded by StartMetric or CancelAll is never reported.
func (l *Loader) PollMetric() (MetricResult, bool) {
	if l.metric == nil {
		return MetricResult{}, false
	}
	select {
	case r := <-l.metric.done:
		l.metric = nil
		return r, true
	default:
		return MetricResult{}, false
	}
}

// MetricPending reports the in-flight series fetch, if any.
func (l *Loader) MetricPending() (uint64, string, bool) {
	if l.metric == nil {
		return 0, "", false
	}
	return l.metric.appID, l.metric.metric, true
}

// Pending reports whether key has an in-flight fetch.
func (l *Loader) Pending(key CacheKey) bool {
	_, ok := l.pending[key]
	return ok
}

// Busy counts in-flight fetches, including the metric slot.
func (l *Loader) Busy() int {
	n := len(l.pending)
	if l.metric != nil {
		n++
	}
	return n
}

// CancelAll aborts every in-flight fetch and forgets it. Abort is
// best-effort: the goroutines may still complete, but their results are
// unreachable once removed from the pending set. A key may be re-dispatched
// immediately.
func (l *Loader) CancelAll() {
	for key, p := range l.pending {
		p.cancel()
		delete(l.pending, key)
	}
	if l.metric != nil {
		l.metric.cancel()
		l.metric = nil
	}
}
