package dash

import "context"

// Gateway is the engine's view of the remote API: one read-only query per
// (entity, filter). Implementations must honor context cancellation and
// enforce their own request timeouts; the engine treats a timeout as an
// ordinary fetch failure.
type Gateway interface {
	Endpoints(ctx context.Context, appID uint64) (any, error)
	Insights(ctx context.Context, appID uint64) (any, error)
	MetricTypes(ctx context.Context, appID uint64) ([]string, error)
	MetricSeries(ctx context.Context, appID uint64, metricType string) (any, error)
	ErrorGroups(ctx context.Context, appID uint64) ([]any, error)
}
