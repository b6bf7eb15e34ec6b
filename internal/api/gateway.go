package api

import (
	"context"

	"github.com/scoutapm/scout-cli/internal/timeutil"
)

// Dashboard tabs always query a fixed trailing window; drill-downs reuse it.
const (
	tabWindow       = "7days"
	tabInsightLimit = 50
)

// Gateway binds Client to the per-view query contract the dashboard engine
// expects (dash.Gateway). Each method issues exactly one logical query.
type Gateway struct {
	Client *Client
}

func (g Gateway) Endpoints(ctx context.Context, appID uint64) (any, error) {
	return g.Client.ListEndpoints(ctx, appID, "", "", tabWindow)
}

func (g Gateway) Insights(ctx context.Context, appID uint64) (any, error) {
	return g.Client.GetAllInsights(ctx, appID, tabInsightLimit)
}

func (g Gateway) MetricTypes(ctx context.Context, appID uint64) ([]string, error) {
	return g.Client.ListMetrics(ctx, appID)
}

func (g Gateway) MetricSeries(ctx context.Context, appID uint64, metricType string) (any, error) {
	return g.Client.GetMetric(ctx, appID, metricType, "", "", tabWindow)
}

func (g Gateway) ErrorGroups(ctx context.Context, appID uint64) ([]any, error) {
	from, to, err := timeutil.CalculateRange(tabWindow, "")
	if err != nil {
		return nil, err
	}
	return g.Client.ListErrorGroups(ctx, appID, from, to, "")
}
