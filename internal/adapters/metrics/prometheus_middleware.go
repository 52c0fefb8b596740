package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
)

// PrometheusMiddleware records duration, outcome and concurrency for every
// mediator request. Command names drop the package prefix:
// "*commands.CreateShipCommand" becomes "CreateShipCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		done := collector.Begin(common.RequestName(request))
		start := time.Now()
		response, err := next(ctx, request)
		done(time.Since(start).Seconds(), err)

		return response, err
	}
}
