// Package observability publishes request metrics to CloudWatch.
package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchClient is the subset of the CloudWatch API the metrics
// publisher uses.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, input *cloudwatch.PutMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics publishes per-route request count and latency. Disabled instances
// are no-ops so callers never branch.
type Metrics struct {
	client    CloudWatchClient
	namespace string
	enabled   bool
	logger    *zap.Logger
}

// NewMetrics creates a metrics publisher. Pass enabled=false to disable
// publication entirely.
func NewMetrics(client CloudWatchClient, namespace string, enabled bool, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		enabled:   enabled,
		logger:    logger,
	}
}

// RecordRequest publishes one request observation. Failures are logged and
// never affect the request path.
func (m *Metrics) RecordRequest(ctx context.Context, route string, status int, duration time.Duration) {
	if !m.enabled {
		return
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Route"), Value: aws.String(route)},
		{Name: aws.String("Status"), Value: aws.String(strconv.Itoa(status))},
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("RequestCount"),
				Dimensions: dimensions,
				Value:      aws.Float64(1),
				Unit:       types.StandardUnitCount,
			},
			{
				MetricName: aws.String("RequestLatency"),
				Dimensions: dimensions,
				Value:      aws.Float64(float64(duration.Milliseconds())),
				Unit:       types.StandardUnitMilliseconds,
			},
		},
	})
	if err != nil {
		m.logger.Warn("failed to publish request metrics",
			zap.Error(err),
			zap.String("route", route),
		)
	}
}
