// Package services file: services/metrics.go
package services

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"go-meetups/logger"
)

// Namespace for all sync metrics
var metricsNamespace = "GoMeetups"

// CloudWatchMetrics publishes sync observability data to CloudWatch.
// Publishing is fire-and-forget: failures are logged, never returned,
// and never affect a sync.
type CloudWatchMetrics struct {
	client *cloudwatch.CloudWatch
}

var _ SyncMetrics = (*CloudWatchMetrics)(nil)

// NewCloudWatchMetrics builds a publisher on the default AWS session.
func NewCloudWatchMetrics() *CloudWatchMetrics {
	return &CloudWatchMetrics{client: cloudwatch.New(session.Must(session.NewSession()))}
}

// PublishSyncDuration pushes how long a full user sync took (in ms)
func (m *CloudWatchMetrics) PublishSyncDuration(d time.Duration) {
	m.putMetric("SyncDurationMs", float64(d.Milliseconds()), "Milliseconds", "all")
}

// PublishRecordsCreated pushes the record count for one sync category
func (m *CloudWatchMetrics) PublishRecordsCreated(category string, count int) {
	m.putMetric("RecordsCreated", float64(count), "Count", category)
}

// PublishSyncFailure pushes a counter for an aborted sync
func (m *CloudWatchMetrics) PublishSyncFailure() {
	m.putMetric("SyncFailures", 1, "Count", "all")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func (m *CloudWatchMetrics) putMetric(metricName string, value float64, unit string, category string) {
	_, err := m.client.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Dimensions: []*cloudwatch.Dimension{
					{
						Name:  aws.String("Category"),
						Value: aws.String(category),
					},
				},
				Timestamp: aws.Time(time.Now()),
				Value:     aws.Float64(value),
				Unit:      aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
