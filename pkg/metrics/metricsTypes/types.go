// Package metricsTypes defines the metrics client interface and the metric
// names emitted by the decoder.
package metricsTypes

import "time"

type IMetricsClient interface {
	Incr(name string, labels []MetricsLabel, value float64) error
	Gauge(name string, value float64, labels []MetricsLabel) error
	Timing(name string, value time.Duration, labels []MetricsLabel) error
	Flush()
}

type MetricsLabel struct {
	Name  string
	Value string
}

type MetricsType string

var (
	MetricsType_Incr   MetricsType = "incr"
	MetricsType_Gauge  MetricsType = "gauge"
	MetricsType_Timing MetricsType = "timing"
)

type MetricsTypeConfig struct {
	Name   string
	Labels []string
}

var (
	Metric_Incr_TransactionDecoded = "transactionDecoded"
	Metric_Incr_TransactionFailed  = "transactionDecodeFailed"
	Metric_Incr_LogDecoded         = "logDecoded"
	Metric_Incr_LogDecodeFailed    = "logDecodeFailed"
	Metric_Incr_EventProduced      = "eventProduced"
	Metric_Incr_ActionItemExpired  = "actionItemExpired"

	Metric_Timing_TransactionDecodeDuration = "transactionDecodeDuration"
)

// MetricTypes enumerates every metric the decoder emits, with its labels.
var MetricTypes = map[MetricsType][]MetricsTypeConfig{
	MetricsType_Incr: {
		MetricsTypeConfig{
			Name:   Metric_Incr_TransactionDecoded,
			Labels: []string{},
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_TransactionFailed,
			Labels: []string{"reason"},
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_LogDecoded,
			Labels: []string{},
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_LogDecodeFailed,
			Labels: []string{},
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_EventProduced,
			Labels: []string{"event_type"},
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_ActionItemExpired,
			Labels: []string{},
		},
	},
	MetricsType_Timing: {
		MetricsTypeConfig{
			Name:   Metric_Timing_TransactionDecodeDuration,
			Labels: []string{"hasError"},
		},
	},
}
