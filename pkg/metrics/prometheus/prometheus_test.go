package prometheus

import (
	"testing"

	"github.com/ledgerscope/txdecoder/internal/logger"
	"github.com/ledgerscope/txdecoder/pkg/metrics/metricsTypes"
	"github.com/stretchr/testify/assert"
)

func Test_UnexpectedLabelsParsing(t *testing.T) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	assert.Nil(t, err)

	pmc, err := NewPrometheusMetricsClient(&PrometheusMetricsConfig{
		Metrics: metricsTypes.MetricTypes,
	}, l)
	assert.Nil(t, err)

	t.Run("Should return no error for all labels", func(t *testing.T) {
		err := pmc.hasUnexpectedLabels(metricsTypes.MetricsType_Incr, metricsTypes.Metric_Incr_EventProduced, []metricsTypes.MetricsLabel{
			{Name: "event_type", Value: "receive"},
		})
		assert.Nil(t, err)
	})
	t.Run("Should return no error for a subset of labels", func(t *testing.T) {
		err := pmc.hasUnexpectedLabels(metricsTypes.MetricsType_Timing, metricsTypes.Metric_Timing_TransactionDecodeDuration, []metricsTypes.MetricsLabel{})
		assert.Nil(t, err)
	})
	t.Run("Should return an error for labels on an unlabeled metric", func(t *testing.T) {
		err := pmc.hasUnexpectedLabels(metricsTypes.MetricsType_Incr, metricsTypes.Metric_Incr_LogDecoded, []metricsTypes.MetricsLabel{
			{Name: "unexpectedLabel", Value: "unexpectedValue"},
		})
		assert.NotNil(t, err)
	})
	t.Run("Should return an error for unexpected labels", func(t *testing.T) {
		err := pmc.hasUnexpectedLabels(metricsTypes.MetricsType_Incr, metricsTypes.Metric_Incr_EventProduced, []metricsTypes.MetricsLabel{
			{Name: "event_type", Value: "receive"},
			{Name: "unexpectedLabel", Value: "unexpectedValue"},
		})
		assert.NotNil(t, err)
	})
}
