package telemetry

import (
	"backoffice/config"
	"backoffice/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric 指標未啟用時所有欄位皆為 nil，呼叫端以 nil 判斷
type Metric struct {
	HttpRequestsTotal     *prometheus.CounterVec
	HttpRequestDuration   *prometheus.HistogramVec
	ResponseSuccessTotal  *prometheus.CounterVec
	ResponseFailTotal     *prometheus.CounterVec
	AccessDeniedTotal     *prometheus.CounterVec
	AssignmentRejected    *prometheus.CounterVec
	AssignmentSubmissions *prometheus.CounterVec
	AssignmentSessions    prometheus.Gauge
	CatalogFetchTotal     *prometheus.CounterVec
	config                *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	name := func(m core.MetricName) string {
		return config.App.Name + "_" + string(m)
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name(core.MetricHttpRequestDuration),
				Help:    "Request handling duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ResponseSuccessTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricResponseSuccessTotal),
				Help: "Successful responses",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ResponseFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricResponseFailTotal),
				Help: "Failed responses by reason",
			},
			labelNames(core.MetricLabelReason),
		),
		AccessDeniedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricAccessDeniedTotal),
				Help: "Requests rejected by the role guard",
			},
			labelNames(core.MetricLabelRole),
		),
		AssignmentRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricAssignmentEditRejected),
				Help: "Assignment edits rejected by field",
			},
			labelNames(core.MetricLabelField),
		),
		AssignmentSubmissions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricAssignmentSubmissionsTotal),
				Help: "Assignment submissions by outcome",
			},
			labelNames(core.MetricLabelOutcome),
		),
		AssignmentSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: name(core.MetricAssignmentOpenSessions),
				Help: "Currently open assignment sessions",
			},
		),
		CatalogFetchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricCatalogFetchTotal),
				Help: "Reference collection fetches by source and status",
			},
			labelNames(core.MetricLabelCollection, core.MetricLabelSource, core.MetricLabelStatus),
		),
	}
}

// Inc 指標未啟用時不做事
func Inc(counter *prometheus.CounterVec, labels ...string) {
	if counter == nil {
		return
	}
	counter.WithLabelValues(labels...).Inc()
}

// AddGauge 指標未啟用時不做事
func AddGauge(gauge prometheus.Gauge, delta float64) {
	if gauge == nil {
		return
	}
	gauge.Add(delta)
}

// Observe 指標未啟用時不做事
func Observe(histogram *prometheus.HistogramVec, value float64, labels ...string) {
	if histogram == nil {
		return
	}
	histogram.WithLabelValues(labels...).Observe(value)
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
