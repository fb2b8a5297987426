package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CountryMetrics covers the refresh pipeline and the two upstream fetches
type CountryMetrics struct {
	RefreshesTotal          prometheus.CounterVec
	RefreshDuration         prometheus.HistogramVec
	CountriesProcessedTotal prometheus.Counter
	CountriesCreatedTotal   prometheus.Counter
	CountriesUpdatedTotal   prometheus.Counter
	RecordErrorsTotal       prometheus.Counter

	ExternalFetchDuration    prometheus.HistogramVec
	ExternalFetchErrorsTotal prometheus.CounterVec
}

func NewCountryMetrics() *CountryMetrics {
	return &CountryMetrics{
		RefreshesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "country_refreshes_total",
				Help: "Total refresh runs by final status",
			},
			[]string{"status"},
		),

		RefreshDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "country_refresh_duration_seconds",
				Help:    "End-to-end refresh duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"status"},
		),

		CountriesProcessedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "countries_processed_total",
				Help: "Total country records processed across all refreshes",
			},
		),

		CountriesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "countries_created_total",
				Help: "Total country records created across all refreshes",
			},
		),

		CountriesUpdatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "countries_updated_total",
				Help: "Total country records updated across all refreshes",
			},
		),

		RecordErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "country_record_errors_total",
				Help: "Total per-record failures tolerated during refreshes",
			},
		),

		ExternalFetchDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_fetch_duration_seconds",
				Help:    "Upstream API fetch duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"source"},
		),

		ExternalFetchErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_fetch_errors_total",
				Help: "Total failed upstream API fetches",
			},
			[]string{"source"},
		),
	}
}

// RecordRefresh records a finished refresh run
func (m *CountryMetrics) RecordRefresh(status string, durationSeconds float64, processed, created, updated, recordErrors int) {
	m.RefreshesTotal.WithLabelValues(status).Inc()
	m.RefreshDuration.WithLabelValues(status).Observe(durationSeconds)
	m.CountriesProcessedTotal.Add(float64(processed))
	m.CountriesCreatedTotal.Add(float64(created))
	m.CountriesUpdatedTotal.Add(float64(updated))
	m.RecordErrorsTotal.Add(float64(recordErrors))
}

// RecordFetch records one upstream API call
func (m *CountryMetrics) RecordFetch(source string, durationSeconds float64, failed bool) {
	m.ExternalFetchDuration.WithLabelValues(source).Observe(durationSeconds)
	if failed {
		m.ExternalFetchErrorsTotal.WithLabelValues(source).Inc()
	}
}
