package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	visitsRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vms_visits_recorded_total",
		Help: "Total number of visits recorded",
	})
	visitsBlockedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vms_visits_blocked_total",
		Help: "Total number of visits rejected by the blacklist",
	})
	geoLookupFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vms_geo_lookup_failures_total",
		Help: "Total number of geolocation provider lookups that failed",
	})
	visitsYesterday = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vms_visits_yesterday",
		Help: "Visit count for the previous civil day, set by the daily rollup",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(visitsRecordedTotal, visitsBlockedTotal, geoLookupFailuresTotal, visitsYesterday)
}

// IncVisitRecorded increments the recorded visits counter.
func IncVisitRecorded() { visitsRecordedTotal.Inc() }

// IncVisitBlocked increments the blocked visits counter.
func IncVisitBlocked() { visitsBlockedTotal.Inc() }

// IncGeoLookupFailure increments the failed geolocation lookups counter.
func IncGeoLookupFailure() { geoLookupFailuresTotal.Inc() }

// SetVisitsYesterday records the previous day's visit count.
func SetVisitsYesterday(n float64) { visitsYesterday.Set(n) }
