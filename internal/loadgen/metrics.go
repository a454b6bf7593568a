package loadgen

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "loadgen_requests_total", Help: "Requests attempted, successes and failures alike"},
	)
	SendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "loadgen_send_duration_seconds", Help: "Wall time of each send attempt"},
	)
)

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{RequestsTotal, SendDuration}
}
