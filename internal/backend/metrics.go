package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Outbound microservice requests by service and outcome.",
	}, []string{"service", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Outbound microservice request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service"})
)

// Register adds the backend collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{requestsTotal, requestDuration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

func observe(service, outcome string, d time.Duration) {
	requestsTotal.WithLabelValues(service, outcome).Inc()
	requestDuration.WithLabelValues(service).Observe(d.Seconds())
}
