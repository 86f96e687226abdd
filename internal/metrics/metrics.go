package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors the portal exports.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	MembersRegistered    prometheus.Counter
	MembershipsEnrolled  prometheus.Counter
	PaymentsReceived     *prometheus.CounterVec
	ContactMessagesSent  prometheus.Counter
}

// New creates and registers all collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chiroportaal_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chiroportaal_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		MembersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "chiroportaal_members_registered_total",
			Help: "Members registered since process start.",
		}),
		MembershipsEnrolled: factory.NewCounter(prometheus.CounterOpts{
			Name: "chiroportaal_memberships_enrolled_total",
			Help: "Yearly membership enrollments since process start.",
		}),
		PaymentsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chiroportaal_payments_received_total",
			Help: "Payments marked received, by entity.",
		}, []string{"entity"}),
		ContactMessagesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "chiroportaal_contact_messages_total",
			Help: "Contact form messages relayed by mail.",
		}),
	}
}
