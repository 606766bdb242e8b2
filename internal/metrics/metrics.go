package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultCreated  = "created"
	ResultConflict = "conflict"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)

	reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "reservations_total",
			Help:      "Reservation commits by result.",
		},
		[]string{"result"},
	)

	availabilityRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "availability_requests_total",
			Help:      "Slot availability computations.",
		},
	)
)

// Register registers the collectors on the default registry. Safe to call
// multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservations, availabilityRequests)
	})
}

func IncHTTP(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func IncReservation(result string) {
	reservations.WithLabelValues(result).Inc()
}

func IncAvailability() {
	availabilityRequests.Inc()
}
