package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(reservations.WithLabelValues(ResultConflict))
	IncReservation(ResultConflict)
	assert.Equal(t, before+1, testutil.ToFloat64(reservations.WithLabelValues(ResultConflict)))

	beforeHTTP := testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "404"))
	IncHTTP("", 404)
	assert.Equal(t, beforeHTTP+1, testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "404")))

	beforeAvail := testutil.ToFloat64(availabilityRequests)
	IncAvailability()
	assert.Equal(t, beforeAvail+1, testutil.ToFloat64(availabilityRequests))
}
