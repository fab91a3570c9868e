package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationConflicts(t *testing.T) {
	var conflicts uint64 = 3
	c := RegisterReservationConflicts(func() uint64 { return conflicts })
	assert.Equal(t, float64(3), testutil.ToFloat64(c))

	conflicts = 5
	assert.Equal(t, float64(5), testutil.ToFloat64(c))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "geobidder_reservation_cas_conflicts_total 5")
}
