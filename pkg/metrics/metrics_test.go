package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsolatedRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := New("doctor")
	b := New("doctor")

	a.LoginAttempts.WithLabelValues("success").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.LoginAttempts.WithLabelValues("success")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("doctor")
	m.RequestTotal.WithLabelValues("GET", "/api/patients", "200").Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `doctor_http_requests_total{method="GET",path="/api/patients",status="200"} 1`)
}
