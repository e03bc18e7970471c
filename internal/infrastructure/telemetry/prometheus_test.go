package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_Observe(t *testing.T) {
	m := NewHTTPMetrics()

	m.Observe(http.MethodGet, "/api/v1/boiler-parts", http.StatusOK, 20*time.Millisecond)
	m.Observe(http.MethodGet, "/api/v1/boiler-parts", http.StatusOK, 30*time.Millisecond)
	m.Observe(http.MethodPost, "/api/v1/shopping-cart/add", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/boiler-parts", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/api/v1/shopping-cart/add", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestHTTPMetrics_Handler(t *testing.T) {
	m := NewHTTPMetrics()
	m.InFlight().Inc()
	m.Observe(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `boilerparts_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, string(body), "boilerparts_http_requests_in_flight 1")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestHTTPMetrics_RegisterDBStats(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewHTTPMetrics()
	require.NoError(t, m.RegisterDBStats(db))
	assert.Error(t, m.RegisterDBStats(db), "second registration collides")

	count, err := testutil.GatherAndCount(m.Registry(), "go_sql_max_open_connections")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
