package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/hippomemory/internal/metrics"
)

func TestRecordRequest(t *testing.T) {
	m := metrics.New()
	m.RecordRequest("GET", 200, 10*time.Millisecond)
	m.RecordRequest("GET", 200, 20*time.Millisecond)
	m.RecordRequest("GET", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "404")))
}

func TestRecordBytesAndErrors(t *testing.T) {
	m := metrics.New()
	m.RecordBytes(100)
	m.RecordBytes(23)
	m.RecordFileError("not_found")

	assert.Equal(t, 123.0, testutil.ToFloat64(m.BytesServed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FileErrors.WithLabelValues("not_found")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FileErrors.WithLabelValues("forbidden")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := metrics.New()
	m.RecordRequest("GET", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hippomemory_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := metrics.New()
	b := metrics.New()
	a.RecordBytes(5)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.BytesServed))
}
