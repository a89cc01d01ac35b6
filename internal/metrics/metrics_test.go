package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEvent(t *testing.T) {
	m := metrics.New()

	m.RecordEvent("product.created", nil)
	m.RecordEvent("product.created", nil)
	m.RecordEvent("product.created", errors.New("broker down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("product.created", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("product.created", "failed")))
}

func TestHandlerExposesDBMetrics(t *testing.T) {
	m := metrics.New()
	m.ObserveDBQuery("query", "products", 3*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_db_query_duration_seconds_count{operation="query",table="products"} 1`)
}
