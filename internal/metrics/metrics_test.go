package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSearchCountsOutcome(t *testing.T) {
	before := testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeNoResults))
	ObserveSearch(OutcomeNoResults, 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeNoResults)))
}

func TestHandlerExposesSearchMetrics(t *testing.T) {
	ObserveSearch(OutcomePopulated, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "propertyfinder_searches_total")
	assert.Contains(t, rec.Body.String(), "propertyfinder_search_duration_seconds")
}
