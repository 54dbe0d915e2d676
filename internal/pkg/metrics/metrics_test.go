package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/api/tasks", http.StatusOK, 20*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/api/tasks", http.StatusOK, 30*time.Millisecond)
	c.RecordRequest(http.MethodPost, "/api/tasks", http.StatusBadRequest, time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/api/tasks", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "/api/tasks", "400")))
	require.Equal(t, 2, testutil.CollectAndCount(c.httpDuration))
}

func TestOAuthFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.OAuthFailure("exchange")
	c.OAuthFailure("exchange")
	c.OAuthFailure("profile")

	require.Equal(t, 2.0, testutil.ToFloat64(c.oauthFailures.WithLabelValues("exchange")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.oauthFailures.WithLabelValues("profile")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RateLimited()
	c.OAuthFailure("refresh")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "taskmanager_rate_limited_total 1")
	require.Contains(t, string(body), `taskmanager_oauth_failures_total{stage="refresh"} 1`)
}
