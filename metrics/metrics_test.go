package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRequestsTotalCanBeScraped(t *testing.T) {
	reg := prometheus.NewRegistry()

	// vectors only show up in /metrics once a label has been incremented,
	// so exercise them explicitly before scraping
	reg.MustRegister(RequestsTotal)

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	testServer := httptest.NewServer(handler)
	defer testServer.Close()

	RequestsTotal.WithLabelValues("br").Inc()

	c, err := RequestsTotal.GetMetricWithLabelValues("br")
	require.NoError(t, err)
	require.GreaterOrEqual(t, testutil.ToFloat64(c), float64(1))

	res, err := http.Get(testServer.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	require.Contains(t, string(body), `assetgate_requests_total{outcome="br"}`)
}
