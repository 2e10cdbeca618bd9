package terrain

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

func testClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    observability.NewMetricsForTesting(),
	}
}

func TestSlope_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "18.520000,73.850000", r.URL.Query().Get("locations"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"elevation":562.3,"location":{"lat":18.52,"lng":73.85}}],"status":"OK"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	got, err := c.Slope(context.Background(), domain.Coordinate{Lat: 18.52, Lon: 73.85})
	require.NoError(t, err)
	assert.Equal(t, 562.3, got)
}

func TestSlope_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status":"INVALID_REQUEST"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	_, err := c.Slope(context.Background(), domain.Coordinate{Lat: 18.52, Lon: 73.85})
	require.Error(t, err)

	kind, ok := domain.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindExternalService, kind)
	assert.Equal(t, "slope lookup failed", domain.UserMessage(err))
	assert.Contains(t, err.Error(), "429")
}

func TestSlope_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[],"status":"OK"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	_, err := c.Slope(context.Background(), domain.Coordinate{Lat: 18.52, Lon: 73.85})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no results")
}

func TestSlope_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 50*time.Millisecond)
	_, err := c.Slope(context.Background(), domain.Coordinate{Lat: 18.52, Lon: 73.85})
	require.Error(t, err)

	kind, ok := domain.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindExternalService, kind)
}
