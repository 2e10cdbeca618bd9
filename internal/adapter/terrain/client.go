// Package terrain provides the slope input for the entitlement rule via the
// OpenTopoData SRTM elevation service.
package terrain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

// Client implements pipeline.SlopeProvider against an OpenTopoData dataset
// endpoint. The service exposes point elevation only; a true slope needs a
// neighborhood query, so until one lands the elevation reading stands in as
// the slope input and the calculator's slope policy flattens it to 1.0.
// The provider stays behind an interface so a real slope source can swap in
// without touching the pipeline.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an elevation client. baseURL points at one dataset,
// e.g. https://api.opentopodata.org/v1/srtm90m.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
		metrics:    metrics,
	}
}

// Slope returns the terrain reading in degrees for a coordinate. A single
// failed call fails the request; no retries.
func (c *Client) Slope(ctx context.Context, coord domain.Coordinate) (float64, error) {
	params := url.Values{
		"locations": {fmt.Sprintf("%f,%f", coord.Lat, coord.Lon)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, domain.NewExternalService("slope lookup failed", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ExternalAPIDuration.WithLabelValues("terrain").Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, domain.NewExternalService("slope lookup failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, domain.NewExternalService("slope lookup failed",
			fmt.Errorf("elevation API status %d: %s", resp.StatusCode, body))
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, domain.NewExternalService("slope lookup failed", err)
	}
	if len(payload.Results) == 0 {
		return 0, domain.NewExternalService("slope lookup failed",
			fmt.Errorf("elevation API returned no results"))
	}

	elevation := payload.Results[0].Elevation
	c.logger.Debug("terrain reading fetched",
		"lat", coord.Lat, "lon", coord.Lon, "elevation", elevation)
	return elevation, nil
}

// OpenTopoData response types.

type response struct {
	Results []result `json:"results"`
}

type result struct {
	Elevation float64 `json:"elevation"`
}
