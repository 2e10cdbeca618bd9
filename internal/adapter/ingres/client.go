package ingres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

// Client fetches entitlement figures from the INGRES business data API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	// year overrides the clock-derived assessment year when non-empty.
	year    string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClient creates an INGRES business data client. baseURL is the API
// root, e.g. https://ingres.iith.ac.in/api/gec.
func NewClient(baseURL, year string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		year:       year,
		logger:     logger,
		metrics:    metrics,
	}
}

// businessDataRequest is the query the INGRES open endpoint expects. The
// computation parameters are fixed: annual period, recharge component,
// normal computation, current assessment year.
type businessDataRequest struct {
	ParentLocName      string `json:"parentLocName"`
	LocName            string `json:"locname"`
	LocType            string `json:"loctype"`
	View               string `json:"view"`
	LocUUID            string `json:"locuuid"`
	Year               string `json:"year"`
	ComputationType    string `json:"computationType"`
	Component          string `json:"component"`
	Period             string `json:"period"`
	Category           string `json:"category"`
	MapOnClickParams   string `json:"mapOnClickParams"`
	StateUUID          string `json:"stateuuid"`
	VerificationStatus int    `json:"verificationStatus"`
	ApprovalLevel      int    `json:"approvalLevel"`
	ParentUUID         string `json:"parentuuid"`
}

// FetchEntitlement retrieves the figures for a resolved registry record.
// The response is a sequence of entries; only the first is kept, projected
// to five fields. Transport failures and non-success statuses are fatal for
// the request: entitlement data has no fallback source, and no retry is
// attempted.
func (c *Client) FetchEntitlement(ctx context.Context, rec domain.RegistryRecord) (domain.EntitlementFigures, error) {
	year := c.year
	if year == "" {
		year = domain.ReportingYear()
	}

	payload := businessDataRequest{
		ParentLocName:      "INDIA",
		LocName:            rec.LocationName,
		LocType:            rec.LocationType,
		View:               "admin",
		LocUUID:            rec.LocationUUID,
		Year:               year,
		ComputationType:    "normal",
		Component:          "recharge",
		Period:             "annual",
		Category:           rec.CategoryTotal,
		MapOnClickParams:   "true",
		StateUUID:          rec.StateUUID,
		VerificationStatus: 1,
		ApprovalLevel:      1,
		ParentUUID:         rec.StateUUID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.EntitlementFigures{}, domain.NewExternalService("INGRES business data request failed", err)
	}

	url := c.baseURL + "/getBusinessDataForUserOpen"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.EntitlementFigures{}, domain.NewExternalService("INGRES business data request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ExternalAPIDuration.WithLabelValues("ingres").Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.EntitlementFigures{}, domain.NewExternalService("INGRES business data request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return domain.EntitlementFigures{}, domain.NewExternalService("INGRES business data request failed",
			fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	}

	var entries []domain.EntitlementFigures
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return domain.EntitlementFigures{}, domain.NewExternalService("INGRES business data request failed", err)
	}
	if len(entries) == 0 {
		return domain.EntitlementFigures{}, domain.NewExternalService("INGRES business data request failed",
			fmt.Errorf("empty business data response for %q", rec.LocationName))
	}

	c.logger.Debug("entitlement figures fetched",
		"location", rec.LocationName, "year", year)
	return entries[0], nil
}
