// Package ingres integrates with the INGRES groundwater assessment
// registry: resolving a location record for administrative names, and
// fetching that record's entitlement figures from the business data API.
package ingres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/fuzzy"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

// Resolver finds the canonical registry record for a coordinate's
// administrative names: taluka first, district only on taluka miss.
//
// The location directory is re-read from its reference file on every
// lookup. The file is replaced in-place by an external sync job, and the
// dataset is small, so freshness is traded for per-request latency here
// rather than behind a cache with an invalidation policy.
type Resolver struct {
	registryPath string
	cutoff       float64
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// NewResolver creates a registry resolver reading from registryPath.
func NewResolver(registryPath string, cutoff float64, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		registryPath: registryPath,
		cutoff:       cutoff,
		logger:       logger,
		metrics:      metrics,
	}
}

// Resolve returns the matched record and the level that matched. found is
// false when both names miss, or both are absent; that is a missing-data
// outcome for the caller to classify, not an error here.
func (r *Resolver) Resolve(_ context.Context, taluka, district string) (domain.RegistryRecord, domain.AdminLevel, bool, error) {
	records, err := r.loadDirectory()
	if err != nil {
		return domain.RegistryRecord{}, "", false, err
	}

	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.LocationName
	}

	// Taluka wins outright: the district is never consulted when the
	// taluka lookup succeeds.
	if taluka != "" {
		if rec, ok := r.match(taluka, names, records, domain.LevelTaluka); ok {
			return rec, domain.LevelTaluka, true, nil
		}
	}
	if district != "" {
		if rec, ok := r.match(district, names, records, domain.LevelDistrict); ok {
			return rec, domain.LevelDistrict, true, nil
		}
	}

	return domain.RegistryRecord{}, "", false, nil
}

func (r *Resolver) match(query string, names []string, records []domain.RegistryRecord, level domain.AdminLevel) (domain.RegistryRecord, bool) {
	idx, ok := fuzzy.Match(query, names, r.cutoff)
	if !ok {
		return domain.RegistryRecord{}, false
	}
	if !strings.EqualFold(records[idx].LocationName, query) {
		r.metrics.FuzzyFallbacks.WithLabelValues("registry").Inc()
		r.logger.Debug("registry lookup used fuzzy reconciliation",
			"level", level, "query", query, "matched", records[idx].LocationName)
	}
	return records[idx], true
}

func (r *Resolver) loadDirectory() ([]domain.RegistryRecord, error) {
	data, err := os.ReadFile(r.registryPath)
	if err != nil {
		return nil, domain.NewExternalService("INGRES location directory unavailable",
			fmt.Errorf("read registry: %w", err))
	}

	var records []domain.RegistryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, domain.NewExternalService("INGRES location directory unavailable",
			fmt.Errorf("decode registry: %w", err))
	}
	return records, nil
}
