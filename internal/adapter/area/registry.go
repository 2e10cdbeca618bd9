// Package area provides taluka land areas from the reference table, with a
// fuzzy-name fallback for spellings that drifted from the boundary layer.
package area

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/fuzzy"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

// Record is one row of the reference table.
type Record struct {
	Name     string  `json:"sdtname"`
	AreaSqKm float64 `json:"area_km2"`
}

// Registry holds the land-area table, loaded once at start-up and read-only
// for the process lifetime. A reload requires a restart.
type Registry struct {
	records []Record
	names   []string
	cutoff  float64
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Load reads the area table from path.
func Load(path string, cutoff float64, logger *slog.Logger, metrics *observability.Metrics) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read area table: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode area table: %w", err)
	}

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}

	logger.Info("area table loaded", "records", len(records))
	metrics.ReferenceRecords.WithLabelValues("area_table").Set(float64(len(records)))

	return &Registry{
		records: records,
		names:   names,
		cutoff:  cutoff,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// LookupArea returns the land area in square kilometres for a taluka name.
// Exact case-insensitive match first; on miss, the best fuzzy match at or
// above the cutoff. A false return means insufficient reference data, a
// recoverable outcome rather than a fault.
func (r *Registry) LookupArea(name string) (float64, bool) {
	for _, rec := range r.records {
		if strings.EqualFold(rec.Name, name) {
			return rec.AreaSqKm, true
		}
	}

	idx, ok := fuzzy.Match(name, r.names, r.cutoff)
	if !ok {
		return 0, false
	}

	r.metrics.FuzzyFallbacks.WithLabelValues("area").Inc()
	r.logger.Debug("area lookup used fuzzy fallback",
		"query", name, "matched", r.records[idx].Name)
	return r.records[idx].AreaSqKm, true
}

// Count reports the number of loaded records.
func (r *Registry) Count() int { return len(r.records) }

// Names returns the table's taluka names in load order, for dataset
// reconciliation tooling.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
