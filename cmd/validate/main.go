// Command validate checks the reference datasets against each other before a
// deploy: boundary layers, the taluka area table, the INGRES location
// directory, and the lithology raster. Exit status 1 means at least one
// check failed.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/area"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/boundary"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/lithology"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/config"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/fuzzy"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

type check struct {
	name string
	run  func(cfg *config.Config, logger *slog.Logger) error
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.LogLevel, "text")

	checks := []check{
		{name: "boundary layers", run: checkBoundaries},
		{name: "area table", run: checkAreaTable},
		{name: "location directory", run: checkRegistry},
		{name: "lithology raster", run: checkRaster},
		{name: "name reconciliation", run: checkReconciliation},
	}

	failed := 0
	for _, c := range checks {
		if err := c.run(cfg, logger); err != nil {
			logger.Error("check failed", "check", c.name, "error", err)
			failed++
			continue
		}
		logger.Info("check passed", "check", c.name)
	}

	if failed > 0 {
		logger.Error("validation failed", "failed_checks", failed)
		os.Exit(1)
	}
	logger.Info("all checks passed")
}

func checkBoundaries(cfg *config.Config, logger *slog.Logger) error {
	ix, err := boundary.Load(
		cfg.TalukaGeoJSONPath,
		cfg.DistrictGeoJSONPath,
		cfg.TalukaNameProperty,
		cfg.DistrictNameProperty,
		logger,
	)
	if err != nil {
		return err
	}
	if ix.TalukaCount() == 0 {
		return fmt.Errorf("taluka layer has no usable polygons")
	}
	if ix.DistrictCount() == 0 {
		return fmt.Errorf("district layer has no usable polygons")
	}
	return nil
}

func checkAreaTable(cfg *config.Config, _ *slog.Logger) error {
	data, err := os.ReadFile(cfg.AreaTablePath)
	if err != nil {
		return err
	}
	var records []area.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode area table: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("area table is empty")
	}

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.Name == "" {
			return fmt.Errorf("record %d has no sdtname", i)
		}
		if r.AreaSqKm <= 0 {
			return fmt.Errorf("taluka %q has nonpositive area %v", r.Name, r.AreaSqKm)
		}
		key := strings.ToLower(r.Name)
		if seen[key] {
			return fmt.Errorf("duplicate taluka name %q", r.Name)
		}
		seen[key] = true
	}
	return nil
}

func checkRegistry(cfg *config.Config, _ *slog.Logger) error {
	data, err := os.ReadFile(cfg.RegistryPath)
	if err != nil {
		return err
	}
	var records []domain.RegistryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode location directory: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("location directory is empty")
	}

	for i, r := range records {
		if r.LocationName == "" {
			return fmt.Errorf("record %d has no locationName", i)
		}
		if r.LocationUUID == "" {
			return fmt.Errorf("record %q has no locationUUID", r.LocationName)
		}
		if r.StateUUID == "" {
			return fmt.Errorf("record %q has no stateUUID", r.LocationName)
		}
		switch r.LocationType {
		case "TALUK", "DISTRICT", "TEHSIL", "BLOCK", "MANDAL":
		default:
			return fmt.Errorf("record %q has unexpected locationType %q", r.LocationName, r.LocationType)
		}
	}
	return nil
}

func checkRaster(cfg *config.Config, logger *slog.Logger) error {
	_, err := lithology.Load(cfg.LithologyRasterPath, cfg.LithologyWorldFilePath, cfg.LithologyEPSG, logger)
	return err
}

// checkReconciliation reports boundary taluka names the area table cannot
// serve even via the fuzzy fallback. Mismatches are logged, not fatal; the
// check fails only when NO boundary name resolves at all.
func checkReconciliation(cfg *config.Config, logger *slog.Logger) error {
	ix, err := boundary.Load(
		cfg.TalukaGeoJSONPath,
		cfg.DistrictGeoJSONPath,
		cfg.TalukaNameProperty,
		cfg.DistrictNameProperty,
		logger,
	)
	if err != nil {
		return err
	}
	areas, err := area.Load(cfg.AreaTablePath, cfg.FuzzyCutoff, logger, observability.NewMetrics())
	if err != nil {
		return err
	}

	tableNames := areas.Names()
	resolved, fuzzyHits, missed := 0, 0, 0
	for _, name := range ix.TalukaNames() {
		if _, ok := areas.LookupArea(name); !ok {
			missed++
			logger.Warn("boundary taluka not covered by area table", "taluka", name)
			continue
		}
		resolved++
		if idx, ok := fuzzy.Match(name, tableNames, cfg.FuzzyCutoff); ok && !strings.EqualFold(tableNames[idx], name) {
			fuzzyHits++
		}
	}

	logger.Info("reconciliation summary",
		"resolved", resolved, "fuzzy", fuzzyHits, "missed", missed)
	if resolved == 0 {
		return fmt.Errorf("no boundary taluka resolves against the area table")
	}
	return nil
}
