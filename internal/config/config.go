package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Reference datasets, read-only for the process lifetime.
	TalukaGeoJSONPath    string
	DistrictGeoJSONPath  string
	TalukaNameProperty   string
	DistrictNameProperty string
	AreaTablePath        string
	RegistryPath         string

	// Lithology raster.
	LithologyRasterPath    string
	LithologyWorldFilePath string
	LithologyEPSG          int

	// INGRES business data service.
	IngresBaseURL string
	IngresTimeout time.Duration
	// IngresYear overrides the clock-derived assessment year when set.
	IngresYear string

	// Terrain elevation service.
	TerrainBaseURL string
	TerrainTimeout time.Duration

	// FuzzyCutoff is the 0-100 similarity floor for name reconciliation.
	FuzzyCutoff float64
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	ingresTimeout, err := parseDuration("INGRES_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	terrainTimeout, err := parseDuration("TERRAIN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	epsg, err := parseInt("LITHOLOGY_EPSG", 4326)
	if err != nil {
		return nil, err
	}
	cutoff, err := parseFloat("FUZZY_CUTOFF", 70)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		TalukaGeoJSONPath:    envOrDefault("TALUKA_GEOJSON_PATH", "data/spatial/india_taluk.geojson"),
		DistrictGeoJSONPath:  envOrDefault("DISTRICT_GEOJSON_PATH", "data/spatial/india_district.geojson"),
		TalukaNameProperty:   envOrDefault("TALUKA_NAME_PROPERTY", "NAME_3"),
		DistrictNameProperty: envOrDefault("DISTRICT_NAME_PROPERTY", "NAME_2"),
		AreaTablePath:        envOrDefault("AREA_TABLE_PATH", "data/taluka_areas.json"),
		RegistryPath:         envOrDefault("REGISTRY_PATH", "data/ingres_locations.json"),

		LithologyRasterPath:    envOrDefault("LITHOLOGY_RASTER_PATH", "data/spatial/india_geology_2m.tif"),
		LithologyWorldFilePath: envOrDefault("LITHOLOGY_WORLD_FILE_PATH", "data/spatial/india_geology_2m.tfw"),
		LithologyEPSG:          epsg,

		IngresBaseURL: envOrDefault("INGRES_BASE_URL", "https://ingres.iith.ac.in/api/gec"),
		IngresTimeout: ingresTimeout,
		IngresYear:    os.Getenv("INGRES_YEAR"),

		TerrainBaseURL: envOrDefault("TERRAIN_BASE_URL", "https://api.opentopodata.org/v1/srtm90m"),
		TerrainTimeout: terrainTimeout,

		FuzzyCutoff: cutoff,
	}

	for name, v := range map[string]string{
		"TALUKA_GEOJSON_PATH":   cfg.TalukaGeoJSONPath,
		"DISTRICT_GEOJSON_PATH": cfg.DistrictGeoJSONPath,
		"AREA_TABLE_PATH":       cfg.AreaTablePath,
		"REGISTRY_PATH":         cfg.RegistryPath,
		"LITHOLOGY_RASTER_PATH": cfg.LithologyRasterPath,
		"INGRES_BASE_URL":       cfg.IngresBaseURL,
		"TERRAIN_BASE_URL":      cfg.TerrainBaseURL,
	} {
		if v == "" {
			return nil, errors.New(name + " is required")
		}
	}
	if cfg.FuzzyCutoff < 0 || cfg.FuzzyCutoff > 100 {
		return nil, errors.New("FUZZY_CUTOFF must be within [0, 100]")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}
