package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, "data/spatial/india_taluk.geojson", cfg.TalukaGeoJSONPath)
	assert.Equal(t, "data/spatial/india_district.geojson", cfg.DistrictGeoJSONPath)
	assert.Equal(t, "NAME_3", cfg.TalukaNameProperty)
	assert.Equal(t, "NAME_2", cfg.DistrictNameProperty)
	assert.Equal(t, "data/taluka_areas.json", cfg.AreaTablePath)
	assert.Equal(t, "data/ingres_locations.json", cfg.RegistryPath)

	assert.Equal(t, "data/spatial/india_geology_2m.tif", cfg.LithologyRasterPath)
	assert.Equal(t, 4326, cfg.LithologyEPSG)

	assert.Equal(t, "https://ingres.iith.ac.in/api/gec", cfg.IngresBaseURL)
	assert.Equal(t, 30*time.Second, cfg.IngresTimeout)
	assert.Empty(t, cfg.IngresYear)

	assert.Equal(t, "https://api.opentopodata.org/v1/srtm90m", cfg.TerrainBaseURL)
	assert.Equal(t, 10*time.Second, cfg.TerrainTimeout)

	assert.Equal(t, 70.0, cfg.FuzzyCutoff)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("TALUKA_GEOJSON_PATH", "/data/taluks.geojson")
	t.Setenv("TALUKA_NAME_PROPERTY", "SUBDIST")
	t.Setenv("LITHOLOGY_EPSG", "32643")
	t.Setenv("INGRES_TIMEOUT", "45s")
	t.Setenv("INGRES_YEAR", "2023-2024")
	t.Setenv("TERRAIN_TIMEOUT", "5s")
	t.Setenv("FUZZY_CUTOFF", "85")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/data/taluks.geojson", cfg.TalukaGeoJSONPath)
	assert.Equal(t, "SUBDIST", cfg.TalukaNameProperty)
	assert.Equal(t, 32643, cfg.LithologyEPSG)
	assert.Equal(t, 45*time.Second, cfg.IngresTimeout)
	assert.Equal(t, "2023-2024", cfg.IngresYear)
	assert.Equal(t, 5*time.Second, cfg.TerrainTimeout)
	assert.Equal(t, 85.0, cfg.FuzzyCutoff)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"negative ingres timeout", "INGRES_TIMEOUT", "-5s"},
		{"bad epsg", "LITHOLOGY_EPSG", "not-a-code"},
		{"cutoff above scale", "FUZZY_CUTOFF", "140"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
