package area

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

const tableFixture = `[
  {"sdtname": "Haveli", "area_km2": 1400.5},
  {"sdtname": "Ahmadnagar", "area_km2": 946.0},
  {"sdtname": "Mulshi", "area_km2": 1104.2}
]`

func loadTestRegistry(t *testing.T) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taluka_areas.json")
	require.NoError(t, os.WriteFile(path, []byte(tableFixture), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := Load(path, 70, logger, observability.NewMetricsForTesting())
	require.NoError(t, err)
	return reg
}

func TestLoad(t *testing.T) {
	reg := loadTestRegistry(t)
	assert.Equal(t, 3, reg.Count())
}

func TestLoad_Errors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/areas.json", 70, logger, metrics)
		require.Error(t, err)
	})

	t.Run("malformed table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "areas.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))
		_, err := Load(path, 70, logger, metrics)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode area table")
	})
}

func TestLookupArea(t *testing.T) {
	reg := loadTestRegistry(t)

	t.Run("exact match", func(t *testing.T) {
		got, ok := reg.LookupArea("Haveli")
		require.True(t, ok)
		assert.Equal(t, 1400.5, got)
	})

	t.Run("exact match is case-insensitive", func(t *testing.T) {
		got, ok := reg.LookupArea("hAvElI")
		require.True(t, ok)
		assert.Equal(t, 1400.5, got)
	})

	t.Run("fuzzy fallback above cutoff", func(t *testing.T) {
		// Boundary layer spells it Ahmednagar, the table Ahmadnagar.
		got, ok := reg.LookupArea("Ahmednagar")
		require.True(t, ok)
		assert.Equal(t, 946.0, got)
	})

	t.Run("miss below cutoff is absent, not an error", func(t *testing.T) {
		_, ok := reg.LookupArea("Thiruvananthapuram")
		assert.False(t, ok)
	})
}
