package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFlex(t *testing.T, raw string) FlexValue {
	t.Helper()
	var v FlexValue
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestFlexValue_MCM(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"bare number", `7`, 7.0},
		{"bare float", `5.25`, 5.25},
		{"null", `null`, 0.0},
		{"object prefers total", `{"total": 5.0, "non_command": 3.0}`, 5.0},
		{"object falls back to non_command", `{"non_command": 3.0, "command": 9.0}`, 3.0},
		{"object with neither key", `{"command": 9.0}`, 0.0},
		{"string is unusable", `"12.5"`, 0.0},
		{"object with non-numeric total", `{"total": "n/a"}`, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeFlex(t, tt.raw).MCM())
		})
	}

	t.Run("zero value is absent", func(t *testing.T) {
		var v FlexValue
		assert.True(t, v.IsAbsent())
		assert.Equal(t, 0.0, v.MCM())
	})
}

func TestFlexValue_CategoryLabel(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain string title-cased", `"safe"`, "Safe"},
		{"hyphenated string", `"semi-critical"`, "Semi-Critical"},
		{"already cased", `"Critical"`, "Critical"},
		{"null defaults conservative", `null`, "Critical"},
		{"empty string defaults conservative", `""`, "Critical"},
		{"object prefers total", `{"total": "safe", "non_command": "critical"}`, "Safe"},
		{"object falls back to non_command", `{"non_command": "over-exploited"}`, "Over-Exploited"},
		{"object empty total falls through", `{"total": "", "non_command": "safe"}`, "Safe"},
		{"object with neither key", `{"command": "safe"}`, "Critical"},
		{"number is unusable", `3`, "Critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeFlex(t, tt.raw).CategoryLabel())
		})
	}

	t.Run("missing field is absent", func(t *testing.T) {
		var figures EntitlementFigures
		require.NoError(t, json.Unmarshal([]byte(`{"locationName":"Pune"}`), &figures))
		assert.True(t, figures.Category.IsAbsent())
		assert.Equal(t, "Critical", figures.Category.CategoryLabel())
	})
}

func TestFlexValue_Roundtrip(t *testing.T) {
	// The figures projection is logged and re-serialized; shapes survive.
	in := `{"totalGWAvailability":12.5,"availabilityForFutureUse":{"total":5,"non_command":3},"category":"safe"}`

	var figures EntitlementFigures
	require.NoError(t, json.Unmarshal([]byte(in), &figures))

	out, err := json.Marshal(figures)
	require.NoError(t, err)

	var again EntitlementFigures
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, 12.5, again.TotalGWAvailability.MCM())
	assert.Equal(t, 5.0, again.AvailabilityForFutureUse.MCM())
	assert.Equal(t, "Safe", again.Category.CategoryLabel())
	assert.True(t, again.StageOfExtraction.IsAbsent())
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"safe", "Safe"},
		{"SAFE", "Safe"},
		{"semi-critical", "Semi-Critical"},
		{"over exploited", "Over Exploited"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, titleCase(tt.in))
	}
}
