package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_ExactBypassesScoring(t *testing.T) {
	names := []string{"Mulshi", "Haveli", "Pune City"}

	// Exact equality ignores the cutoff entirely, even an impossible one.
	idx, ok := Match("haveli", names, 101)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = Match("PUNE CITY", names, 101)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestMatch_ExactFirstWins(t *testing.T) {
	names := []string{"Karad", "karad", "KARAD"}

	idx, ok := Match("Karad", names, DefaultCutoff)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatch_FuzzyAboveCutoff(t *testing.T) {
	names := []string{"Ahmadnagar", "Aurangabad", "Amravati"}

	// Common registry misspelling.
	idx, ok := Match("Ahmednagar", names, DefaultCutoff)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatch_NeverReturnsBelowCutoff(t *testing.T) {
	names := []string{"Mulshi", "Haveli"}

	_, ok := Match("Thiruvananthapuram", names, DefaultCutoff)
	assert.False(t, ok)

	// Same query passes once the cutoff drops below its best score.
	best := Score("Thiruvananthapuram", "Mulshi")
	other := Score("Thiruvananthapuram", "Haveli")
	if other > best {
		best = other
	}
	_, ok = Match("Thiruvananthapuram", names, best)
	assert.True(t, ok)
}

func TestMatch_TieBreaksToFirst(t *testing.T) {
	// Two identical candidate names score identically; input order decides.
	names := []string{"Shirur", "Shirur"}

	idx, ok := Match("Shirurr", names, 50)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatch_EmptyCandidates(t *testing.T) {
	_, ok := Match("anything", nil, DefaultCutoff)
	assert.False(t, ok)
}

func TestScore(t *testing.T) {
	t.Run("identical names score 100", func(t *testing.T) {
		assert.Equal(t, 100.0, Score("Haveli", "haveli"))
	})

	t.Run("token order does not matter", func(t *testing.T) {
		assert.Equal(t, 100.0, Score("Pune City", "City Pune"))
	})

	t.Run("empty input scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Score("", "Haveli"))
		assert.Equal(t, 0.0, Score("Haveli", "  "))
	})

	t.Run("close names beat distant names", func(t *testing.T) {
		near := Score("Ahmednagar", "Ahmadnagar")
		far := Score("Ahmednagar", "Kolhapur")
		assert.Greater(t, near, far)
		assert.GreaterOrEqual(t, near, DefaultCutoff)
	})

	t.Run("suffixed variant scores as weighted substring", func(t *testing.T) {
		// The bare name sits verbatim inside the variant, so the partial
		// comparison is a full match discounted by the partial weight.
		assert.Equal(t, 90.0, Score("Haveli", "Haveli Taluka"))
		assert.Equal(t, 90.0, Score("Ahmadnagar District", "Ahmadnagar"))
	})
}

func TestMatch_SuffixedVariantAboveCutoff(t *testing.T) {
	// Datasets routinely decorate the same unit with "Taluka"/"District"
	// suffixes; those variants must still reconcile at the default cutoff.
	names := []string{"Mulshi Taluka", "Haveli Taluka", "Daund Taluka"}

	idx, ok := Match("Haveli", names, DefaultCutoff)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = Match("Ahmadnagar District", []string{"Pune", "Ahmadnagar"}, DefaultCutoff)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}
