package domain

import (
	"fmt"
	"math"
)

// categoryFactor discounts entitlement by the taluka's extraction category.
// Unrecognized categories fall back to the Critical allowance.
var categoryFactor = map[string]float64{
	"Safe":           0.40,
	"Semi-Critical":  0.25,
	"Critical":       0.10,
	"Over-exploited": 0.05,
}

const defaultCategoryFactor = 0.10

// lithologyFactor discounts entitlement by rock type. All defined codes
// currently carry 1.00; the table exists so future assessments can
// differentiate by lithology without touching the rule engine.
var lithologyFactor = map[LithologyCode]float64{
	LithologyUnknown:     1.00,
	LithologyAlluvium:    1.00,
	LithologySedimentary: 1.00,
	LithologyLimestone:   1.00,
	LithologyGranite:     1.00,
	LithologyBasalt:      1.00,
}

const defaultLithologyFactor = 0.50

// LifecycleFactor scales the annual entitlement down to one crop lifecycle.
const LifecycleFactor = 0.70

// CategoryFactor returns the discount for an extraction category, or the
// documented default 0.10 for unknown labels.
func CategoryFactor(category string) float64 {
	if f, ok := categoryFactor[category]; ok {
		return f
	}
	return defaultCategoryFactor
}

// LithologyFactor returns the discount for a lithology code, or the
// documented default 0.50 for codes outside the table.
func LithologyFactor(code LithologyCode) float64 {
	if f, ok := lithologyFactor[code]; ok {
		return f
	}
	return defaultLithologyFactor
}

// SlopePolicy maps a terrain slope in degrees to a discount factor.
type SlopePolicy func(slopeDeg float64) float64

// ConstantSlopePolicy is the current production policy: slope does not
// discount the entitlement. A tiered policy was drafted upstream
// (<=2deg 1.0, <=5deg 0.85, <=10deg 0.65, else 0.40) but never enabled;
// it must stay off until the product owner confirms the tiers.
func ConstantSlopePolicy(float64) float64 { return 1.0 }

// CalcInput carries everything the rule engine needs. All fields are
// resolved by earlier pipeline stages; the calculator itself does no I/O.
type CalcInput struct {
	FarmAreaAres    float64
	TalukaAreaSqKm  float64
	AvailabilityMCM float64
	Category        string
	Lithology       LithologyCode
	SlopeDeg        float64

	// Audit fields, copied through to the basis.
	LevelUsed         AdminLevel
	Taluka            string
	District          string
	RegistryLocation  string
	StageOfExtraction float64
}

// Calculator is the deterministic rule engine combining the area-prorated
// entitlement with the correction factors.
type Calculator struct {
	slope SlopePolicy
}

// NewCalculator builds a Calculator with the given slope policy. A nil
// policy selects ConstantSlopePolicy.
func NewCalculator(slope SlopePolicy) *Calculator {
	if slope == nil {
		slope = ConstantSlopePolicy
	}
	return &Calculator{slope: slope}
}

// Compute produces the final litres estimate. Identical inputs always yield
// an identical result apart from the ComputedAt stamp.
func (c *Calculator) Compute(in CalcInput) (BalanceResult, error) {
	talukaAreaAres := in.TalukaAreaSqKm * 10_000
	if talukaAreaAres <= 0 {
		return BalanceResult{}, NewPrecondition(
			fmt.Sprintf("nonpositive taluka area %v sq km", in.TalukaAreaSqKm))
	}

	availabilityLitres := in.AvailabilityMCM * 1_000_000 * 1000
	areaFraction := in.FarmAreaAres / talukaAreaAres
	entitlement := availabilityLitres * areaFraction

	finalLitres := entitlement *
		CategoryFactor(in.Category) *
		LithologyFactor(in.Lithology) *
		c.slope(in.SlopeDeg) *
		LifecycleFactor

	return BalanceResult{
		// The *100 after rounding reproduces the observed upstream
		// contract; see the package doc for the defect flag.
		GroundwaterAvailableLitres: round2(finalLitres) * 100,
		Basis: Basis{
			LevelUsed:         in.LevelUsed,
			Category:          in.Category,
			FarmAreaAres:      in.FarmAreaAres,
			TalukaAreaSqKm:    in.TalukaAreaSqKm,
			LithologyCode:     in.Lithology,
			Lifecycle:         "single crop",
			Taluka:            in.Taluka,
			District:          in.District,
			RegistryLocation:  in.RegistryLocation,
			StageOfExtraction: in.StageOfExtraction,
		},
		ComputedAt: clock.Now().UTC(),
	}, nil
}

// round2 rounds to two decimal places, half to even, matching the upstream
// contract's rounding at exact .xx5 boundaries.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
