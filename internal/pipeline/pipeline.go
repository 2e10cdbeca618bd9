// Package pipeline orchestrates the groundwater balance estimation for one
// request: boundary resolution, area lookup, lithology sampling, terrain
// lookup, registry resolution, entitlement fetch, and the final rule--
// engine computation, strictly in that order.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

// BoundaryResolver answers point-containment against the administrative
// layers. Empty strings mean "no containing polygon" at that level.
type BoundaryResolver interface {
	Resolve(c domain.Coordinate) (taluka, district string)
}

// AreaLookup returns a taluka's land area in square kilometres.
type AreaLookup interface {
	LookupArea(name string) (float64, bool)
}

// LithologyClassifier samples the rock-class raster at a coordinate.
type LithologyClassifier interface {
	Classify(c domain.Coordinate) (domain.LithologyCode, error)
}

// SlopeProvider returns a terrain slope reading in degrees.
type SlopeProvider interface {
	Slope(ctx context.Context, c domain.Coordinate) (float64, error)
}

// RegistryResolver finds the INGRES record for administrative names,
// taluka-first with district fallback.
type RegistryResolver interface {
	Resolve(ctx context.Context, taluka, district string) (domain.RegistryRecord, domain.AdminLevel, bool, error)
}

// EntitlementFetcher retrieves business data figures for a registry record.
type EntitlementFetcher interface {
	FetchEntitlement(ctx context.Context, rec domain.RegistryRecord) (domain.EntitlementFigures, error)
}

// Pipeline wires the stages together. All stage dependencies are read-only
// or stateless, so one Pipeline serves concurrent requests without locking.
type Pipeline struct {
	boundary  BoundaryResolver
	area      AreaLookup
	lithology LithologyClassifier
	terrain   SlopeProvider
	registry  RegistryResolver
	fetcher   EntitlementFetcher
	calc      *domain.Calculator
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline. The calculator may be nil, selecting the default
// constant slope policy.
func New(
	boundary BoundaryResolver,
	area AreaLookup,
	lithology LithologyClassifier,
	terrain SlopeProvider,
	registry RegistryResolver,
	fetcher EntitlementFetcher,
	calc *domain.Calculator,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Pipeline {
	if calc == nil {
		calc = domain.NewCalculator(nil)
	}
	p := &Pipeline{
		boundary:  boundary,
		area:      area,
		lithology: lithology,
		terrain:   terrain,
		registry:  registry,
		fetcher:   fetcher,
		calc:      calc,
		logger:    logger,
		metrics:   metrics,
	}
	// Reference datasets are loaded before construction; a built pipeline
	// is a ready pipeline.
	p.ready.Store(true)
	return p
}

// CheckReadiness reports whether the service can take traffic.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("reference datasets not loaded")
	}
	return nil
}

// Assess runs the full estimation pipeline for one request. Every stage
// either produces a valid value or a terminal typed failure; there are no
// partial results.
func (p *Pipeline) Assess(ctx context.Context, lat, lon, farmAreaAres float64) (domain.BalanceResult, error) {
	start := time.Now()
	result, err := p.assess(ctx, lat, lon, farmAreaAres)
	p.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	p.metrics.AssessmentsTotal.WithLabelValues(outcomeLabel(err)).Inc()
	return result, err
}

func (p *Pipeline) assess(ctx context.Context, lat, lon, farmAreaAres float64) (domain.BalanceResult, error) {
	coord := domain.Coordinate{Lat: lat, Lon: lon}
	if err := coord.Validate(); err != nil {
		return domain.BalanceResult{}, p.fail("validate", err)
	}
	if farmAreaAres <= 0 {
		return domain.BalanceResult{}, p.fail("validate",
			domain.NewPrecondition("farm_area_ares must be positive"))
	}

	taluka, district := p.boundary.Resolve(coord)
	if taluka == "" {
		return domain.BalanceResult{}, p.fail("boundary",
			domain.NewUnresolvableLocation("Taluka could not be resolved from coordinates"))
	}

	talukaAreaSqKm, ok := p.area.LookupArea(taluka)
	if !ok {
		return domain.BalanceResult{}, p.fail("area",
			domain.NewMissingReference("Taluka area not found"))
	}

	lithologyCode, err := p.lithology.Classify(coord)
	if err != nil {
		return domain.BalanceResult{}, p.fail("lithology", err)
	}

	slopeDeg, err := p.terrain.Slope(ctx, coord)
	if err != nil {
		return domain.BalanceResult{}, p.fail("terrain", err)
	}

	record, levelUsed, found, err := p.registry.Resolve(ctx, taluka, district)
	if err != nil {
		return domain.BalanceResult{}, p.fail("registry", err)
	}
	if !found {
		return domain.BalanceResult{}, p.fail("registry",
			domain.NewMissingReference("No INGRES groundwater data available"))
	}

	figures, err := p.fetcher.FetchEntitlement(ctx, record)
	if err != nil {
		return domain.BalanceResult{}, p.fail("ingres", err)
	}

	result, err := p.calc.Compute(domain.CalcInput{
		FarmAreaAres:      farmAreaAres,
		TalukaAreaSqKm:    talukaAreaSqKm,
		AvailabilityMCM:   figures.AvailabilityForFutureUse.MCM(),
		Category:          figures.Category.CategoryLabel(),
		Lithology:         lithologyCode,
		SlopeDeg:          slopeDeg,
		LevelUsed:         levelUsed,
		Taluka:            taluka,
		District:          district,
		RegistryLocation:  figures.LocationName,
		StageOfExtraction: figures.StageOfExtraction.MCM(),
	})
	if err != nil {
		return domain.BalanceResult{}, p.fail("calculator", err)
	}

	p.logger.Info("assessment complete",
		"taluka", taluka,
		"district", district,
		"level_used", result.Basis.LevelUsed,
		"category", result.Basis.Category,
		"lithology_code", int(lithologyCode),
		"litres", result.GroundwaterAvailableLitres,
	)
	return result, nil
}

// fail records the failing stage and returns the error unchanged.
func (p *Pipeline) fail(stage string, err error) error {
	p.metrics.StageErrors.WithLabelValues(stage).Inc()
	p.logger.Warn("pipeline stage failed", "stage", stage, "error", err)
	return err
}

func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	kind, ok := domain.KindOf(err)
	if !ok {
		return "internal"
	}
	switch kind {
	case domain.KindUnresolvableLocation:
		return "unresolvable_location"
	case domain.KindMissingReference:
		return "missing_reference"
	case domain.KindExternalService:
		return "external_service"
	case domain.KindPrecondition:
		return "precondition"
	default:
		return "internal"
	}
}
