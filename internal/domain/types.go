package domain

import (
	"fmt"
	"time"
)

// Coordinate is a WGS-84 latitude/longitude pair, created once per request.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks the coordinate against WGS-84 bounds.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return NewPrecondition(fmt.Sprintf("latitude %v out of range [-90, 90]", c.Lat))
	}
	if c.Lon < -180 || c.Lon > 180 {
		return NewPrecondition(fmt.Sprintf("longitude %v out of range [-180, 180]", c.Lon))
	}
	return nil
}

// AdminLevel identifies which administrative layer resolved a lookup.
type AdminLevel string

const (
	LevelTaluka   AdminLevel = "taluka"
	LevelDistrict AdminLevel = "district"
)

// LithologyCode enumerates the rock/soil classes of the classification raster.
type LithologyCode int

const (
	LithologyUnknown     LithologyCode = 0
	LithologyAlluvium    LithologyCode = 1
	LithologySedimentary LithologyCode = 2
	LithologyLimestone   LithologyCode = 3
	LithologyGranite     LithologyCode = 4
	LithologyBasalt      LithologyCode = 5
)

// RegistryRecord identifies a location in the INGRES directory. The
// directory's naming is independent of the boundary datasets, which is why
// resolution goes through fuzzy matching rather than a key join.
type RegistryRecord struct {
	LocationName  string `json:"locationName"`
	LocationType  string `json:"locationType"`
	LocationUUID  string `json:"locationUUID"`
	StateUUID     string `json:"stateUUID"`
	CategoryTotal string `json:"categoryTotal"`
}

// EntitlementFigures is the projection of the first entry of an INGRES
// business data response. Any field may be absent; the FlexValue fields may
// be numbers, strings, or keyed objects.
type EntitlementFigures struct {
	LocationName             string    `json:"locationName"`
	TotalGWAvailability      FlexValue `json:"totalGWAvailability"`
	AvailabilityForFutureUse FlexValue `json:"availabilityForFutureUse"`
	StageOfExtraction        FlexValue `json:"stageOfExtraction"`
	Category                 FlexValue `json:"category"`
}

// Basis documents which inputs produced an estimate, for auditability.
type Basis struct {
	LevelUsed         AdminLevel    `json:"level_used"`
	Category          string        `json:"category"`
	FarmAreaAres      float64       `json:"farm_area_ares"`
	TalukaAreaSqKm    float64       `json:"taluka_area_sq_km"`
	LithologyCode     LithologyCode `json:"lithology_code"`
	Lifecycle         string        `json:"lifecycle"`
	Taluka            string        `json:"taluka,omitempty"`
	District          string        `json:"district,omitempty"`
	RegistryLocation  string        `json:"registry_location,omitempty"`
	StageOfExtraction float64       `json:"stage_of_extraction,omitempty"`
}

// BalanceResult is the final per-request output: litres a farm may draw over
// one crop lifecycle, plus the basis that produced the number.
type BalanceResult struct {
	GroundwaterAvailableLitres float64   `json:"groundwater_available_litres"`
	Basis                      Basis     `json:"basis"`
	ComputedAt                 time.Time `json:"computed_at"`
}
