// Package boundary resolves which administrative units contain a WGS-84
// coordinate, using two immutable GeoJSON polygon layers loaded at start-up.
package boundary

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
)

// namedPolygon is one feature of a layer, with its bound precomputed for a
// cheap reject before the exact containment test.
type namedPolygon struct {
	name  string
	geom  orb.Geometry
	bound orb.Bound
}

// layer is an ordered set of named polygons for one administrative level.
// Ordering matters: when a point falls in multiple polygons, the first one
// in the layer's stored order wins.
type layer struct {
	level    domain.AdminLevel
	polygons []namedPolygon
}

// Index answers point-containment queries against the taluka and district
// layers. Shared read-only across requests after Load.
type Index struct {
	taluka   layer
	district layer
}

// Load reads both GeoJSON layers. nameProperty selects the feature property
// carrying the unit name (e.g. "NAME_3" for taluks, "NAME_2" for
// districts). Features without a usable name or polygonal geometry are
// skipped with a warning rather than failing the whole load.
func Load(talukaPath, districtPath, talukaNameProperty, districtNameProperty string, logger *slog.Logger) (*Index, error) {
	taluka, err := loadLayer(talukaPath, domain.LevelTaluka, talukaNameProperty, logger)
	if err != nil {
		return nil, err
	}
	district, err := loadLayer(districtPath, domain.LevelDistrict, districtNameProperty, logger)
	if err != nil {
		return nil, err
	}
	return &Index{taluka: taluka, district: district}, nil
}

func loadLayer(path string, level domain.AdminLevel, nameProperty string, logger *slog.Logger) (layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layer{}, fmt.Errorf("read %s layer: %w", level, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return layer{}, fmt.Errorf("decode %s layer: %w", level, err)
	}

	l := layer{level: level, polygons: make([]namedPolygon, 0, len(fc.Features))}
	for i, f := range fc.Features {
		name := f.Properties.MustString(nameProperty, "")
		if name == "" {
			logger.Warn("boundary feature without name, skipping",
				"level", level, "index", i, "property", nameProperty)
			continue
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			l.polygons = append(l.polygons, namedPolygon{
				name:  name,
				geom:  f.Geometry,
				bound: f.Geometry.Bound(),
			})
		default:
			logger.Warn("boundary feature with non-polygon geometry, skipping",
				"level", level, "name", name, "type", f.Geometry.GeoJSONType())
		}
	}

	logger.Info("boundary layer loaded", "level", level, "features", len(l.polygons))
	return l, nil
}

// Resolve returns the names of the containing taluka and district, each ""
// when no polygon of that layer contains the coordinate. Absence is a
// normal outcome, not an error; the layers are queried independently.
func (ix *Index) Resolve(c domain.Coordinate) (taluka, district string) {
	point := orb.Point{c.Lon, c.Lat}
	return ix.taluka.contains(point), ix.district.contains(point)
}

// TalukaCount and DistrictCount report layer sizes for readiness gauges.
func (ix *Index) TalukaCount() int   { return len(ix.taluka.polygons) }
func (ix *Index) DistrictCount() int { return len(ix.district.polygons) }

// TalukaNames returns the taluka names in layer order, for dataset
// reconciliation tooling.
func (ix *Index) TalukaNames() []string {
	names := make([]string, len(ix.taluka.polygons))
	for i, p := range ix.taluka.polygons {
		names[i] = p.name
	}
	return names
}

func (l layer) contains(point orb.Point) string {
	for _, p := range l.polygons {
		if !p.bound.Contains(point) {
			continue
		}
		switch g := p.geom.(type) {
		case orb.Polygon:
			if planar.PolygonContains(g, point) {
				return p.name
			}
		case orb.MultiPolygon:
			if planar.MultiPolygonContains(g, point) {
				return p.name
			}
		}
	}
	return ""
}
