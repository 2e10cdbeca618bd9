// Command genmock writes a small self-consistent reference dataset bundle
// for local development: two boundary layers around Pune, the matching area
// table and INGRES location directory, and a lithology raster with its world
// file. Point the server's *_PATH variables at the output directory and any
// coordinate inside 73.5..74.5E 18.0..19.0N resolves end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/image/tiff"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/area"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
)

func main() {
	outDir := flag.String("out", "data", "output directory for the dataset bundle")
	flag.Parse()

	logger := observability.NewLogger("info", "text")

	if err := run(*outDir, logger); err != nil {
		logger.Error("failed to generate dataset bundle", "error", err)
		os.Exit(1)
	}
	logger.Info("dataset bundle written", "dir", *outDir)
}

func run(outDir string, logger *slog.Logger) error {
	spatialDir := filepath.Join(outDir, "spatial")
	if err := os.MkdirAll(spatialDir, 0o755); err != nil {
		return err
	}

	steps := []struct {
		path  string
		write func(path string) error
	}{
		{filepath.Join(spatialDir, "india_taluk.geojson"), writeTalukaLayer},
		{filepath.Join(spatialDir, "india_district.geojson"), writeDistrictLayer},
		{filepath.Join(outDir, "taluka_areas.json"), writeAreaTable},
		{filepath.Join(outDir, "ingres_locations.json"), writeRegistry},
		{filepath.Join(spatialDir, "india_geology_2m.tif"), writeRaster},
		{filepath.Join(spatialDir, "india_geology_2m.tfw"), writeWorldFile},
	}
	for _, s := range steps {
		if err := s.write(s.path); err != nil {
			return fmt.Errorf("write %s: %w", s.path, err)
		}
		logger.Info("wrote", "path", s.path)
	}
	return nil
}

func square(minLon, minLat, maxLon, maxLat float64) orb.Polygon {
	return orb.Polygon{{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}}
}

func writeTalukaLayer(path string) error {
	fc := geojson.NewFeatureCollection()
	for _, t := range []struct {
		name string
		geom orb.Polygon
	}{
		{"Haveli", square(73.5, 18.0, 74.0, 18.5)},
		{"Mulshi", square(73.5, 18.5, 74.0, 19.0)},
		{"Daund", square(74.0, 18.0, 74.5, 18.5)},
		{"Shirur", square(74.0, 18.5, 74.5, 19.0)},
	} {
		f := geojson.NewFeature(t.geom)
		f.Properties["NAME_3"] = t.name
		f.Properties["NAME_2"] = "Pune"
		fc.Append(f)
	}
	return writeJSON(path, fc)
}

func writeDistrictLayer(path string) error {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(square(73.5, 18.0, 74.5, 19.0))
	f.Properties["NAME_2"] = "Pune"
	fc.Append(f)
	return writeJSON(path, fc)
}

func writeAreaTable(path string) error {
	// "Sirur" drifts from the boundary spelling "Shirur" on purpose, so the
	// fuzzy fallback has something to do in local runs.
	return writeJSON(path, []area.Record{
		{Name: "Haveli", AreaSqKm: 1340.0},
		{Name: "Mulshi", AreaSqKm: 1109.0},
		{Name: "Daund", AreaSqKm: 1292.0},
		{Name: "Sirur", AreaSqKm: 1560.0},
	})
}

func writeRegistry(path string) error {
	const stateUUID = "f3b2a1c0-0000-4000-8000-0000000000a1"
	return writeJSON(path, []domain.RegistryRecord{
		{LocationName: "HAVELI", LocationType: "TALUK", LocationUUID: "11111111-1111-4111-8111-111111111111", StateUUID: stateUUID, CategoryTotal: "Safe"},
		{LocationName: "MULSHI", LocationType: "TALUK", LocationUUID: "22222222-2222-4222-8222-222222222222", StateUUID: stateUUID, CategoryTotal: "Safe"},
		{LocationName: "DAUND", LocationType: "TALUK", LocationUUID: "33333333-3333-4333-8333-333333333333", StateUUID: stateUUID, CategoryTotal: "Semi-Critical"},
		{LocationName: "PUNE", LocationType: "DISTRICT", LocationUUID: "44444444-4444-4444-8444-444444444444", StateUUID: stateUUID, CategoryTotal: "Safe"},
	})
}

// writeRaster emits a 100x100 gray raster covering the same extent as the
// boundary layers, cycling through the defined lithology codes by column.
func writeRaster(path string) error {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x % 6)})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
}

// writeWorldFile anchors the raster at 73.5E 19.0N with 0.01 degree cells,
// north-up (negative Y pixel size).
func writeWorldFile(path string) error {
	const tfw = "0.01\n0.0\n0.0\n-0.01\n73.505\n18.995\n"
	return os.WriteFile(path, []byte(tfw), 0o644)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
