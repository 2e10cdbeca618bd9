// Package lithology reads rock-class codes from the geology classification
// raster. The raster ships as a single-band TIFF with an ESRI world file
// carrying the affine georeference, and may use a CRS other than WGS-84.
package lithology

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/wroge/wgs84"
	"golang.org/x/image/tiff"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
)

// Sampler answers nearest-cell classification reads. The decoded raster is
// immutable and shared read-only across requests.
type Sampler struct {
	img     image.Image
	width   int
	height  int
	originX float64 // x of the center of the top-left cell
	originY float64 // y of the center of the top-left cell
	pixelW  float64
	pixelH  float64 // negative for north-up rasters
	project func(lon, lat float64) (x, y float64)
}

// Load decodes the raster and its world file. epsg names the raster's
// native CRS; 4326 skips reprojection.
func Load(rasterPath, worldPath string, epsg int, logger *slog.Logger) (*Sampler, error) {
	rf, err := os.Open(rasterPath)
	if err != nil {
		return nil, fmt.Errorf("open lithology raster: %w", err)
	}
	defer rf.Close()

	img, err := tiff.Decode(rf)
	if err != nil {
		return nil, fmt.Errorf("decode lithology raster: %w", err)
	}

	world, err := os.ReadFile(worldPath)
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}
	pixelW, pixelH, originX, originY, err := parseWorldFile(string(world))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	logger.Info("lithology raster loaded",
		"width", bounds.Dx(), "height", bounds.Dy(), "epsg", epsg)

	return &Sampler{
		img:     img,
		width:   bounds.Dx(),
		height:  bounds.Dy(),
		originX: originX,
		originY: originY,
		pixelW:  pixelW,
		pixelH:  pixelH,
		project: newProjection(epsg),
	}, nil
}

// Classify reprojects the coordinate into the raster CRS, maps it to the
// nearest cell, and reads the integer class value. A coordinate outside the
// raster extent is a fatal resource error for the request: lithology has no
// substitute data source.
func (s *Sampler) Classify(c domain.Coordinate) (domain.LithologyCode, error) {
	x, y := s.project(c.Lon, c.Lat)

	col := int(math.Round((x - s.originX) / s.pixelW))
	row := int(math.Round((y - s.originY) / s.pixelH))
	if col < 0 || col >= s.width || row < 0 || row >= s.height {
		return 0, domain.NewExternalService(
			"coordinate outside lithology raster extent",
			fmt.Errorf("cell (%d, %d) not in %dx%d raster", col, row, s.width, s.height))
	}

	return domain.LithologyCode(s.cellValue(col, row)), nil
}

// cellValue reads the raw band value at a cell. Classification rasters are
// paletted or grayscale; the palette index or gray level is the class code.
func (s *Sampler) cellValue(col, row int) int {
	b := s.img.Bounds()
	px, py := b.Min.X+col, b.Min.Y+row

	switch img := s.img.(type) {
	case *image.Paletted:
		return int(img.ColorIndexAt(px, py))
	case *image.Gray:
		return int(img.GrayAt(px, py).Y)
	case *image.Gray16:
		return int(img.Gray16At(px, py).Y >> 8)
	default:
		r, _, _, _ := s.img.At(px, py).RGBA()
		return int(r >> 8)
	}
}

// parseWorldFile reads the six-line ESRI world file: x pixel size, two
// rotation terms, y pixel size, then x and y of the top-left cell center.
// Rotated rasters are not supported.
func parseWorldFile(content string) (pixelW, pixelH, originX, originY float64, err error) {
	fields := strings.Fields(content)
	if len(fields) != 6 {
		return 0, 0, 0, 0, fmt.Errorf("world file: expected 6 values, got %d", len(fields))
	}

	vals := make([]float64, 6)
	for i, f := range fields {
		vals[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("world file value %d: %w", i+1, err)
		}
	}

	if vals[1] != 0 || vals[2] != 0 {
		return 0, 0, 0, 0, fmt.Errorf("world file: rotation terms unsupported")
	}
	if vals[0] == 0 || vals[3] == 0 {
		return 0, 0, 0, 0, fmt.Errorf("world file: zero pixel size")
	}
	return vals[0], vals[3], vals[4], vals[5], nil
}

// newProjection builds the WGS-84 to raster-CRS transform.
func newProjection(epsg int) func(lon, lat float64) (x, y float64) {
	if epsg == 4326 {
		return func(lon, lat float64) (float64, float64) { return lon, lat }
	}
	transform := wgs84.LonLat().To(wgs84.EPSG().Code(epsg))
	return func(lon, lat float64) (float64, float64) {
		x, y, _ := transform(lon, lat, 0)
		return x, y
	}
}
