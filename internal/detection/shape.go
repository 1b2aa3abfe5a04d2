package detection

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-features/internal/imaging"
)

// Shape backend names accepted by NewAnalyzer.
const (
	BackendNative = "native"
	BackendOpenCV = "opencv"
)

// ErrBackendUnavailable is returned by a shape backend that was not compiled in.
var ErrBackendUnavailable = errors.New("shape backend not available in this build")

// Descriptors are the six geometric measurements of a primary contour.
type Descriptors struct {
	// Area is the shoelace area enclosed by the contour, in square pixels.
	Area float64 `json:"area"`

	// Perimeter is the closed boundary length in pixels.
	Perimeter float64 `json:"perimeter"`

	// Circularity is 4*pi*Area/Perimeter^2: 1.0 for a circle, lower for
	// irregular shapes, 0 when the perimeter is 0.
	Circularity float64 `json:"circularity"`

	// Solidity is Area divided by the convex hull area: 1.0 when convex,
	// 0 when the hull has no area.
	Solidity float64 `json:"solidity"`

	// AspectRatio is bounding-box width divided by height.
	AspectRatio float64 `json:"aspect_ratio"`

	// Extent is the fraction of the bounding box covered by Area.
	Extent float64 `json:"extent"`
}

// Values returns the descriptors in vector order: area, perimeter,
// circularity, solidity, aspect ratio, extent.
func (d Descriptors) Values() [6]float64 {
	return [6]float64{d.Area, d.Perimeter, d.Circularity, d.Solidity, d.AspectRatio, d.Extent}
}

// ShapeResult is the outcome of shape analysis on one grayscale image.
//
// When Found is false no foreground region was detected and every descriptor
// is zero. Otherwise Contour is the region with the largest enclosed area and
// Hull its convex hull.
type ShapeResult struct {
	Found       bool            `json:"found"`
	Threshold   uint8           `json:"threshold"`
	Contour     Contour         `json:"-"`
	Hull        Contour         `json:"-"`
	Bounds      image.Rectangle `json:"-"`
	Descriptors Descriptors     `json:"descriptors"`
}

// Values flattens the result to the fixed six-value layout. A result without a
// contour yields six zeros.
func (r ShapeResult) Values() [6]float64 {
	if !r.Found {
		return [6]float64{}
	}
	return r.Descriptors.Values()
}

// Analyzer computes shape descriptors from a grayscale image.
type Analyzer interface {
	AnalyzeShape(gray *image.Gray) (ShapeResult, error)
}

// NewAnalyzer returns the analyzer for a backend name. An empty name selects
// the native backend.
func NewAnalyzer(backend string) (Analyzer, error) {
	switch backend {
	case "", BackendNative:
		return NativeAnalyzer{}, nil
	case BackendOpenCV:
		return OpenCVAnalyzer{}, nil
	}
	return nil, fmt.Errorf("unknown shape backend: %q", backend)
}

// NativeAnalyzer is the pure-Go shape analyzer. It never fails.
type NativeAnalyzer struct{}

// AnalyzeShape implements Analyzer.
func (NativeAnalyzer) AnalyzeShape(gray *image.Gray) (ShapeResult, error) {
	return AnalyzeShape(gray), nil
}

// AnalyzeShape binarizes gray with Otsu's threshold, finds the external
// contours of the foreground and describes the one with the largest area.
//
// # Algorithm
//
//  1. Threshold: Otsu over the intensity histogram; foreground = gray > t
//  2. Contours: outer borders of 8-connected foreground regions, simplified
//     to within one diagonal pixel step
//  3. Primary contour: largest shoelace area, first in raster order on ties
//  4. Descriptors: area, perimeter, convex hull, bounding box and the ratios
//     derived from them, each ratio 0 when its denominator is 0
//
// An image without foreground (for example a uniform image) returns a result
// with Found == false.
func AnalyzeShape(gray *image.Gray) ShapeResult {
	t := OtsuThreshold(imaging.Histogram(gray))
	contours := FindExternalContours(Binarize(gray, t))
	if len(contours) == 0 {
		return ShapeResult{Threshold: t}
	}

	primary := contours[0]
	primaryArea := primary.Area()
	for _, c := range contours[1:] {
		if a := c.Area(); a > primaryArea {
			primary, primaryArea = c, a
		}
	}

	return describe(primary, t)
}

// describe computes the descriptors of a primary contour.
func describe(c Contour, threshold uint8) ShapeResult {
	area := c.Area()
	perimeter := c.Perimeter()
	hull := c.ConvexHull()
	hullArea := hull.Area()
	bounds := c.BoundingRect()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	d := Descriptors{
		Area:      area,
		Perimeter: perimeter,
	}
	if perimeter != 0 {
		d.Circularity = 4 * math.Pi * area / (perimeter * perimeter)
	}
	if hullArea != 0 {
		d.Solidity = area / hullArea
	}
	if h != 0 {
		d.AspectRatio = w / h
	}
	if w*h != 0 {
		d.Extent = area / (w * h)
	}

	return ShapeResult{
		Found:       true,
		Threshold:   threshold,
		Contour:     c,
		Hull:        hull,
		Bounds:      bounds,
		Descriptors: d,
	}
}
