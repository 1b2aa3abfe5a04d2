//go:build gocv
// +build gocv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// OpenCVAnalyzer computes the shape descriptors with OpenCV's thresholding
// and contour extraction. It exists to cross-check the native analyzer and
// is only functional in builds tagged gocv.
type OpenCVAnalyzer struct{}

// AnalyzeShape implements Analyzer.
func (OpenCVAnalyzer) AnalyzeShape(gray *image.Gray) (ShapeResult, error) {
	src, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return ShapeResult{}, fmt.Errorf("failed to convert gray image: %w", err)
	}
	defer src.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	t := gocv.Threshold(src, &mask, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return ShapeResult{Threshold: uint8(t)}, nil
	}

	best, bestArea := 0, -1.0
	for i := 0; i < contours.Size(); i++ {
		approx := gocv.ApproxPolyDP(contours.At(i), simplifyTolerance, true)
		a := Contour(approx.ToPoints()).Area()
		approx.Close()
		if a > bestArea {
			best, bestArea = i, a
		}
	}

	approx := gocv.ApproxPolyDP(contours.At(best), simplifyTolerance, true)
	defer approx.Close()

	return describe(Contour(approx.ToPoints()), uint8(t)), nil
}
