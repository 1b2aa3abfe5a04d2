//go:build !gocv
// +build !gocv

package detection

import "image"

// OpenCVAnalyzer is a placeholder when the binary is built without the gocv tag.
type OpenCVAnalyzer struct{}

// AnalyzeShape always returns ErrBackendUnavailable.
func (OpenCVAnalyzer) AnalyzeShape(*image.Gray) (ShapeResult, error) {
	return ShapeResult{}, ErrBackendUnavailable
}
