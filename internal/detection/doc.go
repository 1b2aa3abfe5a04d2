// Package detection finds the dominant foreground shape in a grayscale image
// and describes its geometry.
//
// # Pipeline
//
//  1. Binarization: Otsu's global threshold over the 256-bin histogram;
//     pixels strictly above the threshold are foreground
//  2. Contour extraction: outer borders of 8-connected foreground regions,
//     traced with Suzuki-Abe border following. Regions nested inside the
//     hole of another region are not external and are ignored
//  3. Simplification: Douglas-Peucker with a tolerance of one diagonal pixel
//     step, which removes the staircase of digitized edges
//  4. Selection: the contour with the largest enclosed area is primary
//  5. Description: area, perimeter, circularity, solidity, aspect ratio and
//     extent of the primary contour
//
// # Coordinate System
//
// Contour points are integer pixel coordinates relative to the top-left
// corner of the analyzed image: X increases rightward, Y downward. Areas
// and perimeters are measured on the polygon through pixel centers.
//
// # Degenerate Input
//
// Nothing in this package returns an error for well-formed input. A uniform
// image has no foreground and yields a ShapeResult with Found == false,
// whose Values are six zeros. Every ratio whose denominator is zero is 0.
//
// # Backends
//
// NativeAnalyzer is the pure-Go implementation. OpenCVAnalyzer runs the same
// measurements on OpenCV contours and is only available in builds tagged
// gocv; otherwise it returns ErrBackendUnavailable.
package detection
