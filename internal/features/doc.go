// Package features turns one image into a fixed 30-value feature vector.
//
// The image is first prepared by imaging.Prepare (128x128, RGB/HSV/Lab/gray).
// Four independent stages then read the prepared rasters:
//
//   - Color statistics: per-channel mean and population standard deviation
//     in RGB, HSV and Lab (18 values)
//   - Texture: Laplacian variance, GLCM contrast, energy and homogeneity,
//     and the Shannon entropy of the gray histogram (5 values)
//   - Shape: descriptors of the primary contour, see package detection
//     (6 values)
//   - Brightness: fraction of gray pixels below DarkThreshold (1 value)
//
// Assemble concatenates the stage outputs in that order. The order is a
// positional contract; LayoutVersion changes whenever it does.
//
// # Pinned Conventions
//
// Values are raw and unnormalized. Absolute values depend on a few fixed
// choices: bilinear resampling, OpenCV-style 8-bit HSV and Lab encodings,
// BT.601 luma, a 16-level GLCM at offset (1, 0), ASM as energy, and entropy
// in bits.
//
// # Concurrency
//
// An Extractor holds no mutable state and is safe for concurrent use. With
// Options.Parallel the four stages of one call run in their own goroutines
// over the shared read-only Prepared value.
package features
