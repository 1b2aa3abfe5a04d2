// Package imaging loads source images and prepares them for feature extraction.
//
// Preparation resizes an arbitrary image to a fixed 128x128 working raster and
// derives four read-only representations from it: RGB, HSV, CIE L*a*b* and
// 8-bit grayscale. Everything downstream works on those representations only,
// so the source image's size never leaks into a feature value.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Conversions
//
// The conversions are pinned so that results are reproducible:
//   - Resize: bilinear (disintegration/imaging Linear filter)
//   - HSV: H = hue/2 (0-179), S and V scaled to 0-255
//   - Lab: D65 white, L scaled to 0-255, a and b offset by 128
//   - Gray: ITU-R BT.601 luma (0.299*R + 0.587*G + 0.114*B), rounded
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Prepare is stateless and the values it
// returns are never mutated after construction, so a Prepared may be read from
// many goroutines at once.
//
// # Error Handling
//
// Precondition violations (nil image, zero area, wrong byte count for raw RGB
// input) are reported with the sentinel errors ErrNilImage, ErrEmptyImage and
// ErrChannelCount, wrapped with the offending dimensions. Use errors.Is to
// match them.
package imaging
