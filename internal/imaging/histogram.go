package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"
)

// Histogram returns the 256-bin intensity histogram of a grayscale image.
func Histogram(gray *image.Gray) [256]int {
	// A gray pixel expands to R=G=B=Y, so the red sub-histogram is the
	// intensity histogram.
	h := histogram.NewRGBAHistogram(gray)

	var out [256]int
	copy(out[:], h.R.Bins)
	return out
}
