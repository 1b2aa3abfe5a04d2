package features

import "image"

// DarkThreshold is the gray level below which a pixel counts as dark.
const DarkThreshold = 50

// DarkRatio returns the fraction of pixels of gray strictly darker than
// DarkThreshold, in [0, 1].
func DarkRatio(gray *image.Gray) float64 {
	b := gray.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	dark := 0
	for y := 0; y < b.Dy(); y++ {
		for _, v := range gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()] {
			if v < DarkThreshold {
				dark++
			}
		}
	}
	return float64(dark) / float64(total)
}
