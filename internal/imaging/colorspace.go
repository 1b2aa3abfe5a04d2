package imaging

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// rgbToHSV converts 8-bit RGB to 8-bit HSV.
//
// Hue is stored as degrees/2 so that the full circle fits in a byte
// (0-179); saturation and value are scaled to 0-255. Gray pixels have hue 0.
func rgbToHSV(r, g, b uint8) (h, s, v uint8) {
	hue, sat, val := normalized(r, g, b).Hsv()

	hh := math.Round(hue / 2)
	if hh >= 180 {
		hh -= 180
	}
	return uint8(hh), to8(sat * 255), to8(val * 255)
}

// rgbToLab converts 8-bit sRGB to 8-bit CIE L*a*b* (D65 reference white).
//
// go-colorful returns L*, a* and b* divided by 100. The 8-bit encoding is
// L = L* x 255/100, a = a* + 128, b = b* + 128.
func rgbToLab(r, g, b uint8) (l, a, bb uint8) {
	ll, aa, bv := normalized(r, g, b).Lab()
	return to8(ll * 255), to8(aa*100 + 128), to8(bv*100 + 128)
}

// luma returns the ITU-R BT.601 luminance of an 8-bit RGB triple, rounded.
func luma(r, g, b uint8) uint8 {
	return to8(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}

func normalized(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// to8 rounds v to the nearest integer and saturates it to 0-255.
func to8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
