package detection

import "image"

// OtsuThreshold selects the global threshold that maximizes the between-class
// variance of a 256-bin intensity histogram (equivalently, minimizes the
// weighted within-class variance).
//
// Pixels strictly greater than the returned value are foreground. Ties are
// resolved toward the lowest threshold. A histogram with a single occupied
// bin returns that bin, so a uniform image binarizes to an empty mask.
func OtsuThreshold(hist [256]int) uint8 {
	total := 0
	var sum float64
	lo, hi := -1, -1
	for v, c := range hist {
		if c == 0 {
			continue
		}
		if lo < 0 {
			lo = v
		}
		hi = v
		total += c
		sum += float64(v * c)
	}
	if total == 0 {
		return 0
	}
	if lo == hi {
		return uint8(lo)
	}

	var weightB, sumB float64
	best := -1.0
	threshold := 0
	for v := 0; v < 256; v++ {
		weightB += float64(hist[v])
		if weightB == 0 {
			continue
		}
		weightF := float64(total) - weightB
		if weightF == 0 {
			break
		}

		sumB += float64(v * hist[v])
		meanB := sumB / weightB
		meanF := (sum - sumB) / weightF

		between := weightB * weightF * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			threshold = v
		}
	}
	return uint8(threshold)
}

// Binarize returns a mask where pixels of gray above threshold are 255 and all
// others are 0. The mask has the same bounds as gray.
func Binarize(gray *image.Gray, threshold uint8) *image.Gray {
	b := gray.Bounds()
	mask := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
		for x, v := range src {
			if v > threshold {
				dst[x] = 255
			}
		}
	}
	return mask
}
