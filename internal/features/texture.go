package features

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/image-features/internal/imaging"
)

// TextureFeatures are the five texture descriptors of a grayscale image.
type TextureFeatures struct {
	LaplacianVar float64 `json:"laplacian_var"`
	Contrast     float64 `json:"glcm_contrast"`
	Energy       float64 `json:"glcm_energy"`
	Homogeneity  float64 `json:"glcm_homogeneity"`
	Entropy      float64 `json:"entropy"`
}

// Values returns the texture values in vector order.
func (t TextureFeatures) Values() [5]float64 {
	return [5]float64{t.LaplacianVar, t.Contrast, t.Energy, t.Homogeneity, t.Entropy}
}

// Texture computes all texture descriptors of gray.
func Texture(gray *image.Gray) TextureFeatures {
	g := NewGLCM(gray)
	return TextureFeatures{
		LaplacianVar: LaplacianVariance(gray),
		Contrast:     g.Contrast(),
		Energy:       g.Energy(),
		Homogeneity:  g.Homogeneity(),
		Entropy:      Entropy(gray),
	}
}

// LaplacianVariance convolves gray with the 4-neighbor Laplacian kernel
//
//	0  1  0
//	1 -4  1
//	0  1  0
//
// and returns the population variance of the response. Borders are
// mirrored without repeating the edge pixel (reflect-101), so a uniform
// image responds with zeros everywhere.
func LaplacianVariance(gray *image.Gray) float64 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	at := func(x, y int) float64 {
		return float64(gray.Pix[reflect101(y, h)*gray.Stride+reflect101(x, w)])
	}

	resp := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			resp = append(resp, at(x-1, y)+at(x+1, y)+at(x, y-1)+at(x, y+1)-4*at(x, y))
		}
	}
	return stat.PopVariance(resp, nil)
}

// reflect101 maps an index one step outside [0, n) back inside: -1 -> 1,
// n -> n-2.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*n - 2 - i
	}
	return i
}

// Entropy returns the Shannon entropy, in bits, of the 256-bin intensity
// histogram of gray. It is 0 for a single-valued image and at most 8.
func Entropy(gray *image.Gray) float64 {
	hist := imaging.Histogram(gray)

	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 0
	}

	p := make([]float64, len(hist))
	for v, c := range hist {
		p[v] = float64(c) / float64(total)
	}

	// stat.Entropy is in nats and returns -0 for a point mass.
	e := stat.Entropy(p) / math.Ln2
	if e <= 0 {
		return 0
	}
	return e
}
