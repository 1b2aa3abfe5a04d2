package features

import (
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Levels is the number of gray levels the co-occurrence matrix is quantized
// to. A gray value v falls into level v / (256 / Levels).
const Levels = 16

const levelWidth = 256 / Levels

// GLCM is a normalized, symmetric gray-level co-occurrence matrix.
//
// Entry (i, j) is the probability that a pixel of level i has a right-hand
// neighbor of level j, counting each pair in both directions.
type GLCM struct {
	p *mat.Dense
}

// NewGLCM builds the co-occurrence matrix of gray for the horizontal offset
// (dx=1, dy=0). An image narrower than two pixels has no pairs; its matrix is
// all zeros and so are its descriptors.
func NewGLCM(gray *image.Gray) *GLCM {
	p := mat.NewDense(Levels, Levels, nil)
	b := gray.Bounds()

	pairs := 0
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
		for x := 0; x+1 < len(row); x++ {
			i, j := int(row[x])/levelWidth, int(row[x+1])/levelWidth
			p.Set(i, j, p.At(i, j)+1)
			p.Set(j, i, p.At(j, i)+1)
			pairs += 2
		}
	}

	if pairs > 0 {
		data := p.RawMatrix().Data
		for k := range data {
			data[k] /= float64(pairs)
		}
	}
	return &GLCM{p: p}
}

// At returns P(i, j).
func (g *GLCM) At(i, j int) float64 {
	return g.p.At(i, j)
}

// Sum returns the total probability mass: 1 for any image with at least one
// pixel pair, 0 otherwise.
func (g *GLCM) Sum() float64 {
	return floats.Sum(g.p.RawMatrix().Data)
}

// Contrast returns sum P(i,j) * (i-j)^2.
func (g *GLCM) Contrast() float64 {
	return g.weighted(func(i, j int) float64 {
		d := float64(i - j)
		return d * d
	})
}

// ASM returns the angular second moment, sum P(i,j)^2.
func (g *GLCM) ASM() float64 {
	data := g.p.RawMatrix().Data
	return floats.Dot(data, data)
}

// Energy returns the angular second moment.
func (g *GLCM) Energy() float64 {
	return g.ASM()
}

// Homogeneity returns sum P(i,j) / (1 + |i-j|).
func (g *GLCM) Homogeneity() float64 {
	return g.weighted(func(i, j int) float64 {
		d := i - j
		if d < 0 {
			d = -d
		}
		return 1 / float64(1+d)
	})
}

func (g *GLCM) weighted(w func(i, j int) float64) float64 {
	var sum float64
	for i := 0; i < Levels; i++ {
		for j := 0; j < Levels; j++ {
			if v := g.p.At(i, j); v != 0 {
				sum += v * w(i, j)
			}
		}
	}
	return sum
}
