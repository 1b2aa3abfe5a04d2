package features

import (
	"github.com/ironsheep/image-features/internal/detection"
)

// VectorLen is the number of values in a feature vector.
const VectorLen = 30

// LayoutVersion identifies the order of Vector. It changes whenever a value
// is added, removed or moved.
const LayoutVersion = 1

// Positions of the blocks and scalars within a Vector.
const (
	IdxRGBMean = 0
	IdxRGBStd  = 3
	IdxHSVMean = 6
	IdxHSVStd  = 9
	IdxLabMean = 12
	IdxLabStd  = 15

	IdxLaplacianVar    = 18
	IdxGLCMContrast    = 19
	IdxGLCMEnergy      = 20
	IdxGLCMHomogeneity = 21
	IdxEntropy         = 22

	IdxContourArea      = 23
	IdxContourPerimeter = 24
	IdxCircularity      = 25
	IdxSolidity         = 26
	IdxAspectRatio      = 27
	IdxExtent           = 28

	IdxDarkRatio = 29
)

var layout = [VectorLen]string{
	"rgb_mean_r", "rgb_mean_g", "rgb_mean_b",
	"rgb_std_r", "rgb_std_g", "rgb_std_b",
	"hsv_mean_h", "hsv_mean_s", "hsv_mean_v",
	"hsv_std_h", "hsv_std_s", "hsv_std_v",
	"lab_mean_l", "lab_mean_a", "lab_mean_b",
	"lab_std_l", "lab_std_a", "lab_std_b",
	"laplacian_var",
	"glcm_contrast",
	"glcm_energy",
	"glcm_homogeneity",
	"entropy",
	"contour_area",
	"contour_perimeter",
	"circularity",
	"solidity",
	"aspect_ratio",
	"extent",
	"dark_ratio",
}

// Layout returns the names of the vector values in order.
func Layout() []string {
	out := make([]string, VectorLen)
	copy(out, layout[:])
	return out
}

// Vector is the ordered feature vector of one image.
type Vector [VectorLen]float64

// Slice returns the values as a new slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, VectorLen)
	copy(out, v[:])
	return out
}

// Named returns the values keyed by their layout name.
func (v Vector) Named() map[string]float64 {
	out := make(map[string]float64, VectorLen)
	for i, name := range layout {
		out[name] = v[i]
	}
	return out
}

// Assemble concatenates the stage outputs into a Vector: 18 color values,
// 5 texture values, 6 shape values and the dark ratio.
func Assemble(color ColorFeatures, texture TextureFeatures, shape detection.ShapeResult, darkRatio float64) Vector {
	var v Vector
	c := color.Values()
	t := texture.Values()
	s := shape.Values()

	n := copy(v[:], c[:])
	n += copy(v[n:], t[:])
	n += copy(v[n:], s[:])
	v[n] = darkRatio
	return v
}
