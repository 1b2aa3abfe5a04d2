package features

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func grayUniform(size int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func grayCheckerboard(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 1 {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

func grayRandom(size int, seed int64) *image.Gray {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

func TestGLCM_Uniform(t *testing.T) {
	for _, v := range []uint8{0, 17, 128, 255} {
		g := NewGLCM(grayUniform(128, v))
		assert.Equal(t, 1.0, g.Sum())
		assert.Equal(t, 1.0, g.At(int(v)/16, int(v)/16))
		assert.Equal(t, 0.0, g.Contrast())
		assert.Equal(t, 1.0, g.Energy())
		assert.Equal(t, 1.0, g.Homogeneity())
	}
}

func TestGLCM_Checkerboard(t *testing.T) {
	g := NewGLCM(grayCheckerboard(128))

	assert.Equal(t, 0.5, g.At(0, 15))
	assert.Equal(t, 0.5, g.At(15, 0))
	assert.Equal(t, 225.0, g.Contrast())
	assert.Equal(t, 0.5, g.ASM())
	assert.Equal(t, 1.0/16, g.Homogeneity())
}

func TestGLCM_SymmetricAndNormalized(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := NewGLCM(grayRandom(128, seed))

		assert.InDelta(t, 1.0, g.Sum(), 1e-9)
		for i := 0; i < Levels; i++ {
			for j := 0; j < Levels; j++ {
				assert.Equal(t, g.At(i, j), g.At(j, i))
			}
		}
		assert.Greater(t, g.Contrast(), 0.0)
		assert.Less(t, g.Energy(), 1.0)
		assert.Less(t, g.Homogeneity(), 1.0)
	}
}

func TestGLCM_TooNarrow(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 10))
	g := NewGLCM(img)
	assert.Equal(t, 0.0, g.Sum())
	assert.Equal(t, 0.0, g.Energy())
	assert.Equal(t, 0.0, g.Homogeneity())
}

func TestGLCM_HorizontalOffsetOnly(t *testing.T) {
	// Horizontal stripes: every row is constant, so horizontal pairs never
	// differ even though the image is not uniform.
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Pix[y*img.Stride+x] = uint8(y * 16)
		}
	}

	g := NewGLCM(img)
	assert.Equal(t, 0.0, g.Contrast())
	assert.Equal(t, 1.0, g.Homogeneity())
	assert.InDelta(t, 1.0/16, g.Energy(), 1e-12)
}

func TestLaplacianVariance(t *testing.T) {
	assert.Equal(t, 0.0, LaplacianVariance(grayUniform(128, 0)))
	assert.Equal(t, 0.0, LaplacianVariance(grayUniform(128, 200)))
	// Every response is +-4*255.
	assert.InDelta(t, 1020.0*1020.0, LaplacianVariance(grayCheckerboard(128)), 1e-6)
	assert.Equal(t, 0.0, LaplacianVariance(image.NewGray(image.Rect(0, 0, 0, 0))))
}

func TestLaplacianVariance_SharpVersusSmooth(t *testing.T) {
	sharp := image.NewGray(image.Rect(0, 0, 64, 64))
	smooth := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if x >= 32 {
				sharp.Pix[y*sharp.Stride+x] = 255
			}
			smooth.Pix[y*smooth.Stride+x] = uint8(x * 4)
		}
	}
	assert.Greater(t, LaplacianVariance(sharp), LaplacianVariance(smooth))
}

func TestReflect101(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{-1, 5, 1},
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 3},
		{-1, 1, 0},
		{1, 1, 0},
		{-1, 2, 1},
		{2, 2, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reflect101(tt.i, tt.n), "reflect101(%d, %d)", tt.i, tt.n)
	}
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, Entropy(grayUniform(128, 0)))
	assert.Equal(t, 0.0, Entropy(grayUniform(128, 255)))
	assert.InDelta(t, 1.0, Entropy(grayCheckerboard(128)), 1e-12)

	all := image.NewGray(image.Rect(0, 0, 256, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 256; x++ {
			all.Pix[y*all.Stride+x] = uint8(x)
		}
	}
	assert.InDelta(t, 8.0, Entropy(all), 1e-9)
}

func TestEntropy_NonNegative(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		e := Entropy(grayRandom(64, seed))
		assert.Greater(t, e, 0.0)
		assert.LessOrEqual(t, e, 8.0)
	}
}

func TestTexture_Order(t *testing.T) {
	want := [5]float64{1020 * 1020, 225, 0.5, 1.0 / 16, 1}
	got := Texture(grayCheckerboard(128)).Values()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "value %d", i)
	}
}

func TestDarkRatio(t *testing.T) {
	tests := []struct {
		name string
		img  *image.Gray
		want float64
	}{
		{"all black", grayUniform(128, 0), 1},
		{"just below threshold", grayUniform(128, DarkThreshold-1), 1},
		{"at threshold", grayUniform(128, DarkThreshold), 0},
		{"all white", grayUniform(128, 255), 0},
		{"checkerboard", grayCheckerboard(128), 0.5},
		{"empty", image.NewGray(image.Rectangle{}), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DarkRatio(tt.img))
		})
	}
}
