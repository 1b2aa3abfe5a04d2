package features

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-features/internal/detection"
	"github.com/ironsheep/image-features/internal/imaging"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func circleImage(size, cx, cy, radius int) *image.NRGBA {
	img := uniformImage(size, size, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

func checkerboardImage(size int) *image.NRGBA {
	img := uniformImage(size, size, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 1 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

func randomImage(w, h int, seed int64) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rng.Intn(256))
		img.Pix[i+1] = uint8(rng.Intn(256))
		img.Pix[i+2] = uint8(rng.Intn(256))
		img.Pix[i+3] = 255
	}
	return img
}

func extract(t *testing.T, img image.Image) Vector {
	t.Helper()
	v, err := NewExtractor(DefaultOptions()).Extract(context.Background(), img)
	require.NoError(t, err)
	return v
}

func TestExtract_AllWhite(t *testing.T) {
	v := extract(t, uniformImage(200, 200, color.NRGBA{255, 255, 255, 255}))

	assert.Equal(t, []float64{255, 255, 255}, v[IdxRGBMean:IdxRGBMean+3])
	assert.Equal(t, []float64{0, 0, 0}, v[IdxRGBStd:IdxRGBStd+3])
	assert.Equal(t, []float64{0, 0, 255}, v[IdxHSVMean:IdxHSVMean+3])
	assert.Equal(t, []float64{255, 128, 128}, v[IdxLabMean:IdxLabMean+3])
	assert.Equal(t, 0.0, v[IdxDarkRatio])
	assert.Equal(t, 0.0, v[IdxLaplacianVar])
	assert.Equal(t, 0.0, v[IdxEntropy])
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, v[IdxContourArea:IdxExtent+1])
}

func TestExtract_AllBlack(t *testing.T) {
	v := extract(t, uniformImage(200, 200, color.NRGBA{0, 0, 0, 255}))

	assert.Equal(t, 1.0, v[IdxDarkRatio])
	assert.Equal(t, 0.0, v[IdxEntropy])
	assert.False(t, math.Signbit(v[IdxEntropy]), "entropy must be +0")
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, v[IdxContourArea:IdxExtent+1])
	assert.Equal(t, 0.0, v[IdxGLCMContrast])
	assert.Equal(t, 1.0, v[IdxGLCMEnergy])
	assert.Equal(t, 1.0, v[IdxGLCMHomogeneity])
}

func TestExtract_CenteredCircle(t *testing.T) {
	v := extract(t, circleImage(64, 32, 32, 20))

	assert.GreaterOrEqual(t, v[IdxCircularity], 0.85)
	assert.LessOrEqual(t, v[IdxCircularity], 1.0)
	assert.GreaterOrEqual(t, v[IdxSolidity], 0.95)
	assert.LessOrEqual(t, v[IdxSolidity], 1.0)
	assert.InDelta(t, 1.0, v[IdxAspectRatio], 0.05)
	assert.Greater(t, v[IdxContourArea], 0.0)
}

func TestExtract_CheckerboardVersusUniform(t *testing.T) {
	board := extract(t, checkerboardImage(128))
	flat := extract(t, uniformImage(128, 128, color.NRGBA{128, 128, 128, 255}))

	assert.Greater(t, board[IdxLaplacianVar], flat[IdxLaplacianVar])
	assert.Greater(t, board[IdxGLCMContrast], flat[IdxGLCMContrast])
	assert.InDelta(t, 1040400.0, board[IdxLaplacianVar], 1e-6)
	assert.Equal(t, 225.0, board[IdxGLCMContrast])
	assert.Equal(t, 0.5, board[IdxDarkRatio])
}

func TestExtract_FiniteValues(t *testing.T) {
	images := map[string]image.Image{
		"random square":   randomImage(100, 100, 1),
		"random wide":     randomImage(300, 20, 2),
		"random tall":     randomImage(7, 250, 3),
		"single pixel":    randomImage(1, 1, 4),
		"checkerboard":    checkerboardImage(128),
		"circle":          circleImage(64, 32, 32, 20),
		"uniform mid":     uniformImage(50, 50, color.NRGBA{90, 140, 30, 255}),
		"transparent red": uniformImage(20, 20, color.NRGBA{255, 0, 0, 0}),
	}

	for name, img := range images {
		t.Run(name, func(t *testing.T) {
			v := extract(t, img)
			require.Len(t, v.Slice(), VectorLen)
			for i, x := range v {
				assert.False(t, math.IsNaN(x) || math.IsInf(x, 0), "%s is %v", Layout()[i], x)
			}
			assert.GreaterOrEqual(t, v[IdxDarkRatio], 0.0)
			assert.LessOrEqual(t, v[IdxDarkRatio], 1.0)
			assert.GreaterOrEqual(t, v[IdxSolidity], 0.0)
			assert.LessOrEqual(t, v[IdxSolidity], 1.0)
			assert.GreaterOrEqual(t, v[IdxEntropy], 0.0)
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	img := randomImage(173, 91, 42)

	a := extract(t, img)
	b := extract(t, img)
	for i := range a {
		assert.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]), Layout()[i])
	}
}

func TestExtract_SequentialMatchesParallel(t *testing.T) {
	img := circleImage(90, 40, 50, 25)

	seq, err := NewExtractor(Options{Parallel: false}).Extract(context.Background(), img)
	require.NoError(t, err)
	par, err := NewExtractor(Options{Parallel: true}).Extract(context.Background(), img)
	require.NoError(t, err)

	assert.Equal(t, seq, par)
}

func TestExtract_Preconditions(t *testing.T) {
	e := NewExtractor(DefaultOptions())

	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, imaging.ErrNilImage)

	_, err = e.Extract(context.Background(), image.NewNRGBA(image.Rect(0, 0, 0, 10)))
	assert.ErrorIs(t, err, imaging.ErrEmptyImage)

	_, err = e.Extract(context.Background(), image.NewNRGBA(image.Rect(5, 5, 5, 5)))
	assert.ErrorIs(t, err, imaging.ErrEmptyImage)
}

func TestExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(DefaultOptions()).Extract(ctx, randomImage(10, 10, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

type failingAnalyzer struct{ err error }

func (f failingAnalyzer) AnalyzeShape(*image.Gray) (detection.ShapeResult, error) {
	return detection.ShapeResult{}, f.err
}

func TestExtract_ShapeBackendError(t *testing.T) {
	boom := errors.New("boom")
	for _, parallel := range []bool{false, true} {
		e := NewExtractor(Options{Parallel: parallel, Shape: failingAnalyzer{err: boom}})
		_, err := e.Extract(context.Background(), randomImage(10, 10, 1))
		assert.ErrorIs(t, err, boom)
	}
}

func TestAnalyze_MatchesStages(t *testing.T) {
	img := circleImage(128, 64, 64, 40)

	res, err := NewExtractor(DefaultOptions()).Analyze(context.Background(), img)
	require.NoError(t, err)

	p, err := imaging.Prepare(img)
	require.NoError(t, err)

	assert.Equal(t, ColorStats(p), res.Color)
	assert.Equal(t, Texture(p.Gray), res.Texture)
	assert.Equal(t, detection.AnalyzeShape(p.Gray).Values(), res.Shape.Values())
	assert.Equal(t, DarkRatio(p.Gray), res.DarkRatio)
	assert.True(t, res.Shape.Found)
}

func TestNewExtractor_NilShapeUsesNative(t *testing.T) {
	img := circleImage(128, 64, 64, 40)

	a, err := NewExtractor(Options{}).Extract(context.Background(), img)
	require.NoError(t, err)
	b, err := NewExtractor(Options{Shape: detection.NativeAnalyzer{}}).Extract(context.Background(), img)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
