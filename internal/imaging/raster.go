package imaging

import (
	"errors"
	"fmt"
	"image"
)

// Precondition errors. They are returned before any processing starts and are
// never replaced by a zero-valued result.
var (
	ErrNilImage     = errors.New("image is nil")
	ErrEmptyImage   = errors.New("image has zero area")
	ErrChannelCount = errors.New("image must have exactly 3 channels")
)

// Space names the color space a Raster's three channels are expressed in.
type Space int

const (
	SpaceRGB Space = iota
	SpaceHSV
	SpaceLab
)

func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "rgb"
	case SpaceHSV:
		return "hsv"
	case SpaceLab:
		return "lab"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// Raster is an immutable W x H image with three interleaved 8-bit channels.
//
// Channel meaning depends on Space:
//   - SpaceRGB: R, G, B
//   - SpaceHSV: H (0-179, degrees/2), S (0-255), V (0-255)
//   - SpaceLab: L (0-255, L*x255/100), a (a*+128), b (b*+128)
type Raster struct {
	width  int
	height int
	space  Space
	pix    []uint8
}

// newRaster wraps pix without copying. Callers hand over ownership.
func newRaster(width, height int, space Space, pix []uint8) *Raster {
	return &Raster{width: width, height: height, space: space, pix: pix}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Space returns the color space of the raster.
func (r *Raster) Space() Space { return r.space }

// Len returns the number of pixels.
func (r *Raster) Len() int { return r.width * r.height }

// At returns the three channel values of the pixel at (x, y).
func (r *Raster) At(x, y int) (c0, c1, c2 uint8) {
	i := (y*r.width + x) * 3
	return r.pix[i], r.pix[i+1], r.pix[i+2]
}

// Channel returns a fresh float64 copy of channel c (0, 1 or 2) in row-major
// order. The copy may be modified freely by the caller.
func (r *Raster) Channel(c int) []float64 {
	out := make([]float64, r.Len())
	for i := range out {
		out[i] = float64(r.pix[i*3+c])
	}
	return out
}

// Validate reports whether img satisfies the preconditions for preparation:
// it must be non-nil and have a positive width and height.
func Validate(img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	return nil
}

// FromRGB builds an image from raw interleaved 8-bit RGB bytes, as handed over
// by an external decoder. pix must hold exactly width*height*3 bytes.
func FromRGB(width, height int, pix []uint8) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d pixels",
			ErrChannelCount, len(pix), width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4] = pix[i*3]
		img.Pix[i*4+1] = pix[i*3+1]
		img.Pix[i*4+2] = pix[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}
