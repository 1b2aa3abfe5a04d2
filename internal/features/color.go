package features

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/image-features/internal/imaging"
)

// ChannelStats holds per-channel mean and population standard deviation of a
// three-channel raster, in channel order.
type ChannelStats struct {
	Mean [3]float64 `json:"mean"`
	Std  [3]float64 `json:"std"`
}

// ColorFeatures are the channel statistics of the three color representations.
type ColorFeatures struct {
	RGB ChannelStats `json:"rgb"`
	HSV ChannelStats `json:"hsv"`
	Lab ChannelStats `json:"lab"`
}

// Values returns the 18 color values: for RGB, then HSV, then Lab, the three
// means followed by the three standard deviations.
func (c ColorFeatures) Values() [18]float64 {
	var out [18]float64
	for i, s := range []ChannelStats{c.RGB, c.HSV, c.Lab} {
		copy(out[i*6:], s.Mean[:])
		copy(out[i*6+3:], s.Std[:])
	}
	return out
}

// ColorStats computes the color statistics of a prepared image.
func ColorStats(p *imaging.Prepared) ColorFeatures {
	return ColorFeatures{
		RGB: Stats(p.RGB),
		HSV: Stats(p.HSV),
		Lab: Stats(p.Lab),
	}
}

// Stats computes mean and population standard deviation of each channel of r.
func Stats(r *imaging.Raster) ChannelStats {
	var s ChannelStats
	for c := 0; c < 3; c++ {
		s.Mean[c], s.Std[c] = stat.PopMeanStdDev(r.Channel(c), nil)
	}
	return s
}
