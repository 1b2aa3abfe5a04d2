package imaging

import "testing"

func TestRGBToHSV_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		h, s, v uint8
	}{
		{"pure red", 255, 0, 0, 0, 255, 255},
		{"pure green", 0, 255, 0, 60, 255, 255},
		{"pure blue", 0, 0, 255, 120, 255, 255},
		{"yellow", 255, 255, 0, 30, 255, 255},
		{"cyan", 0, 255, 255, 90, 255, 255},
		{"magenta", 255, 0, 255, 150, 255, 255},
		{"white", 255, 255, 255, 0, 0, 255},
		{"black", 0, 0, 0, 0, 0, 0},
		{"gray", 128, 128, 128, 0, 0, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := rgbToHSV(tt.r, tt.g, tt.b)
			if h != tt.h || s != tt.s || v != tt.v {
				t.Errorf("got (%d,%d,%d), want (%d,%d,%d)", h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestRGBToHSV_HueWraps(t *testing.T) {
	// Hue just below 360 degrees rounds up to 180 and must wrap to 0.
	h, _, _ := rgbToHSV(255, 0, 1)
	if h >= 180 {
		t.Errorf("hue out of range: %d", h)
	}
}

func TestRGBToLab_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    [3]uint8
	}{
		{"white", 255, 255, 255, [3]uint8{255, 128, 128}},
		{"black", 0, 0, 0, [3]uint8{0, 128, 128}},
		{"pure red", 255, 0, 0, [3]uint8{136, 208, 195}},
		{"pure green", 0, 255, 0, [3]uint8{224, 42, 211}},
		{"pure blue", 0, 0, 255, [3]uint8{82, 207, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, a, b := rgbToLab(tt.r, tt.g, tt.b)
			if !within([3]uint8{l, a, b}, tt.want, 1) {
				t.Errorf("got (%d,%d,%d), want %v (+-1)", l, a, b, tt.want)
			}
		})
	}
}

func TestLuma(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{255, 255, 255, 255},
		{0, 0, 0, 0},
		{255, 0, 0, 76},
		{0, 255, 0, 150},
		{0, 0, 255, 29},
		{100, 100, 100, 100},
	}

	for _, tt := range tests {
		if got := luma(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("luma(%d,%d,%d): got %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestTo8_Saturates(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-3, 0},
		{0.4, 0},
		{0.5, 1},
		{254.6, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := to8(tt.in); got != tt.want {
			t.Errorf("to8(%v): got %d, want %d", tt.in, got, tt.want)
		}
	}
}
