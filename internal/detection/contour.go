package detection

import (
	"image"
	"math"
)

// simplifyTolerance is the maximum distance, in pixels, a dropped boundary
// pixel may lie from the simplified polygon. One diagonal pixel step absorbs
// the staircase of a digitized edge while keeping straight corners exact.
const simplifyTolerance = math.Sqrt2

// Contour is a closed polygon given as an ordered sequence of integer points.
// The last point connects back to the first.
type Contour []image.Point

// Area returns the enclosed area using the shoelace formula. The result is
// always non-negative regardless of winding direction.
func (c Contour) Area() float64 {
	if len(c) < 3 {
		return 0
	}
	var twice int
	for i, p := range c {
		q := c[(i+1)%len(c)]
		twice += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(float64(twice)) / 2
}

// Perimeter returns the length of the closed polyline through all points.
func (c Contour) Perimeter() float64 {
	if len(c) < 2 {
		return 0
	}
	var sum float64
	for i, p := range c {
		q := c[(i+1)%len(c)]
		sum += math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
	}
	return sum
}

// BoundingRect returns the smallest axis-aligned rectangle containing every
// point. Max is exclusive, so a single point yields a 1x1 rectangle.
func (c Contour) BoundingRect() image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c[0], Max: c[0].Add(image.Pt(1, 1))}
	for _, p := range c[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X+1 > r.Max.X {
			r.Max.X = p.X + 1
		}
		if p.Y+1 > r.Max.Y {
			r.Max.Y = p.Y + 1
		}
	}
	return r
}

// 8-neighborhood in counterclockwise order on screen (Y grows downward),
// starting east.
var neighbors = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

const dirWest = 4

func directionOf(d image.Point) int {
	for i, n := range neighbors {
		if n == d {
			return i
		}
	}
	return -1
}

// binaryMask is a read-only view over a mask with bounds checks folded in.
type binaryMask struct {
	width, height int
	pix           []uint8
	stride        int
}

func newBinaryMask(mask *image.Gray) binaryMask {
	b := mask.Bounds()
	return binaryMask{width: b.Dx(), height: b.Dy(), pix: mask.Pix, stride: mask.Stride}
}

func (m binaryMask) in(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m binaryMask) fg(x, y int) bool {
	return m.in(x, y) && m.pix[y*m.stride+x] != 0
}

// FindExternalContours returns the outer boundary of every 8-connected
// foreground region of mask that is not enclosed by another region. Regions
// sitting inside a hole of another region are skipped, as are the holes
// themselves. Contours are simplified polygons in raster order of their first
// pixel; coordinates are relative to the mask's top-left corner.
func FindExternalContours(mask *image.Gray) []Contour {
	m := newBinaryMask(mask)
	outside := outerBackground(m)

	visited := make([]bool, m.width*m.height)
	contours := make([]Contour, 0)

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.fg(x, y) || visited[y*m.width+x] {
				continue
			}
			if !floodFill(m, visited, outside, x, y) {
				continue
			}
			border := traceBorder(m, image.Pt(x, y))
			contours = append(contours, simplifyClosed(border, simplifyTolerance))
		}
	}

	return contours
}

// outerBackground marks the background pixels 4-connected to the image frame.
// Background uses 4-connectivity as the dual of 8-connected foreground.
func outerBackground(m binaryMask) []bool {
	outside := make([]bool, m.width*m.height)
	stack := make([]image.Point, 0, 2*(m.width+m.height))

	push := func(x, y int) {
		if !m.in(x, y) || m.fg(x, y) || outside[y*m.width+x] {
			return
		}
		outside[y*m.width+x] = true
		stack = append(stack, image.Pt(x, y))
	}

	for x := 0; x < m.width; x++ {
		push(x, 0)
		push(x, m.height-1)
	}
	for y := 0; y < m.height; y++ {
		push(0, y)
		push(m.width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}
	return outside
}

// floodFill marks the 8-connected region containing (startX, startY) as
// visited and reports whether the region touches the outer background or the
// image frame, i.e. whether its border is an external contour.
func floodFill(m binaryMask, visited, outside []bool, startX, startY int) bool {
	stack := []image.Point{{X: startX, Y: startY}}
	visited[startY*m.width+startX] = true
	external := false

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range neighbors {
			q := p.Add(d)
			if !m.in(q.X, q.Y) {
				external = true
				continue
			}
			i := q.Y*m.width + q.X
			if !m.fg(q.X, q.Y) {
				// Only edge-adjacent background counts; diagonal gaps are
				// closed under 8-connectivity.
				if (d.X == 0 || d.Y == 0) && outside[i] {
					external = true
				}
				continue
			}
			if !visited[i] {
				visited[i] = true
				stack = append(stack, q)
			}
		}
	}
	return external
}

// traceBorder follows the outer border of the region whose first pixel in
// raster order is start (Suzuki-Abe border following, 8-connectivity).
// The returned chain lists every border pixel once per visit, without
// repeating start at the end.
func traceBorder(m binaryMask, start image.Point) Contour {
	// start is the first region pixel in raster order, so its west neighbor
	// is background. Search clockwise from there for the first region pixel.
	first := image.Point{}
	found := false
	for k := 0; k < 8; k++ {
		d := neighbors[(dirWest-k+8)%8]
		if q := start.Add(d); m.fg(q.X, q.Y) {
			first, found = q, true
			break
		}
	}
	if !found {
		return Contour{start}
	}

	chain := make(Contour, 0, 64)
	prev, cur := first, start
	for {
		from := directionOf(prev.Sub(cur))
		var next image.Point
		for k := 1; k <= 8; k++ {
			d := neighbors[(from+k)%8]
			if q := cur.Add(d); m.fg(q.X, q.Y) {
				next = q
				break
			}
		}

		chain = append(chain, cur)
		if next == start && cur == first {
			break
		}
		prev, cur = cur, next
	}
	return chain
}

// simplifyClosed reduces a closed chain with the Douglas-Peucker algorithm.
// The chain is split at its first point and the point farthest from it, and
// both halves are simplified independently so the result stays closed.
func simplifyClosed(chain Contour, tolerance float64) Contour {
	if len(chain) < 3 {
		return append(Contour(nil), chain...)
	}

	far, farDist := 0, 0.0
	for i, p := range chain {
		if d := dist(chain[0], p); d > farDist {
			far, farDist = i, d
		}
	}
	if far == 0 {
		return Contour{chain[0]}
	}

	closedTail := make(Contour, 0, len(chain)-far+1)
	closedTail = append(closedTail, chain[far:]...)
	closedTail = append(closedTail, chain[0])

	head := simplifyOpen(chain[:far+1], tolerance)
	tail := simplifyOpen(closedTail, tolerance)

	out := make(Contour, 0, len(head)+len(tail)-2)
	out = append(out, head[:len(head)-1]...)
	out = append(out, tail[:len(tail)-1]...)
	return out
}

// simplifyOpen is Douglas-Peucker on an open polyline; both endpoints are kept.
func simplifyOpen(pts Contour, tolerance float64) Contour {
	if len(pts) < 3 {
		return append(Contour(nil), pts...)
	}

	a, b := pts[0], pts[len(pts)-1]
	split, maxDist := 0, -1.0
	for i := 1; i < len(pts)-1; i++ {
		if d := lineDist(pts[i], a, b); d > maxDist {
			split, maxDist = i, d
		}
	}

	if maxDist <= tolerance {
		return Contour{a, b}
	}

	left := simplifyOpen(pts[:split+1], tolerance)
	right := simplifyOpen(pts[split:], tolerance)
	return append(left[:len(left)-1], right...)
}

// lineDist is the distance from p to the infinite line through a and b, or to
// a itself when a and b coincide.
func lineDist(p, a, b image.Point) float64 {
	if a == b {
		return dist(p, a)
	}
	cross := (b.X-a.X)*(a.Y-p.Y) - (a.X-p.X)*(b.Y-a.Y)
	return math.Abs(float64(cross)) / dist(a, b)
}

func dist(p, q image.Point) float64 {
	return math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
}
