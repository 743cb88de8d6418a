package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Viewport is the world rectangle mapped onto the canvas. Y grows upward.
type Viewport struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Shapes are given in world coordinates and mapped through the viewport.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []bool // [y * termWidth + x]

	view   Viewport
	scaleX float64
	scaleY float64

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas of the given terminal size showing view.
func NewCanvas(termWidth, termHeight int, view Viewport) *Canvas {
	c := &Canvas{view: view}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the viewport.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
	}
	c.scaleX = float64(c.termWidth) / (c.view.MaxX - c.view.MinX)
	c.scaleY = float64(c.subPixelHeight) / (c.view.MaxY - c.view.MinY)
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Scale returns how many sub-pixels one world unit spans on each axis.
func (c *Canvas) Scale() (x, y float64) {
	return c.scaleX, c.scaleY
}

func (c *Canvas) toPixel(p Point) Point {
	return Point{
		X: (p.X - c.view.MinX) * c.scaleX,
		Y: (c.view.MaxY - p.Y) * c.scaleY,
	}
}

// WorldToTerminal converts a world position to a 1-based terminal (col, row).
func (c *Canvas) WorldToTerminal(x, y float64) (col, row int) {
	p := c.toPixel(Point{X: x, Y: y})
	return int(math.Round(p.X)) + 1, int(math.Round(p.Y))/2 + 1
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Plot sets the pixel under a world position.
func (c *Canvas) Plot(x, y float64) {
	p := c.toPixel(Point{X: x, Y: y})
	c.setPixel(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// Line draws a line between two world points using Bresenham's algorithm.
func (c *Canvas) Line(p1, p2 Point) {
	a := c.toPixel(p1)
	b := c.toPixel(p2)
	c.pixelLine(int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)))
}

func (c *Canvas) pixelLine(x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon draws a polygon from world points, optionally filled.
func (c *Canvas) Polygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.Line(points[i], points[(i+1)%n])
	}
}

// Circle draws a circle outline approximated by a polygon.
func (c *Canvas) Circle(cx, cy, r float64, filled bool) {
	c.Polygon(c.CirclePoints(cx, cy, r, 16, 0), filled)
}

// CirclePoints fills a reusable buffer with n points around a circle,
// starting at angle phase. The slice is valid until the next call.
func (c *Canvas) CirclePoints(cx, cy, r float64, n int, phase float64) []Point {
	pts := c.BorrowPoints(n)
	for i := range pts {
		a := phase + float64(i)*2*math.Pi/float64(n)
		pts[i] = Point{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r}
	}
	return pts
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// fillPolygon fills a polygon using a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = c.toPixel(p)
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render outputs the canvas to the writer using half-block characters.
// Empty cells are skipped; callers clear the screen beforehand.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	for row := 0; row < c.termHeight; row++ {
		top := row * 2 * c.termWidth
		bottom := (row*2 + 1) * c.termWidth
		for col := 0; col < c.termWidth; col++ {
			t := c.pixels[top+col]
			b := c.pixels[bottom+col]

			var ch rune
			switch {
			case t && b:
				ch = BlockFull
			case t:
				ch = BlockUpperHalf
			case b:
				ch = BlockLowerHalf
			default:
				continue
			}
			c.renderBuf.WriteString("\033[")
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1), 10))
			c.renderBuf.WriteByte(';')
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1), 10))
			c.renderBuf.WriteByte('H')
			c.renderBuf.WriteRune(ch)
		}
	}
	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
