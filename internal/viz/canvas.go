package viz

import "strings"

// Braille cells pack 2x4 dots, unicode block starting at 0x2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface. Dot coordinates run over
// (Width*2) x (Height*4) with the origin at the top left.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] |= dotBits[y%4][x%2]
}

// Line draws between two dot coordinates with Bresenham stepping.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Blob fills a small square around a dot coordinate, used for joints.
func (c *Canvas) Blob(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps a world rectangle onto the canvas dot grid, flipping
// the vertical axis so +y points up on screen.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	canvas     *Canvas
}

func NewViewport(c *Canvas, minX, maxX, minY, maxY float64) *Viewport {
	return &Viewport{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY, canvas: c}
}

func (v *Viewport) toDots(x, y float64) (int, int) {
	w := float64(v.canvas.Width*2 - 1)
	h := float64(v.canvas.Height*4 - 1)
	px := (x - v.MinX) / (v.MaxX - v.MinX) * w
	py := (1 - (y-v.MinY)/(v.MaxY-v.MinY)) * h
	return int(px + 0.5), int(py + 0.5)
}

func (v *Viewport) Point(x, y float64) {
	px, py := v.toDots(x, y)
	v.canvas.Set(px, py)
}

func (v *Viewport) Segment(x0, y0, x1, y1 float64) {
	px0, py0 := v.toDots(x0, y0)
	px1, py1 := v.toDots(x1, y1)
	v.canvas.Line(px0, py0, px1, py1)
}

func (v *Viewport) Marker(x, y float64, r int) {
	px, py := v.toDots(x, y)
	v.canvas.Blob(px, py, r)
}
