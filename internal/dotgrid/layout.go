package dotgrid

import "math"

// Layout is the lattice derived from a container size. It is rebuilt
// wholesale on every resize.
type Layout struct {
	Cols, Rows int
	// Centers holds the resting dot centers in row-major order.
	Centers []Point

	// Width and Height are the container size in logical pixels.
	Width, Height float64
	// PixelWidth and PixelHeight size the backing surface in device pixels.
	PixelWidth, PixelHeight int
	Scale                   float64
}

type Point struct {
	X, Y float64
}

// BuildLayout centers as many dots as fit in width x height. A container
// smaller than one cell yields an empty layout.
func BuildLayout(width, height, scale, dotSize, gap float64) Layout {
	if scale <= 0 {
		scale = 1
	}
	width = math.Max(0, width)
	height = math.Max(0, height)

	l := Layout{
		Width:       width,
		Height:      height,
		PixelWidth:  int(width * scale),
		PixelHeight: int(height * scale),
		Scale:       scale,
	}

	cell := dotSize + gap
	if cell <= 0 {
		return l
	}
	cols := int(math.Floor((width + gap) / cell))
	rows := int(math.Floor((height + gap) / cell))
	if cols <= 0 || rows <= 0 {
		return l
	}

	gridW := cell*float64(cols) - gap
	gridH := cell*float64(rows) - gap
	startX := (width-gridW)/2 + dotSize/2
	startY := (height-gridH)/2 + dotSize/2

	l.Cols, l.Rows = cols, rows
	l.Centers = make([]Point, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			l.Centers = append(l.Centers, Point{
				X: startX + float64(x)*cell,
				Y: startY + float64(y)*cell,
			})
		}
	}
	return l
}
