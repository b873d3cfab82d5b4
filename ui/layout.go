package ui

// FrameHeight is the fixed number of rows the dashboard lays out, whatever the
// real terminal height. Rows past the screen edge are clipped by the screen.
const FrameHeight = 25

const (
	titleBandRows   = 3
	summaryBandRows = 4
	// TileCount is the number of summary tiles in the middle band.
	TileCount = 4
)

// Tile positions inside the summary band, left to right.
const (
	TileConfirmed = iota
	TileActive
	TileRecovered
	TileFatal
)

// Rect is a cell rectangle on the screen. Width and Height are never negative
// once produced by this package.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Inner returns the rectangle inside a one-cell border.
func (r Rect) Inner() Rect {
	return Rect{
		X:      r.X + 1,
		Y:      r.Y + 1,
		Width:  clampZero(r.Width - 2),
		Height: clampZero(r.Height - 2),
	}
}

func (r Rect) Area() int {
	return r.Width * r.Height
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether o lies entirely within r. Empty rectangles placed on
// r's edge count as contained.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// HasPoint reports whether cell (x, y) is inside r.
func (r Rect) HasPoint(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

type constraintKind int

const (
	constraintLength constraintKind = iota
	constraintRatio
	constraintFill
)

// Constraint sizes one segment of a Split.
type Constraint struct {
	kind constraintKind
	num  int
	den  int
}

// Length is a fixed number of cells.
func Length(n int) Constraint {
	return Constraint{kind: constraintLength, num: clampZero(n)}
}

// Ratio takes num/den of the space left after fixed lengths.
func Ratio(num, den int) Constraint {
	if den <= 0 {
		den = 1
	}
	return Constraint{kind: constraintRatio, num: clampZero(num), den: den}
}

// Percentage is Ratio(p, 100).
func Percentage(p int) Constraint {
	return Ratio(p, 100)
}

// Fill shares whatever the other constraints leave over.
func Fill() Constraint {
	return Constraint{kind: constraintFill}
}

// Split partitions area along dir. Fixed lengths are granted first, in order,
// until space runs out. Ratios are floored against the space left after the
// lengths, fills split what remains evenly, and any cells lost to flooring go
// one at a time to the earliest ratio or fill segments. Sizes never go negative
// and never sum past the area.
func Split(area Rect, dir Direction, constraints ...Constraint) []Rect {
	total := area.Height
	if dir == Horizontal {
		total = area.Width
	}
	total = clampZero(total)
	sizes := splitSizes(total, constraints)

	out := make([]Rect, len(sizes))
	offset := 0
	for i, size := range sizes {
		if dir == Horizontal {
			out[i] = Rect{X: area.X + offset, Y: area.Y, Width: size, Height: clampZero(area.Height)}
		} else {
			out[i] = Rect{X: area.X, Y: area.Y + offset, Width: clampZero(area.Width), Height: size}
		}
		offset += size
	}
	return out
}

func splitSizes(total int, constraints []Constraint) []int {
	sizes := make([]int, len(constraints))

	remaining := total
	for i, c := range constraints {
		if c.kind != constraintLength {
			continue
		}
		size := c.num
		if size > remaining {
			size = remaining
		}
		sizes[i] = size
		remaining -= size
	}

	flexible := remaining
	var fills []int
	var proportional []int
	for i, c := range constraints {
		switch c.kind {
		case constraintRatio:
			size := flexible * c.num / c.den
			if size > remaining {
				size = remaining
			}
			sizes[i] = size
			remaining -= size
			proportional = append(proportional, i)
		case constraintFill:
			fills = append(fills, i)
			proportional = append(proportional, i)
		}
	}

	if len(fills) > 0 && remaining > 0 {
		share := remaining / len(fills)
		for _, i := range fills {
			sizes[i] = share
		}
		remaining -= share * len(fills)
	}

	// Flooring leftovers, leftmost first.
	for j := 0; remaining > 0 && len(proportional) > 0; j++ {
		sizes[proportional[j%len(proportional)]]++
		remaining--
	}
	return sizes
}

// Regions is the dashboard's region tree: three vertical bands, with the
// summary band split into four tiles.
type Regions struct {
	Frame   Rect
	Title   Rect
	Summary Rect
	Chart   Rect
	Tiles   [TileCount]Rect
}

// Leaves returns the six widget regions in draw order: title, the four tiles
// left to right, then the chart.
func (r Regions) Leaves() []Rect {
	leaves := make([]Rect, 0, TileCount+2)
	leaves = append(leaves, r.Title)
	leaves = append(leaves, r.Tiles[:]...)
	return append(leaves, r.Chart)
}

// ComputeRegions lays the dashboard out inside viewport. The frame keeps the
// viewport's origin and width but is always FrameHeight rows tall.
func ComputeRegions(viewport Rect) Regions {
	frame := Rect{
		X:      viewport.X,
		Y:      viewport.Y,
		Width:  clampZero(viewport.Width),
		Height: FrameHeight,
	}
	bands := Split(frame, Vertical,
		Length(titleBandRows),
		Length(summaryBandRows),
		Percentage(100),
	)
	tiles := Split(bands[1], Horizontal,
		Ratio(1, TileCount),
		Ratio(1, TileCount),
		Ratio(1, TileCount),
		Ratio(1, TileCount),
	)

	regions := Regions{
		Frame:   frame,
		Title:   bands[0],
		Summary: bands[1],
		Chart:   bands[2],
	}
	copy(regions.Tiles[:], tiles)
	return regions
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
