// Package geometry holds the coordinate transforms and clamping rules shared by
// the page editor. Everything here is a pure function of its inputs.
package geometry

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinWidth      = 100.0
	MinHeight     = 50.0
	DefaultWidth  = 200.0
	DefaultHeight = 100.0

	DefaultZoom = 100
	MinZoom     = 50
	AltMinZoom  = 30
	MaxZoom     = 200
	ZoomStep    = 10
)

// ErrInvalidDirection is returned by ParseDirection for anything that is not
// one of the eight compass directions.
var ErrInvalidDirection = errors.New("invalid resize direction")

// Point is a position. Whether it is in screen or page space depends on the caller.
type Point struct {
	X, Y float64
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Scale divides both components by factor/100.
func (p Point) Scale(zoomFactor int) Point {
	s := float64(zoomFactor) / 100
	return Point{p.X / s, p.Y / s}
}

type Size struct {
	Width, Height float64
}

// MinSize is the smallest size a text box may take.
var MinSize = Size{Width: MinWidth, Height: MinHeight}

// Page is the printable area in page-space units.
type Page struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Pos  Point
	Size Size
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Pos.X && p.X <= r.Pos.X+r.Size.Width &&
		p.Y >= r.Pos.Y && p.Y <= r.Pos.Y+r.Size.Height
}

// Within reports whether r lies inside the page.
func (r Rect) Within(page Page) bool {
	return r.Pos.X >= 0 && r.Pos.Y >= 0 &&
		r.Pos.X+r.Size.Width <= page.Width &&
		r.Pos.Y+r.Size.Height <= page.Height
}

// Direction is a resize handle, a combination of at most one vertical and one
// horizontal compass bit.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West

	NorthEast = North | East
	NorthWest = North | West
	SouthEast = South | East
	SouthWest = South | West
)

// AllDirections lists the eight handles in drawing order.
var AllDirections = []Direction{NorthWest, North, NorthEast, East, SouthEast, South, SouthWest, West}

func (d Direction) Has(o Direction) bool { return d&o == o }

// Valid reports whether d is one of the eight compass directions.
func (d Direction) Valid() bool {
	if d == 0 || d.Has(North|South) || d.Has(East|West) {
		return false
	}
	return d&^(North|South|East|West) == 0
}

func (d Direction) String() string {
	var b strings.Builder
	if d.Has(North) {
		b.WriteByte('n')
	}
	if d.Has(South) {
		b.WriteByte('s')
	}
	if d.Has(East) {
		b.WriteByte('e')
	}
	if d.Has(West) {
		b.WriteByte('w')
	}
	return b.String()
}

// ParseDirection parses "n", "se", "NW" and so on.
func ParseDirection(s string) (Direction, error) {
	var d Direction
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		var bit Direction
		switch r {
		case 'n':
			bit = North
		case 's':
			bit = South
		case 'e':
			bit = East
		case 'w':
			bit = West
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
		}
		if d.Has(bit) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
		}
		d |= bit
	}
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// DirectionSet is the set of handles a policy allows.
type DirectionSet map[Direction]bool

func NewDirectionSet(dirs ...Direction) DirectionSet {
	set := make(DirectionSet, len(dirs))
	for _, d := range dirs {
		set[d] = true
	}
	return set
}

func (s DirectionSet) Contains(d Direction) bool { return s[d] }

// ToPageSpace converts a raw screen coordinate into page space: the container
// origin is subtracted, then the result is divided by zoomFactor/100.
// zoomFactor must be positive.
func ToPageSpace(rawX, rawY float64, containerOrigin Point, zoomFactor int) Point {
	return Point{rawX - containerOrigin.X, rawY - containerOrigin.Y}.Scale(zoomFactor)
}

// ToScreen is the display transform, the inverse of ToPageSpace.
func ToScreen(p Point, containerOrigin Point, zoomFactor int) Point {
	s := float64(zoomFactor) / 100
	return Point{p.X*s + containerOrigin.X, p.Y*s + containerOrigin.Y}
}

// ClampPosition keeps a box of the given size inside the page. A box larger
// than the page is pinned to 0 on that axis and overflows.
func ClampPosition(pos Point, size Size, page Page) Point {
	return Point{
		X: max(0, min(pos.X, page.Width-size.Width)),
		Y: max(0, min(pos.Y, page.Height-size.Height)),
	}
}

// ResizeEdge applies a resize gesture of delta, measured from the gesture
// snapshot (startSize, startPosition), for the handle dir. Each axis is handled
// independently. The result never goes below minSize (unless the snapshot was
// already below it) and never leaves the page.
//
// West and north handles work in both directions: dragging inward shrinks the
// box down to minSize, dragging outward grows it while the moved edge stays at
// or inside page 0. A shrink-only clamp of delta to [0, maxShrink] would make
// those handles unable to enlarge a box.
func ResizeEdge(dir Direction, startSize Size, startPosition Point, delta Point, page Page, minSize Size) (Size, Point) {
	size, pos := startSize, startPosition

	switch {
	case dir.Has(East):
		size.Width = clamp(startSize.Width+delta.X, minSize.Width, page.Width-startPosition.X)
	case dir.Has(West):
		dx := shrink(delta.X, startSize.Width-minSize.Width, startPosition.X)
		size.Width = startSize.Width - dx
		pos.X = startPosition.X + dx
	}

	switch {
	case dir.Has(South):
		size.Height = clamp(startSize.Height+delta.Y, minSize.Height, page.Height-startPosition.Y)
	case dir.Has(North):
		dy := shrink(delta.Y, startSize.Height-minSize.Height, startPosition.Y)
		size.Height = startSize.Height - dy
		pos.Y = startPosition.Y + dy
	}

	return size, pos
}

// shrink bounds the movement of a leading (west or north) edge. Positive d
// shrinks the box by at most maxShrink; negative d grows it until the edge hits
// page 0. A snapshot already under the minimum does not move at all.
func shrink(d, maxShrink, start float64) float64 {
	if maxShrink < 0 {
		return 0
	}
	return clamp(d, -start, maxShrink)
}

// ClampZoom bounds a zoom percentage.
func ClampZoom(z, lo, hi int) int {
	return max(lo, min(z, hi))
}

// clamp prefers lo when the range is empty.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
