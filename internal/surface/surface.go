// Package surface is the page the editor draws on: page size, zoom, where the
// page sits on screen, and hit testing of pointer positions.
package surface

import (
	"posterpad/internal/geometry"
	"posterpad/internal/interaction"
	"posterpad/internal/textbox"
)

// Surface holds the page dimensions and zoom. It implements
// textbox.Bounds and interaction.Viewport.
type Surface struct {
	presets Presets
	preset  Preset
	zoom    int
	zoomMin int
	zoomMax int
	step    int
	origin  geometry.Point
}

// New creates a surface for the named preset at the default zoom.
func New(presets Presets, presetName string, policy interaction.Policy) (*Surface, error) {
	p, err := presets.Lookup(presetName)
	if err != nil {
		return nil, err
	}
	return &Surface{
		presets: presets,
		preset:  p,
		zoom:    policy.ClampZoom(geometry.DefaultZoom),
		zoomMin: policy.ZoomMin,
		zoomMax: policy.ZoomMax,
		step:    geometry.ZoomStep,
	}, nil
}

func (s *Surface) PageBounds() geometry.Page { return s.preset.Page() }

func (s *Surface) Preset() Preset { return s.preset }

func (s *Surface) Presets() Presets { return s.presets }

// SetPreset switches the page size. Existing boxes are not touched and may now
// overflow the page.
func (s *Surface) SetPreset(name string) error {
	p, err := s.presets.Lookup(name)
	if err != nil {
		return err
	}
	s.preset = p
	return nil
}

// NextPreset cycles to the following preset in the table.
func (s *Surface) NextPreset() Preset {
	s.preset = s.presets.Next(s.preset.Name)
	return s.preset
}

func (s *Surface) ZoomFactor() int { return s.zoom }

// SetZoom clamps z into the zoom bounds and returns the value applied.
func (s *Surface) SetZoom(z int) int {
	s.zoom = geometry.ClampZoom(z, s.zoomMin, s.zoomMax)
	return s.zoom
}

func (s *Surface) ZoomIn() int  { return s.SetZoom(s.zoom + s.step) }
func (s *Surface) ZoomOut() int { return s.SetZoom(s.zoom - s.step) }

// ContainerOrigin is the screen position of the page's top-left corner.
func (s *Surface) ContainerOrigin() geometry.Point { return s.origin }

func (s *Surface) SetContainerOrigin(p geometry.Point) { s.origin = p }

// Pan shifts the page on screen.
func (s *Surface) Pan(dx, dy float64) {
	s.origin = s.origin.Add(geometry.Point{X: dx, Y: dy})
}

func (s *Surface) ToPageSpace(raw geometry.Point) geometry.Point {
	return geometry.ToPageSpace(raw.X, raw.Y, s.origin, s.zoom)
}

func (s *Surface) ToScreen(p geometry.Point) geometry.Point {
	return geometry.ToScreen(p, s.origin, s.zoom)
}

// ScreenRect is r under the display transform.
func (s *Surface) ScreenRect(r geometry.Rect) geometry.Rect {
	scale := float64(s.zoom) / 100
	return geometry.Rect{
		Pos:  s.ToScreen(r.Pos),
		Size: geometry.Size{Width: r.Size.Width * scale, Height: r.Size.Height * scale},
	}
}

// HandlePoint is the page-space position of a resize handle on r.
func HandlePoint(r geometry.Rect, dir geometry.Direction) geometry.Point {
	p := geometry.Point{X: r.Pos.X + r.Size.Width/2, Y: r.Pos.Y + r.Size.Height/2}
	if dir.Has(geometry.West) {
		p.X = r.Pos.X
	}
	if dir.Has(geometry.East) {
		p.X = r.Pos.X + r.Size.Width
	}
	if dir.Has(geometry.North) {
		p.Y = r.Pos.Y
	}
	if dir.Has(geometry.South) {
		p.Y = r.Pos.Y + r.Size.Height
	}
	return p
}

// HitTest resolves what a raw pointer position is over. Handles of the
// selected box win when the pointer is within tolerance screen units of
// them, then the topmost box body, else the background. Only handles in
// allowed are considered.
func (s *Surface) HitTest(store *textbox.Store, raw geometry.Point, tolerance geometry.Size, allowed geometry.DirectionSet) interaction.Target {
	if box, ok := store.SelectedBox(); ok {
		for _, dir := range geometry.AllDirections {
			if !allowed.Contains(dir) {
				continue
			}
			h := s.ToScreen(HandlePoint(box.Rect(), dir))
			if abs(raw.X-h.X) <= tolerance.Width && abs(raw.Y-h.Y) <= tolerance.Height {
				return interaction.Target{Kind: interaction.Handle, BoxID: box.ID, Direction: dir}
			}
		}
	}
	if id, ok := store.BoxAt(s.ToPageSpace(raw)); ok {
		return interaction.Target{Kind: interaction.Body, BoxID: id}
	}
	return interaction.Target{Kind: interaction.Background}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
