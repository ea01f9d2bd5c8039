// Package interaction turns a stream of pointer events into drag and resize
// gestures on a textbox.Store.
package interaction

import (
	"posterpad/internal/geometry"
	"posterpad/internal/textbox"
)

// State is the gesture currently in progress.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// TargetKind says what a pointer landed on.
type TargetKind int

const (
	Background TargetKind = iota
	Body
	Handle
)

// Target is the result of hit testing a pointer position.
type Target struct {
	Kind      TargetKind
	BoxID     string
	Direction geometry.Direction
}

// Modifiers is the keyboard modifier state sent with a pointer event.
type Modifiers struct {
	Shift, Alt, Ctrl bool
}

func (m Modifiers) Any() bool { return m.Shift || m.Alt || m.Ctrl }

// Viewport maps raw pointer coordinates into page space.
type Viewport interface {
	ToPageSpace(raw geometry.Point) geometry.Point
	ZoomFactor() int
}

// Gesture is the snapshot taken when a gesture starts. Every update is
// computed from it, never from the box's current geometry.
type Gesture struct {
	BoxID string
	// Offset is the pointer position relative to the box's top-left corner,
	// in page space. Only set while dragging.
	Offset    geometry.Point
	Direction geometry.Direction
	Origin    geometry.Point
	StartSize geometry.Size
	StartPos  geometry.Point
}

// Controller is the drag/resize state machine. It is driven from a single
// goroutine; the Store it writes to serializes its own mutations.
type Controller struct {
	store    *textbox.Store
	viewport Viewport
	policy   Policy

	state   State
	gesture Gesture
}

func NewController(store *textbox.Store, viewport Viewport, policy Policy) *Controller {
	return &Controller{
		store:    store,
		viewport: viewport,
		policy:   policy,
	}
}

func (c *Controller) State() State { return c.state }

// Gesture returns the active gesture snapshot; ok is false when idle.
func (c *Controller) Gesture() (Gesture, bool) {
	return c.gesture, c.state != Idle
}

func (c *Controller) Policy() Policy { return c.policy }

// PointerDown starts a drag on a box body or a resize on a handle of the
// selected box. Anything else leaves the controller idle and reports false.
func (c *Controller) PointerDown(raw geometry.Point, target Target, mods Modifiers) bool {
	if c.state != Idle {
		c.end()
	}

	switch target.Kind {
	case Body:
		if c.policy.DragModifier && !mods.Any() {
			c.store.Select(target.BoxID)
			return false
		}
		return c.startDrag(raw, target.BoxID)
	case Handle:
		return c.startResize(raw, target.BoxID, target.Direction)
	}
	return false
}

func (c *Controller) startDrag(raw geometry.Point, id string) bool {
	box, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.store.Select(id)
	c.state = Dragging
	c.gesture = Gesture{
		BoxID:     id,
		Offset:    c.viewport.ToPageSpace(raw).Sub(box.Position),
		Origin:    raw,
		StartSize: box.Size,
		StartPos:  box.Position,
	}
	return true
}

func (c *Controller) startResize(raw geometry.Point, id string, dir geometry.Direction) bool {
	if !dir.Valid() || !c.policy.ResizeDirections.Contains(dir) {
		return false
	}
	if sel, ok := c.store.Selected(); !ok || sel != id {
		return false
	}
	box, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.state = Resizing
	c.gesture = Gesture{
		BoxID:     id,
		Direction: dir,
		Origin:    raw,
		StartSize: box.Size,
		StartPos:  box.Position,
	}
	return true
}

// PointerMove updates the active gesture. It reports whether the store was
// written to. A gesture whose box has been deleted is left alone until the
// pointer is released.
func (c *Controller) PointerMove(raw geometry.Point) bool {
	switch c.state {
	case Dragging:
		if _, ok := c.store.Get(c.gesture.BoxID); !ok {
			return false
		}
		pos := c.viewport.ToPageSpace(raw).Sub(c.gesture.Offset)
		c.store.Move(c.gesture.BoxID, pos)
		return true
	case Resizing:
		if _, ok := c.store.Get(c.gesture.BoxID); !ok {
			return false
		}
		delta := raw.Sub(c.gesture.Origin).Scale(c.viewport.ZoomFactor())
		c.store.Resize(c.gesture.BoxID, c.gesture.Direction, delta, c.gesture.StartSize, c.gesture.StartPos)
		return true
	}
	return false
}

// PointerUp ends any gesture without touching the store.
func (c *Controller) PointerUp() { c.end() }

// PointerLeave abandons the gesture when the pointer leaves the canvas. Every
// intermediate state is already valid, so nothing is rolled back.
func (c *Controller) PointerLeave() { c.end() }

func (c *Controller) end() {
	c.state = Idle
	c.gesture = Gesture{}
}

// Click handles a click that did not start a gesture. On bare canvas it
// either creates a box at the click position or clears the selection,
// depending on the policy. It returns the id of a created box.
func (c *Controller) Click(raw geometry.Point, target Target) (string, bool) {
	if c.state != Idle {
		return "", false
	}
	switch target.Kind {
	case Body, Handle:
		c.store.Select(target.BoxID)
		return "", false
	}
	if c.policy.EmptyClick == DeselectOnEmptyClick {
		c.store.ClearSelection()
		return "", false
	}
	p := c.viewport.ToPageSpace(raw)
	return c.store.Add(p.X, p.Y), true
}
