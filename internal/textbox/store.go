// Package textbox owns the text boxes placed on a page and the current
// selection. The Store is the only writer of either.
package textbox

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"posterpad/internal/geometry"
)

const DefaultContent = "New text"

// TextBox is a rectangular region of text on the page. Position and size are in
// page space and do not depend on zoom.
type TextBox struct {
	ID       string
	Content  string
	Position geometry.Point
	Size     geometry.Size
	Style    Style
}

// Rect returns the box's bounding rectangle.
func (b TextBox) Rect() geometry.Rect {
	return geometry.Rect{Pos: b.Position, Size: b.Size}
}

// Bounds supplies the page the store clamps against.
type Bounds interface {
	PageBounds() geometry.Page
}

// FixedPage is a Bounds that never changes.
type FixedPage geometry.Page

func (p FixedPage) PageBounds() geometry.Page { return geometry.Page(p) }

// Store holds text boxes in arrival order plus the selected id.
// Operations on ids that do not exist are silent no-ops.
type Store struct {
	mu       sync.RWMutex
	bounds   Bounds
	boxes    []TextBox
	selected string
	newID    func() string
}

func NewStore(bounds Bounds) *Store {
	return &Store{
		bounds: bounds,
		boxes:  make([]TextBox, 0),
		newID:  uuid.NewString,
	}
}

func (s *Store) page() geometry.Page {
	return s.bounds.PageBounds()
}

func (s *Store) index(id string) int {
	for i := range s.boxes {
		if s.boxes[i].ID == id {
			return i
		}
	}
	return -1
}

// Add creates a box with default content, size and style at (x, y), clamped
// to the page, selects it and returns its id.
func (s *Store) Add(x, y float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := geometry.Size{Width: geometry.DefaultWidth, Height: geometry.DefaultHeight}
	box := TextBox{
		ID:       s.newID(),
		Content:  DefaultContent,
		Position: geometry.ClampPosition(geometry.Point{X: x, Y: y}, size, s.page()),
		Size:     size,
		Style:    DefaultStyle(),
	}
	s.boxes = append(s.boxes, box)
	s.selected = box.ID
	return box.ID
}

func (s *Store) UpdateContent(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i != -1 {
		s.boxes[i].Content = text
	}
}

// UpdateStyle sets one style field. Field names are validated by callers with
// ParseStyleField; an out-of-range field is ignored.
func (s *Store) UpdateStyle(id string, field StyleField, value string) {
	if !field.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i != -1 {
		s.boxes[i].Style = s.boxes[i].Style.With(field, value)
	}
}

// Move places a box at pos after clamping it into the page.
func (s *Store) Move(id string, pos geometry.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i != -1 {
		box := &s.boxes[i]
		box.Position = geometry.ClampPosition(pos, box.Size, s.page())
	}
}

// Nudge moves a box by a delta from where it currently is.
func (s *Store) Nudge(id string, dx, dy float64) {
	box, ok := s.Get(id)
	if !ok {
		return
	}
	s.Move(id, box.Position.Add(geometry.Point{X: dx, Y: dy}))
}

// Resize applies a resize gesture measured from the given snapshot.
func (s *Store) Resize(id string, dir geometry.Direction, delta geometry.Point, startSize geometry.Size, startPosition geometry.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i != -1 {
		box := &s.boxes[i]
		box.Size, box.Position = geometry.ResizeEdge(dir, startSize, startPosition, delta, s.page(), geometry.MinSize)
	}
}

// Remove deletes a box, clearing the selection if it pointed at it.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i == -1 {
		return
	}
	s.boxes = slices.Delete(s.boxes, i, i+1)
	if s.selected == id {
		s.selected = ""
	}
}

// Select marks id as selected. Selecting an id that does not exist is ignored.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(id) != -1 {
		s.selected = id
	}
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// Selected returns the selected id, if any.
func (s *Store) Selected() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected != ""
}

// SelectedBox returns a copy of the selected box.
func (s *Store) SelectedBox() (TextBox, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(s.selected); s.selected != "" && i != -1 {
		return s.boxes[i], true
	}
	return TextBox{}, false
}

func (s *Store) Get(id string) (TextBox, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i != -1 {
		return s.boxes[i], true
	}
	return TextBox{}, false
}

// Boxes returns a copy of all boxes in arrival order.
func (s *Store) Boxes() []TextBox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.boxes)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.boxes)
}

// BoxAt returns the id of the topmost box containing p, the one added last.
func (s *Store) BoxAt(p geometry.Point) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.boxes) - 1; i >= 0; i-- {
		if s.boxes[i].Rect().Contains(p) {
			return s.boxes[i].ID, true
		}
	}
	return "", false
}

// Reclamp pulls every box back inside the current page, shrinking it first
// when it is larger than the page. Nothing calls this on a page change unless
// the host asks for it.
func (s *Store) Reclamp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.page()
	for i := range s.boxes {
		box := &s.boxes[i]
		box.Size.Width = max(geometry.MinWidth, min(box.Size.Width, page.Width))
		box.Size.Height = max(geometry.MinHeight, min(box.Size.Height, page.Height))
		box.Position = geometry.ClampPosition(box.Position, box.Size, page)
	}
}
