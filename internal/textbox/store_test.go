package textbox

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterpad/internal/geometry"
)

var a4 = FixedPage{Width: 794, Height: 1123}

func TestAddDefaults(t *testing.T) {
	s := NewStore(a4)
	id := s.Add(50, 50)

	box, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 50, Y: 50}, box.Position)
	assert.Equal(t, geometry.Size{Width: 200, Height: 100}, box.Size)
	assert.Equal(t, DefaultContent, box.Content)
	assert.Equal(t, DefaultStyle(), box.Style)

	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, id, sel)
}

func TestAddClampsToPage(t *testing.T) {
	s := NewStore(a4)
	box, _ := s.Get(s.Add(780, 1120))
	assert.Equal(t, geometry.Point{X: 594, Y: 1023}, box.Position)
}

func TestIDsAreUnique(t *testing.T) {
	s := NewStore(a4)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := s.Add(0, 0)
		assert.False(t, seen[id])
		seen[id] = true
		s.Remove(id)
	}
}

func TestResizeScenarios(t *testing.T) {
	s := NewStore(a4)
	id := s.Add(50, 50)

	s.Resize(id, geometry.SouthEast, geometry.Point{X: 1000, Y: 1000},
		geometry.Size{Width: 200, Height: 100}, geometry.Point{X: 50, Y: 50})
	box, _ := s.Get(id)
	assert.Equal(t, geometry.Size{Width: 744, Height: 1073}, box.Size)

	s.Resize(id, geometry.West, geometry.Point{X: 500},
		geometry.Size{Width: 200, Height: 100}, geometry.Point{X: 50, Y: 50})
	box, _ = s.Get(id)
	assert.Equal(t, geometry.Size{Width: 100, Height: 100}, box.Size)
	assert.Equal(t, geometry.Point{X: 150, Y: 50}, box.Position)
}

func TestMoveClamps(t *testing.T) {
	s := NewStore(a4)
	id := s.Add(0, 0)

	s.Move(id, geometry.Point{X: -30, Y: -30})
	box, _ := s.Get(id)
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, box.Position)

	s.Move(id, geometry.Point{X: 10000, Y: 10000})
	box, _ = s.Get(id)
	assert.Equal(t, geometry.Point{X: 594, Y: 1023}, box.Position)
}

func TestNudge(t *testing.T) {
	s := NewStore(a4)
	id := s.Add(100, 100)
	s.Nudge(id, -8, 16)
	box, _ := s.Get(id)
	assert.Equal(t, geometry.Point{X: 92, Y: 116}, box.Position)
}

func TestContainmentUnderRandomOperations(t *testing.T) {
	s := NewStore(a4)
	rng := rand.New(rand.NewSource(7))
	ids := []string{s.Add(10, 10), s.Add(400, 900), s.Add(700, 1100)}

	for i := 0; i < 2000; i++ {
		id := ids[rng.Intn(len(ids))]
		box, _ := s.Get(id)
		if rng.Intn(2) == 0 {
			s.Move(id, geometry.Point{X: rng.Float64()*2000 - 500, Y: rng.Float64()*2000 - 500})
		} else {
			dir := geometry.AllDirections[rng.Intn(len(geometry.AllDirections))]
			delta := geometry.Point{X: rng.Float64()*1600 - 800, Y: rng.Float64()*1600 - 800}
			s.Resize(id, dir, delta, box.Size, box.Position)
		}
	}

	for _, box := range s.Boxes() {
		assert.True(t, box.Rect().Within(geometry.Page(a4)), "%+v", box)
		assert.GreaterOrEqual(t, box.Size.Width, geometry.MinWidth)
		assert.GreaterOrEqual(t, box.Size.Height, geometry.MinHeight)
	}
}

func TestRemoveSelectionCoupling(t *testing.T) {
	s := NewStore(a4)
	first := s.Add(0, 0)
	second := s.Add(300, 300)

	s.Remove(first)
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, second, sel)

	s.Remove(second)
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestMissingIDIsNoop(t *testing.T) {
	s := NewStore(a4)
	id := s.Add(20, 20)
	before := s.Boxes()

	s.UpdateContent("missing", "x")
	s.UpdateStyle("missing", FontWeight, "bold")
	s.Move("missing", geometry.Point{X: 1, Y: 1})
	s.Resize("missing", geometry.East, geometry.Point{X: 10}, geometry.Size{Width: 200, Height: 100}, geometry.Point{})
	s.Remove("missing")
	s.Select("missing")

	assert.Equal(t, before, s.Boxes())
	sel, _ := s.Selected()
	assert.Equal(t, id, sel)
}

func TestSelectIdempotent(t *testing.T) {
	s := NewStore(a4)
	a := s.Add(0, 0)
	s.Add(300, 0)

	s.Select(a)
	s.Select(a)
	sel, _ := s.Selected()
	assert.Equal(t, a, sel)

	s.ClearSelection()
	_, ok := s.SelectedBox()
	assert.False(t, ok)
}

func TestUpdateContentAndStyle(t *testing.T) {
	s := NewStore(a4)
	id := s.Add(0, 0)

	s.UpdateContent(id, "Poster title\nsecond line")
	s.UpdateStyle(id, FontWeight, "bold")
	s.UpdateStyle(id, TextAlign, "center")
	s.UpdateStyle(id, StyleField(99), "ignored")

	box, _ := s.Get(id)
	assert.Equal(t, "Poster title\nsecond line", box.Content)
	assert.Equal(t, "bold", box.Style.FontWeight)
	assert.Equal(t, "center", box.Style.TextAlign)
}

func TestBoxAtPrefersTopmost(t *testing.T) {
	s := NewStore(a4)
	under := s.Add(0, 0)
	over := s.Add(100, 50)

	id, ok := s.BoxAt(geometry.Point{X: 150, Y: 75})
	require.True(t, ok)
	assert.Equal(t, over, id)

	id, ok = s.BoxAt(geometry.Point{X: 10, Y: 10})
	require.True(t, ok)
	assert.Equal(t, under, id)

	_, ok = s.BoxAt(geometry.Point{X: 700, Y: 1000})
	assert.False(t, ok)
}

type mutablePage struct{ page geometry.Page }

func (m *mutablePage) PageBounds() geometry.Page { return m.page }

func TestReclamp(t *testing.T) {
	bounds := &mutablePage{page: geometry.Page{Width: 794, Height: 1123}}
	s := NewStore(bounds)
	id := s.Add(500, 900)
	s.Resize(id, geometry.SouthEast, geometry.Point{X: 94, Y: 123},
		geometry.Size{Width: 200, Height: 100}, geometry.Point{X: 500, Y: 900})

	bounds.page = geometry.Page{Width: 559, Height: 794}
	box, _ := s.Get(id)
	assert.False(t, box.Rect().Within(bounds.page))

	s.Reclamp()
	box, _ = s.Get(id)
	assert.True(t, box.Rect().Within(bounds.page))
	assert.Equal(t, geometry.Size{Width: 294, Height: 223}, box.Size)
}
