package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterpad/internal/geometry"
	"posterpad/internal/interaction"
	"posterpad/internal/textbox"
)

func newTestModel(t *testing.T, configure ...func(*Config)) model {
	t.Helper()
	config := defaultConfig()
	config.Confirmations = false
	for _, f := range configure {
		f(config)
	}
	m, err := newModel(config, nil)
	require.NoError(t, err)
	return send(m, tea.WindowSizeMsg{Width: 160, Height: 50})
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func keys(s string) []tea.Msg {
	var out []tea.Msg
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func key(t tea.KeyType) tea.Msg { return tea.KeyMsg{Type: t} }

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func press(x, y int) tea.Msg   { return mouse(tea.MouseActionPress, x, y) }
func motion(x, y int) tea.Msg  { return mouse(tea.MouseActionMotion, x, y) }
func release(x, y int) tea.Msg { return mouse(tea.MouseActionRelease, x, y) }

// cellOf returns the terminal cell showing page point p.
func cellOf(m model, p geometry.Point) (int, int) {
	s := m.surface.ToScreen(p)
	return toCell(s.X, charWidth), toCell(s.Y, charHeight)
}

func selectedBox(t *testing.T, m model) textbox.TextBox {
	t.Helper()
	box, ok := m.store.SelectedBox()
	require.True(t, ok, "expected a selected box")
	return box
}

func TestClickOnEmptyPageCreatesBox(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))

	require.Equal(t, 1, m.store.Len())
	box := selectedBox(t, m)
	want := m.surface.ToPageSpace(rawPoint(12, 6))
	assert.Equal(t, want, box.Position)
	assert.Equal(t, geometry.Size{Width: 200, Height: 100}, box.Size)
	assert.Equal(t, textbox.DefaultContent, box.Content)
}

func TestDragMovesBoxByPointerOffset(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))
	start := selectedBox(t, m)

	m = send(m, press(20, 8))
	assert.Equal(t, interaction.Dragging, m.controller.State())

	m = send(m, motion(25, 9), motion(30, 10))
	box := selectedBox(t, m)
	assert.Equal(t, start.Position.X+10*charWidth, box.Position.X)
	assert.Equal(t, start.Position.Y+2*charHeight, box.Position.Y)
	assert.Equal(t, start.Size, box.Size)

	m = send(m, release(30, 10))
	assert.Equal(t, interaction.Idle, m.controller.State())
}

func TestDragIsClampedToPage(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))

	m = send(m, press(20, 8), motion(0, 0), release(0, 0))
	box := selectedBox(t, m)
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, box.Position)
	assert.True(t, box.Rect().Within(m.surface.PageBounds()))
}

func TestResizeFromSouthEastHandle(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))
	start := selectedBox(t, m)

	hx, hy := cellOf(m, geometry.Point{X: start.Position.X + start.Size.Width, Y: start.Position.Y + start.Size.Height})
	m = send(m, press(hx, hy))
	require.Equal(t, interaction.Resizing, m.controller.State())
	g, _ := m.controller.Gesture()
	assert.Equal(t, geometry.SouthEast, g.Direction)

	m = send(m, motion(hx+10, hy+3), release(hx+10, hy+3))
	box := selectedBox(t, m)
	assert.Equal(t, geometry.Size{Width: 280, Height: 148}, box.Size)
	assert.Equal(t, start.Position, box.Position)
}

func TestResizeDeltaIsScaledByZoom(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))
	m = send(m, keys("++++++++++")...)
	require.Equal(t, 200, m.surface.ZoomFactor())
	start := selectedBox(t, m)

	hx, hy := cellOf(m, geometry.Point{X: start.Position.X + start.Size.Width, Y: start.Position.Y + start.Size.Height})
	m = send(m, press(hx, hy), motion(hx+10, hy), release(hx+10, hy))

	box := selectedBox(t, m)
	assert.Equal(t, start.Size.Width+40, box.Size.Width)
	assert.Equal(t, start.Size.Height, box.Size.Height)
}

func TestResizeFromWestHandleMovesLeftEdge(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(30, 10), release(30, 10))
	start := selectedBox(t, m)

	hx, hy := cellOf(m, geometry.Point{X: start.Position.X, Y: start.Position.Y + start.Size.Height/2})
	m = send(m, press(hx, hy))
	g, ok := m.controller.Gesture()
	require.True(t, ok)
	require.Equal(t, geometry.West, g.Direction)

	m = send(m, motion(hx+5, hy), release(hx+5, hy))
	box := selectedBox(t, m)
	assert.Equal(t, start.Size.Width-40, box.Size.Width)
	assert.Equal(t, start.Position.X+40, box.Position.X)
	assert.InDelta(t, start.Position.X+start.Size.Width, box.Position.X+box.Size.Width, 1e-9)
}

func TestPointerLeavingCanvasEndsGesture(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))

	m = send(m, press(20, 8), motion(22, 8))
	moved := selectedBox(t, m).Position

	m = send(m, motion(22, m.height-1))
	assert.Equal(t, interaction.Idle, m.controller.State())

	m = send(m, motion(40, 20))
	assert.Equal(t, moved, selectedBox(t, m).Position)
}

func TestMotionWithoutPressDoesNothing(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))
	before := selectedBox(t, m)

	m = send(m, motion(40, 20))
	assert.Equal(t, before, selectedBox(t, m))
}

func TestClickOnBoxSelectsIt(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))
	first := selectedBox(t, m).ID
	m = send(m, press(60, 6), release(60, 6))
	require.Equal(t, 2, m.store.Len())
	assert.NotEqual(t, first, selectedBox(t, m).ID)

	m = send(m, press(14, 7), release(14, 7))
	assert.Equal(t, first, selectedBox(t, m).ID)
}

func TestLegacyPolicy(t *testing.T) {
	m := newTestModel(t, func(c *Config) { c.Policy = "legacy" })

	m = send(m, press(12, 6), release(12, 6))
	assert.Zero(t, m.store.Len(), "empty click deselects under legacy policy")

	m = send(m, key(tea.KeyEscape), keys("n")[0])
	box := selectedBox(t, m)
	bx, by := cellOf(m, box.Position.Add(geometry.Point{X: 40, Y: 40}))

	m = send(m, press(bx, by), motion(bx+5, by), release(bx+5, by))
	assert.Equal(t, box.Position, selectedBox(t, m).Position, "drag needs a modifier")

	alt := tea.MouseMsg{X: bx, Y: by, Alt: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m = send(m, alt, motion(bx+5, by), release(bx+5, by))
	assert.Equal(t, box.Position.X+5*charWidth, selectedBox(t, m).Position.X)

	for i := 0; i < 20; i++ {
		m = send(m, keys("-")...)
	}
	assert.Equal(t, geometry.AltMinZoom, m.surface.ZoomFactor())
}

func TestZoomKeysClamp(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("+")...)
	assert.Equal(t, 110, m.surface.ZoomFactor())
	m = send(m, keys("--")...)
	assert.Equal(t, 90, m.surface.ZoomFactor())
	m = send(m, keys(strings.Repeat("-", 20))...)
	assert.Equal(t, geometry.MinZoom, m.surface.ZoomFactor())
	m = send(m, keys(strings.Repeat("+", 30))...)
	assert.Equal(t, geometry.MaxZoom, m.surface.ZoomFactor())
}

func TestZoomDoesNotChangeBoxes(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))
	before := m.store.Boxes()
	m = send(m, keys("+++--")...)
	assert.Equal(t, before, m.store.Boxes())
}

func TestConfigZoomFloor(t *testing.T) {
	m := newTestModel(t, func(c *Config) { c.ZoomFloor = 70 })
	m = send(m, keys(strings.Repeat("-", 10))...)
	assert.Equal(t, 70, m.surface.ZoomFactor())
}

func TestPanMovesView(t *testing.T) {
	m := newTestModel(t)
	origin := m.surface.ContainerOrigin()
	m = send(m, key(tea.KeyLeft), keys("j")[0])
	assert.Equal(t, origin.Add(geometry.Point{X: panCells * charWidth, Y: -panCells * charHeight}), m.surface.ContainerOrigin())
}

func TestKeyboardBoxOperations(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("n")...)
	require.Equal(t, 1, m.store.Len())
	box := selectedBox(t, m)

	m = send(m, keys("L")...)
	assert.Equal(t, box.Position.X+2*nudgeStep, selectedBox(t, m).Position.X)
	m = send(m, key(tea.KeyShiftUp))
	assert.Equal(t, box.Position.Y-nudgeStep, selectedBox(t, m).Position.Y)

	m = send(m, keys("biua]]}B")...)
	s := selectedBox(t, m).Style
	assert.Equal(t, "bold", s.FontWeight)
	assert.Equal(t, "italic", s.FontStyle)
	assert.Equal(t, "underline", s.TextDecoration)
	assert.Equal(t, "center", s.TextAlign)
	assert.Equal(t, "18px", s.FontSize)
	assert.Equal(t, "2px", s.BorderWidth)
	assert.Equal(t, "solid", s.BorderStyle)

	m = send(m, key(tea.KeyEscape))
	_, ok := m.store.Selected()
	assert.False(t, ok)

	m = send(m, keys("b")...)
	assert.Equal(t, "bold", m.store.Boxes()[0].Style.FontWeight, "no selection, no change")
}

func TestDeleteWithConfirmation(t *testing.T) {
	m := newTestModel(t, func(c *Config) { c.Confirmations = true })
	m = send(m, keys("n")...)

	m = send(m, keys("d")...)
	assert.Equal(t, ModeConfirm, m.mode)
	m = send(m, keys("n")...)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 1, m.store.Len())

	m = send(m, keys("dy")...)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Zero(t, m.store.Len())
	_, ok := m.store.Selected()
	assert.False(t, ok)
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m := newTestModel(t, func(c *Config) { c.Confirmations = true })
	m = send(m, keys("n")...)

	m = send(m, keys("dx")...)
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, 1, m.store.Len())

	m = send(m, keys("y")...)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Zero(t, m.store.Len())
}

func TestPromptKeyEndsGesture(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("n")...)
	box := selectedBox(t, m)
	x, y := cellOf(m, geometry.Point{X: box.Position.X + 100, Y: box.Position.Y + 50})

	m = send(m, press(x, y))
	require.Equal(t, interaction.Dragging, m.controller.State())

	m = send(m, key(tea.KeyEnter))
	assert.Equal(t, ModeEditing, m.mode)
	assert.Equal(t, interaction.Idle, m.controller.State())
	assert.False(t, m.pointerDown)

	m = send(m, release(x, y), key(tea.KeyEscape))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "NORMAL", m.gestureLabel())
	assert.Equal(t, box.Position, selectedBox(t, m).Position)
}

func TestDeleteWithoutConfirmation(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("n")...)
	m = send(m, key(tea.KeyDelete))
	assert.Zero(t, m.store.Len())
}

func TestEditContent(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("n")...)
	m = send(m, key(tea.KeyEnter))
	require.Equal(t, ModeEditing, m.mode)

	for range textbox.DefaultContent {
		m = send(m, key(tea.KeyBackspace))
	}
	m = send(m, keys("Título")...)
	m = send(m, key(tea.KeyEnter), key(tea.KeySpace))
	m = send(m, keys("dos")...)
	m = send(m, key(tea.KeyLeft), key(tea.KeyLeft), key(tea.KeyLeft), key(tea.KeyDelete))
	m = send(m, key(tea.KeyCtrlS))

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "Título\n os", selectedBox(t, m).Content)
}

func TestEditCancelKeepsContent(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("n")...)
	m = send(m, key(tea.KeyEnter))
	m = send(m, keys("xyz")...)
	m = send(m, key(tea.KeyEscape))
	assert.Equal(t, textbox.DefaultContent, selectedBox(t, m).Content)
}

func TestClipboard(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error { copied = s; return nil }
	m.readClipboard = func() (string, error) { return "<html><body><p>Hello &amp; bye</p></body></html>", nil }

	m = send(m, keys("P")...)
	require.Equal(t, 1, m.store.Len())
	assert.Equal(t, "Hello & bye", selectedBox(t, m).Content)

	m = send(m, keys("y")...)
	assert.Equal(t, "Hello & bye", copied)
	assert.Equal(t, "Copied", m.successMessage)

	m.readClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	m = send(m, keys("P")...)
	assert.Contains(t, m.errorMessage, "no clipboard")
}

func TestExportPrompt(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, func(c *Config) { c.SaveDirectory = dir })
	m = send(m, keys("n")...)

	m = send(m, keys("s")...)
	require.Equal(t, ModeFileInput, m.mode)
	m = send(m, keys("poster.svg")...)
	m = send(m, key(tea.KeyEnter))
	assert.Equal(t, ModeNormal, m.mode)
	data, err := os.ReadFile(filepath.Join(dir, "poster.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	m = send(m, keys("s")...)
	m = send(m, keys("poster")...)
	m = send(m, key(tea.KeyEnter))
	data, err = os.ReadFile(filepath.Join(dir, "poster.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pageSize": "A4"`)

	m = send(m, keys("s")...)
	m = send(m, keys("poster.doc")...)
	m = send(m, key(tea.KeyEnter))
	assert.Equal(t, ModeFileInput, m.mode)
	assert.Contains(t, m.errorMessage, "unknown export format")
}

func TestExportHugeFontSize(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, func(c *Config) { c.SaveDirectory = dir })
	m = send(m, keys("n:font-size=6000px")...)
	m = send(m, key(tea.KeyEnter))
	require.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "6000px", selectedBox(t, m).Style.FontSize)

	m = send(m, keys("sbig.png")...)
	m = send(m, key(tea.KeyEnter))
	assert.Equal(t, ModeNormal, m.mode, m.errorMessage)
	assert.FileExists(t, filepath.Join(dir, "big.png"))
}

func TestExportOverwriteNeedsConfirmation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poster.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	m := newTestModel(t, func(c *Config) {
		c.SaveDirectory = dir
		c.Confirmations = true
	})
	m = send(m, keys("s")...)
	m = send(m, keys("poster.json")...)
	m = send(m, key(tea.KeyEnter))
	require.Equal(t, ModeConfirm, m.mode)

	m = send(m, keys("y")...)
	assert.Equal(t, ModeNormal, m.mode)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(data))
}

func TestPresetChangeLeavesBoxes(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("n")...)
	id := selectedBox(t, m).ID
	m.store.Move(id, geometry.Point{X: 1000, Y: 2000})
	before := selectedBox(t, m)
	require.Equal(t, geometry.Point{X: 594, Y: 1023}, before.Position)

	m = send(m, keys("p")...)
	assert.Equal(t, "A5", m.surface.Preset().Name)
	assert.Equal(t, before, selectedBox(t, m))
}

func TestPresetChangeReclampsWhenConfigured(t *testing.T) {
	m := newTestModel(t, func(c *Config) { c.ReclampOnPreset = true })
	m = send(m, keys("n")...)
	id := selectedBox(t, m).ID
	m.store.Move(id, geometry.Point{X: 1000, Y: 2000})

	m = send(m, keys("p")...)
	box := selectedBox(t, m)
	assert.Equal(t, geometry.Point{X: 359, Y: 694}, box.Position)
	assert.True(t, box.Rect().Within(m.surface.PageBounds()))
}

func TestStyleInput(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys(":")...)
	assert.Equal(t, ModeNormal, m.mode, "needs a selection")

	m = send(m, keys("n:")...)
	require.Equal(t, ModeStyleInput, m.mode)
	m = send(m, keys("font-size=24px")...)
	m = send(m, key(tea.KeyEnter))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "24px", selectedBox(t, m).Style.FontSize)

	m = send(m, keys(":colour=red")...)
	m = send(m, key(tea.KeyEnter))
	assert.Equal(t, ModeStyleInput, m.mode)
	assert.Contains(t, m.errorMessage, "unknown style field")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, func(c *Config) { c.Confirmations = true })
	_, cmd := m.Update(keys("q")[0])
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	m = send(m, keys("n")...)
	next, cmd := m.Update(keys("q")[0])
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, next.(model).mode)
}

func TestViewShowsSelectionAndStatus(t *testing.T) {
	m := newTestModel(t)
	m = send(m, press(12, 6), release(12, 6))
	m = send(m, key(tea.KeyEnter))
	m = send(m, key(tea.KeyCtrlS))

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, m.height)
	assert.Contains(t, view, string(borderSelected))
	assert.Contains(t, view, string(handleRune))
	assert.Contains(t, view, textbox.DefaultContent)
	assert.Contains(t, lines[len(lines)-1], "Zoom 100%")
	assert.Contains(t, lines[len(lines)-1], "A4")

	m = send(m, keys("?")...)
	assert.Contains(t, m.View(), "posterpad help")
	m = send(m, key(tea.KeyEscape))
	assert.False(t, m.help)
}
