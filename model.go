package main

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"posterpad/internal/geometry"
	"posterpad/internal/interaction"
	"posterpad/internal/surface"
	"posterpad/internal/textbox"
	"posterpad/internal/toolbar"
)

type model struct {
	width      int
	height     int
	mode       Mode
	help       bool
	helpScroll int

	surface    *surface.Surface
	store      *textbox.Store
	controller *interaction.Controller
	toolbar    *toolbar.Bindings

	// pointerDown is set between a left press on the canvas and its release.
	pointerDown bool

	editText      []rune
	editCursorPos int
	filename      string
	styleInput    string

	confirmAction  ConfirmAction
	confirmBoxID   string
	errorMessage   string
	successMessage string

	config *Config
	logger *slog.Logger

	readClipboard  func() (string, error)
	writeClipboard func(string) error
}

// newModel wires the page, store, gesture controller and toolbar together.
func newModel(config *Config, logger *slog.Logger) (model, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	presets, err := config.Presets()
	if err != nil {
		return model{}, err
	}
	policy, err := config.InteractionPolicy()
	if err != nil {
		return model{}, err
	}
	surf, err := surface.New(presets, config.Preset, policy)
	if err != nil {
		return model{}, err
	}
	surf.SetZoom(config.Zoom)
	surf.SetContainerOrigin(geometry.Point{X: originCellX * charWidth, Y: originCellY * charHeight})

	store := textbox.NewStore(surf)
	return model{
		mode:           ModeNormal,
		surface:        surf,
		store:          store,
		controller:     interaction.NewController(store, surf, policy),
		toolbar:        toolbar.New(store),
		config:         config,
		logger:         logger,
		readClipboard:  readClipboardText,
		writeClipboard: writeClipboardText,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

// canvasRows is the number of terminal rows the page is drawn on. The last
// row is the status line.
func (m *model) canvasRows() int {
	return max(1, m.height-1)
}

// rawPoint converts a terminal cell to screen pixels at the cell's center.
func rawPoint(cellX, cellY int) geometry.Point {
	return geometry.Point{
		X: (float64(cellX) + 0.5) * charWidth,
		Y: (float64(cellY) + 0.5) * charHeight,
	}
}

func (m *model) handleTolerance() geometry.Size {
	return geometry.Size{Width: charWidth, Height: charHeight}
}

func (m *model) hitTest(raw geometry.Point) interaction.Target {
	return m.surface.HitTest(m.store, raw, m.handleTolerance(), m.controller.Policy().ResizeDirections)
}

// viewCenter is the page-space point at the middle of the visible canvas.
func (m *model) viewCenter() geometry.Point {
	raw := geometry.Point{
		X: float64(m.width) * charWidth / 2,
		Y: float64(m.canvasRows()) * charHeight / 2,
	}
	return m.surface.ToPageSpace(raw)
}

// addBoxAtCenter adds a box centered on the visible canvas.
func (m *model) addBoxAtCenter() string {
	c := m.viewCenter()
	id := m.store.Add(c.X-geometry.DefaultWidth/2, c.Y-geometry.DefaultHeight/2)
	m.logger.Debug("box added", "id", id)
	return id
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}
