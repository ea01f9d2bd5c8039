package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"posterpad/internal/interaction"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		if m.mode != ModeNormal || m.help {
			if msg.Action == tea.MouseActionRelease && m.pointerDown {
				m.pointerLeave()
			}
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeEditing:
			return m.handleEditKey(msg)
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeStyleInput:
			return m.handleStyleInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
		next, cmd := m.handleNormalKey(msg)
		m = next.(model)
		// A key that opens a prompt or help ends any gesture in progress.
		if m.pointerDown && (m.mode != ModeNormal || m.help) {
			m.pointerLeave()
		}
		return m, cmd
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pointerPress(msg)
		case tea.MouseButtonWheelUp:
			if msg.Ctrl {
				m.surface.ZoomIn()
			} else {
				m.handlePan("up", 1)
			}
		case tea.MouseButtonWheelDown:
			if msg.Ctrl {
				m.surface.ZoomOut()
			} else {
				m.handlePan("down", 1)
			}
		}

	case tea.MouseActionMotion:
		if !m.pointerDown {
			return
		}
		if msg.Y >= m.canvasRows() || msg.X < 0 || (m.width > 0 && msg.X >= m.width) {
			m.pointerLeave()
			return
		}
		m.controller.PointerMove(rawPoint(msg.X, msg.Y))

	case tea.MouseActionRelease:
		if !m.pointerDown {
			return
		}
		m.pointerDown = false
		if m.controller.State() != interaction.Idle {
			m.logger.Debug("gesture ended", "state", m.controller.State())
		}
		m.controller.PointerUp()
	}
}

func (m *model) pointerPress(msg tea.MouseMsg) {
	if msg.Y >= m.canvasRows() {
		return
	}
	m.clearMessages()

	raw := rawPoint(msg.X, msg.Y)
	target := m.hitTest(raw)
	m.pointerDown = true

	if target.Kind == interaction.Background {
		if id, created := m.controller.Click(raw, target); created {
			m.logger.Debug("box added", "id", id)
		}
		return
	}

	mods := interaction.Modifiers{Shift: msg.Shift, Alt: msg.Alt, Ctrl: msg.Ctrl}
	if m.controller.PointerDown(raw, target, mods) {
		m.logger.Debug("gesture started", "state", m.controller.State(), "box", target.BoxID, "direction", target.Direction)
	}
}

func (m *model) pointerLeave() {
	m.pointerDown = false
	if m.controller.State() != interaction.Idle {
		m.logger.Debug("gesture abandoned", "state", m.controller.State())
	}
	m.controller.PointerLeave()
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.clearMessages()

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.config.Confirmations && m.store.Len() > 0 {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "+", "=":
		m.surface.ZoomIn()
	case "-", "_":
		m.surface.ZoomOut()
	case "left", "right", "up", "down", "h", "j", "k", "l":
		m.handlePan(key, m.getMoveSpeed(key))
	case "shift+left", "shift+right", "shift+up", "shift+down", "H", "J", "K", "L":
		m.handleNudge(key, m.getMoveSpeed(key))
	case "n":
		m.addBoxAtCenter()
	case "esc":
		m.store.ClearSelection()
	case "enter":
		if box, ok := m.store.SelectedBox(); ok {
			m.mode = ModeEditing
			m.editText = []rune(box.Content)
			m.editCursorPos = len(m.editText)
		}
	case "d", "delete", "backspace":
		id, ok := m.store.Selected()
		if !ok {
			break
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteBox
			m.confirmBoxID = id
			break
		}
		m.removeBox(id)
	case "b":
		m.toolbar.ToggleBold()
	case "i":
		m.toolbar.ToggleItalic()
	case "u":
		m.toolbar.ToggleUnderline()
	case "a":
		m.toolbar.CycleAlign()
	case "f":
		m.toolbar.CycleFontFamily()
	case "[":
		m.toolbar.StepFontSize(-1)
	case "]":
		m.toolbar.StepFontSize(1)
	case "B":
		m.toolbar.CycleBorderStyle()
	case "{":
		m.toolbar.StepBorderWidth(-1)
	case "}":
		m.toolbar.StepBorderWidth(1)
	case "p":
		m.cyclePreset()
	case "y":
		m.copySelected()
	case "P":
		m.pasteClipboard()
	case "s":
		m.mode = ModeFileInput
		m.filename = ""
	case ":":
		if _, ok := m.store.Selected(); ok {
			m.mode = ModeStyleInput
			m.styleInput = ""
		}
	}
	return m, nil
}

func (m *model) removeBox(id string) {
	m.store.Remove(id)
	m.logger.Debug("box removed", "id", id)
}

func (m *model) cyclePreset() {
	p := m.surface.NextPreset()
	if m.config.ReclampOnPreset {
		m.store.Reclamp()
	}
	m.successMessage = fmt.Sprintf("Page %s", p.Name)
	m.logger.Debug("preset changed", "preset", p.Name, "reclamp", m.config.ReclampOnPreset)
}

func (m *model) copySelected() {
	box, ok := m.store.SelectedBox()
	if !ok {
		return
	}
	if err := m.writeClipboard(box.Content); err != nil {
		m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.successMessage = "Copied"
}

// pasteClipboard replaces the selected box's content with the clipboard text,
// or adds a new box holding it when nothing is selected.
func (m *model) pasteClipboard() {
	text, err := m.readClipboard()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Paste failed: %v", err)
		return
	}
	text = cleanClipboardText(text)
	if text == "" {
		return
	}
	id, ok := m.store.Selected()
	if !ok {
		id = m.addBoxAtCenter()
	}
	m.store.UpdateContent(id, text)
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.editText = nil
		m.editCursorPos = 0
		return m, nil
	case tea.KeyCtrlS:
		if id, ok := m.store.Selected(); ok {
			m.store.UpdateContent(id, string(m.editText))
		}
		m.mode = ModeNormal
		m.editText = nil
		m.editCursorPos = 0
		return m, nil
	case tea.KeyLeft:
		if m.editCursorPos > 0 {
			m.editCursorPos--
		}
	case tea.KeyRight:
		if m.editCursorPos < len(m.editText) {
			m.editCursorPos++
		}
	case tea.KeyEnter:
		m.insertEditRunes([]rune{'\n'})
	case tea.KeyBackspace:
		if m.editCursorPos > 0 {
			m.editText = append(m.editText[:m.editCursorPos-1], m.editText[m.editCursorPos:]...)
			m.editCursorPos--
		}
	case tea.KeyDelete:
		if m.editCursorPos < len(m.editText) {
			m.editText = append(m.editText[:m.editCursorPos], m.editText[m.editCursorPos+1:]...)
		}
	case tea.KeySpace:
		m.insertEditRunes([]rune{' '})
	case tea.KeyRunes:
		m.insertEditRunes(msg.Runes)
	}
	return m, nil
}

func (m *model) insertEditRunes(r []rune) {
	text := make([]rune, 0, len(m.editText)+len(r))
	text = append(text, m.editText[:m.editCursorPos]...)
	text = append(text, r...)
	text = append(text, m.editText[m.editCursorPos:]...)
	m.editText = text
	m.editCursorPos += len(r)
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
	case tea.KeyEnter:
		if m.filename == "" {
			return m, nil
		}
		path := m.config.GetSavePath(withDefaultExt(m.filename))
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return m, nil
		}
		m.finishExport(path)
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.filename += " "
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

// handleStyleInputKey reads a "property=value" line and applies it to the
// selected box.
func (m model) handleStyleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.styleInput = ""
		m.errorMessage = ""
	case tea.KeyEnter:
		name, value, ok := strings.Cut(m.styleInput, "=")
		if !ok {
			m.errorMessage = "expected property=value"
			return m, nil
		}
		if err := m.toolbar.SetSelectedStyleByName(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.mode = ModeNormal
		m.styleInput = ""
		m.errorMessage = ""
	case tea.KeyBackspace:
		if r := []rune(m.styleInput); len(r) > 0 {
			m.styleInput = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.styleInput += " "
	case tea.KeyRunes:
		m.styleInput += string(msg.Runes)
	}
	return m, nil
}

func (m *model) finishExport(path string) {
	if err := m.exportDocument(path); err != nil {
		m.mode = ModeFileInput
		m.errorMessage = err.Error()
		m.logger.Debug("export failed", "path", path, "err", err)
		return
	}
	m.mode = ModeNormal
	m.filename = ""
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Exported %s", filepath.Base(path))
	m.logger.Debug("exported", "path", path)
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteBox:
			m.removeBox(m.confirmBoxID)
			m.mode = ModeNormal
		case ConfirmOverwriteFile:
			m.finishExport(m.config.GetSavePath(withDefaultExt(m.filename)))
		}
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
		} else {
			m.mode = ModeNormal
		}
	default:
		return m, nil
	}
	m.confirmBoxID = ""
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(0, len(helpLines)-max(1, m.height-1))
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}
