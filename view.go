package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"posterpad/internal/geometry"
	"posterpad/internal/interaction"
	"posterpad/internal/surface"
	"posterpad/internal/textbox"
)

var (
	statusStyle    = lipgloss.NewStyle().Reverse(true)
	modeStyle      = lipgloss.NewStyle().Bold(true)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	helpKeyStyle   = lipgloss.NewStyle().Bold(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	width := max(1, m.width)
	lines := m.renderCanvas(width, m.canvasRows())

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(statusStyle.MaxWidth(width).Render(m.statusLine()))
	return result.String()
}

// grid is the character canvas. A zero rune marks the cell covered by the
// right half of a wide rune.
type grid [][]rune

func newGrid(width, height int) grid {
	g := make(grid, height)
	for y := range g {
		g[y] = []rune(strings.Repeat(" ", width))
	}
	return g
}

func (g grid) valid(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

func (g grid) set(x, y int, r rune) {
	if g.valid(x, y) {
		g[y][x] = r
	}
}

// text writes s from column x, stopping before column limit.
func (g grid) text(x, y, limit int, s string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		g.set(x, y, r)
		if w == 2 {
			g.set(x+1, y, 0)
		}
		x += w
	}
}

func (g grid) lines() []string {
	out := make([]string, len(g))
	for y, row := range g {
		var b strings.Builder
		for _, r := range row {
			if r != 0 {
				b.WriteRune(r)
			}
		}
		out[y] = b.String()
	}
	return out
}

// cellRect is a rectangle in terminal cells, corners inclusive.
type cellRect struct {
	x0, y0, x1, y1 int
}

func toCell(px float64, unit int) int {
	return int(math.Floor(px / float64(unit)))
}

func (m *model) screenCells(r geometry.Rect) cellRect {
	s := m.surface.ScreenRect(r)
	c := cellRect{
		x0: toCell(s.Pos.X, charWidth),
		y0: toCell(s.Pos.Y, charHeight),
	}
	c.x1 = max(c.x0+1, toCell(s.Pos.X+s.Size.Width, charWidth))
	c.y1 = max(c.y0+1, toCell(s.Pos.Y+s.Size.Height, charHeight))
	return c
}

func (g grid) frame(c cellRect, corners [4]rune, horizontal, vertical rune) {
	for x := c.x0 + 1; x < c.x1; x++ {
		g.set(x, c.y0, horizontal)
		g.set(x, c.y1, horizontal)
	}
	for y := c.y0 + 1; y < c.y1; y++ {
		g.set(c.x0, y, vertical)
		g.set(c.x1, y, vertical)
	}
	g.set(c.x0, c.y0, corners[0])
	g.set(c.x1, c.y0, corners[1])
	g.set(c.x0, c.y1, corners[2])
	g.set(c.x1, c.y1, corners[3])
}

func (g grid) fill(c cellRect) {
	for y := c.y0 + 1; y < c.y1; y++ {
		for x := c.x0 + 1; x < c.x1; x++ {
			g.set(x, y, ' ')
		}
	}
}

// renderCanvas draws the page outline, then every box in arrival order so
// later boxes cover earlier ones, then the handles of the selected box.
func (m model) renderCanvas(width, height int) []string {
	g := newGrid(width, height)

	page := m.surface.PageBounds()
	g.frame(m.screenCells(geometry.Rect{Size: geometry.Size{Width: page.Width, Height: page.Height}}),
		[4]rune{'┌', '┐', '└', '┘'}, '─', '│')

	selected, _ := m.store.Selected()
	for _, box := range m.store.Boxes() {
		c := m.screenCells(box.Rect())
		g.fill(c)
		if box.ID == selected {
			g.frame(c, [4]rune{borderSelected, borderSelected, borderSelected, borderSelected}, borderSelected, borderSelected)
		} else {
			g.frame(c, [4]rune{borderCorner, borderCorner, borderCorner, borderCorner}, borderH, borderV)
		}

		content := box.Content
		if m.mode == ModeEditing && box.ID == selected {
			content = string(m.editText)
		}
		g.boxText(c, content, box.Style.TextAlign)
	}

	if box, ok := m.store.SelectedBox(); ok {
		allowed := m.controller.Policy().ResizeDirections
		for _, dir := range geometry.AllDirections {
			if !allowed.Contains(dir) {
				continue
			}
			h := m.surface.ToScreen(surface.HandlePoint(box.Rect(), dir))
			g.set(toCell(h.X, charWidth), toCell(h.Y, charHeight), handleRune)
		}
	}

	return g.lines()
}

func (g grid) boxText(c cellRect, content, align string) {
	innerW := c.x1 - c.x0 - 1
	innerH := c.y1 - c.y0 - 1
	if innerW <= 0 || innerH <= 0 {
		return
	}
	for i, line := range wrapCells(content, innerW) {
		if i >= innerH {
			break
		}
		off := 0
		switch align {
		case "center":
			off = (innerW - runewidth.StringWidth(line)) / 2
		case "right":
			off = innerW - runewidth.StringWidth(line)
		}
		g.text(c.x0+1+max(0, off), c.y0+1+i, c.x1, line)
	}
}

// wrapCells word-wraps text to width terminal cells. Words wider than a line
// are split.
func wrapCells(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for runewidth.StringWidth(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					head = string([]rune(word)[:1])
				}
				lines = append(lines, head)
				word = word[len(head):]
			}
			switch {
			case word == "":
			case line == "":
				line = word
			case runewidth.StringWidth(line+" "+word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func withCursor(text []rune, pos int) string {
	display := []rune(strings.ReplaceAll(string(text), "\n", "⏎"))
	if pos >= len(display) {
		return string(display) + "█"
	}
	display[pos] = '█'
	return string(display)
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeEditing:
		return fmt.Sprintf("%s | Text: %s | ←/→=move cursor, Enter=newline, Ctrl+S=save, Esc=cancel",
			modeStyle.Render("Mode: EDIT"), withCursor(m.editText, m.editCursorPos))

	case ModeFileInput:
		status := fmt.Sprintf("%s | Export filename: %s█ | .json .png .svg .pdf | Enter=confirm, Esc=cancel",
			modeStyle.Render("Mode: FILE"), m.filename)
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return status

	case ModeStyleInput:
		status := fmt.Sprintf("%s | %s█ | e.g. font-size=24px, text-align=center | Enter=apply, Esc=cancel",
			modeStyle.Render("Mode: STYLE"), m.styleInput)
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return status

	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmDeleteBox:
			message = "Delete this box? (y/n)"
		case ConfirmQuit:
			message = "Quit posterpad? The page is not saved. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", withDefaultExt(m.filename))
		}
		return fmt.Sprintf("%s | %s", modeStyle.Render("Mode: CONFIRM"), message)
	}

	p := m.surface.Preset()
	parts := []string{
		modeStyle.Render("Mode: " + m.gestureLabel()),
		fmt.Sprintf("%s %gx%g", p.Name, p.Width, p.Height),
		fmt.Sprintf("Zoom %d%%", m.surface.ZoomFactor()),
	}
	if box, ok := m.store.SelectedBox(); ok {
		parts = append(parts, fmt.Sprintf("Box %s (%g,%g %gx%g) %s", shortID(box.ID),
			box.Position.X, box.Position.Y, box.Size.Width, box.Size.Height, styleSummary(box.Style)))
	}
	switch {
	case m.errorMessage != "":
		parts = append(parts, errorStyle.Render("ERROR: "+m.errorMessage))
	case m.successMessage != "":
		parts = append(parts, successStyle.Render(m.successMessage))
	default:
		parts = append(parts, "? for help | q to quit")
	}
	return strings.Join(parts, " | ")
}

func (m model) gestureLabel() string {
	g, ok := m.controller.Gesture()
	switch {
	case !ok:
		return "NORMAL"
	case m.controller.State() == interaction.Resizing:
		return "RESIZE " + strings.ToUpper(g.Direction.String())
	default:
		return "DRAG"
	}
}

func styleSummary(s textbox.Style) string {
	parts := []string{s.FontSize, s.FontFamily}
	if s.FontWeight != "normal" {
		parts = append(parts, s.FontWeight)
	}
	if s.FontStyle != "normal" {
		parts = append(parts, s.FontStyle)
	}
	if s.TextDecoration != "none" {
		parts = append(parts, s.TextDecoration)
	}
	parts = append(parts, s.TextAlign, s.BorderWidth+" "+s.BorderStyle)
	return strings.Join(parts, " ")
}

var helpLines = []string{
	"posterpad help",
	"",
	"Mouse:",
	"  click empty page      Add a text box (or deselect, per policy)",
	"  click box             Select it",
	"  drag box              Move it",
	"  drag o handle         Resize the selected box",
	"  wheel / ctrl+wheel    Scroll / zoom",
	"",
	"View:",
	"  h/j/k/l, arrows       Scroll the page",
	"  +/-                   Zoom in/out",
	"  p                     Next page preset",
	"",
	"Boxes:",
	"  n                     New box in the middle of the view",
	"  enter                 Edit the selected box's text (Ctrl+S saves)",
	"  H/J/K/L, shift+arrows Nudge the selected box",
	"  d/delete              Delete the selected box",
	"  esc                   Clear the selection",
	"  y / P                 Copy text / paste clipboard",
	"",
	"Style:",
	"  b i u                 Bold, italic, underline",
	"  a                     Cycle alignment",
	"  f                     Cycle font family",
	"  [ ]                   Font size down/up",
	"  B                     Cycle border style",
	"  { }                   Border width down/up",
	"  :                     Set a property, e.g. font-family=Georgia",
	"",
	"File:",
	"  s                     Export; .json, .png, .svg or .pdf by extension",
	"",
	"General:",
	"  ?                     Toggle this help",
	"  q/Ctrl+C              Quit",
}

func (m model) helpView() string {
	visibleHeight := max(1, m.height-1)
	start := min(m.helpScroll, max(0, len(helpLines)-visibleHeight))
	end := min(len(helpLines), start+visibleHeight)

	visible := make([]string, 0, end-start)
	for i, line := range helpLines[start:end] {
		switch {
		case start+i == 0:
			line = helpTitleStyle.Render(line)
		case strings.HasPrefix(line, "  "):
			key, desc := splitHelpLine(line)
			line = "  " + helpKeyStyle.Render(key) + desc
		}
		visible = append(visible, line)
	}

	status := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, any other key to close",
		start+1, end, len(helpLines))
	return strings.Join(visible, "\n") + "\n" + statusStyle.Render(status)
}

// splitHelpLine separates the key column of an indented help line from its
// description, keeping the padding with the description.
func splitHelpLine(line string) (string, string) {
	body := strings.TrimPrefix(line, "  ")
	if i := strings.Index(body, "  "); i > 0 {
		return body[:i], body[i:]
	}
	return body, ""
}
