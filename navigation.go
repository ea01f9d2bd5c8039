package main

// handlePan scrolls the view. The page moves opposite to the key so the view
// appears to travel in the key's direction.
func (m *model) handlePan(key string, speed int) {
	dx, dy := 0, 0
	switch key {
	case "h", "left":
		dx = panCells * speed
	case "l", "right":
		dx = -panCells * speed
	case "k", "up":
		dy = panCells * speed
	case "j", "down":
		dy = -panCells * speed
	}
	m.surface.Pan(float64(dx*charWidth), float64(dy*charHeight))
}

// handleNudge moves the selected box by whole nudge steps in page space.
func (m *model) handleNudge(key string, speed int) {
	id, ok := m.store.Selected()
	if !ok {
		return
	}
	step := float64(nudgeStep * speed)
	switch key {
	case "H", "shift+left":
		m.store.Nudge(id, -step, 0)
	case "L", "shift+right":
		m.store.Nudge(id, step, 0)
	case "K", "shift+up":
		m.store.Nudge(id, 0, -step)
	case "J", "shift+down":
		m.store.Nudge(id, 0, step)
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J":
		return 2
	default:
		return 1
	}
}
