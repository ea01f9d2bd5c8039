package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeFileInput
	ModeStyleInput
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmDeleteBox ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

// A terminal cell stands for this many screen pixels.
const (
	charWidth  = 8
	charHeight = 16
)

const (
	panCells  = 4  // cells scrolled per arrow key
	nudgeStep = 10 // page units moved per nudge key
)

// Page origin on screen, in cells, before any panning.
const (
	originCellX = 2
	originCellY = 1
)

const (
	borderSelected = '#'
	borderCorner   = '+'
	borderH        = '-'
	borderV        = '|'
	handleRune     = 'o'
)
