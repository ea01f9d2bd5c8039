package interaction

import (
	"fmt"
	"strings"

	"posterpad/internal/geometry"
)

// EmptyClick decides what a click on bare canvas does.
type EmptyClick int

const (
	CreateOnEmptyClick EmptyClick = iota
	DeselectOnEmptyClick
)

func (e EmptyClick) String() string {
	if e == DeselectOnEmptyClick {
		return "deselect"
	}
	return "create"
}

// ParseEmptyClick accepts "create" or "deselect".
func ParseEmptyClick(s string) (EmptyClick, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create", "":
		return CreateOnEmptyClick, nil
	case "deselect":
		return DeselectOnEmptyClick, nil
	}
	return 0, fmt.Errorf("unknown empty-click behavior %q", s)
}

// Policy configures the editor's gesture rules.
type Policy struct {
	ResizeDirections geometry.DirectionSet
	ZoomMin          int
	ZoomMax          int
	EmptyClick       EmptyClick
	// DragModifier requires a modifier key to be held to start a drag.
	DragModifier bool
}

// DefaultPolicy allows all eight handles, zoom 50-200% and creates a box on a
// click on empty canvas.
func DefaultPolicy() Policy {
	return Policy{
		ResizeDirections: geometry.NewDirectionSet(geometry.AllDirections...),
		ZoomMin:          geometry.MinZoom,
		ZoomMax:          geometry.MaxZoom,
		EmptyClick:       CreateOnEmptyClick,
	}
}

// LegacyPolicy is the component editor's behavior: only the south-east handle,
// zoom down to 30%, empty clicks deselect and drags need a modifier.
func LegacyPolicy() Policy {
	return Policy{
		ResizeDirections: geometry.NewDirectionSet(geometry.SouthEast),
		ZoomMin:          geometry.AltMinZoom,
		ZoomMax:          geometry.MaxZoom,
		EmptyClick:       DeselectOnEmptyClick,
		DragModifier:     true,
	}
}

// PolicyByName returns "default" or "legacy".
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultPolicy(), nil
	case "legacy":
		return LegacyPolicy(), nil
	}
	return Policy{}, fmt.Errorf("unknown policy %q", name)
}

// ClampZoom bounds z to the policy's zoom range.
func (p Policy) ClampZoom(z int) int {
	return geometry.ClampZoom(z, p.ZoomMin, p.ZoomMax)
}
