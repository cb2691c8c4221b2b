package domain

import (
	"fmt"
	"time"
)

const (
	DefaultViewportWidth  = 390
	DefaultViewportHeight = 844
	DefaultGridSize       = 8
	DefaultBackground     = "#ffffff"
	DefaultScreenName     = "Home"
)

// DefaultGrid is the grid configuration new projects start with.
func DefaultGrid() GridConfig {
	return GridConfig{Enabled: true, Size: DefaultGridSize, Snap: true}
}

// NewProject builds a project with a single empty "Home" screen so the
// zero-screens state never exists. ActiveScreenID points at that screen.
func NewProject(id, ownerID, name string) *Project {
	now := time.Now().UTC()
	home := NewScreen(DefaultScreenName, DefaultViewportWidth, DefaultViewportHeight, DefaultGrid())
	return &Project{
		ID:             id,
		OwnerID:        ownerID,
		Name:           name,
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		Grid:           DefaultGrid(),
		Screens:        []Screen{home},
		ActiveScreenID: home.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NewScreen builds an empty screen with a fresh id.
func NewScreen(name string, width, height int, grid GridConfig) Screen {
	return Screen{
		ID:         NewID(),
		Name:       name,
		Background: DefaultBackground,
		Width:      width,
		Height:     height,
		Grid:       grid,
		Elements:   []CanvasElement{},
	}
}

type elementDefaults struct {
	width  float64
	height float64
	props  map[string]any
}

var defaultsByType = map[string]elementDefaults{
	TypeText:     {160, 32, map[string]any{"text": "Text"}},
	TypeButton:   {120, 44, map[string]any{"label": "Button"}},
	TypeIcon:     {32, 32, map[string]any{"icon": "star"}},
	TypeImage:    {200, 150, map[string]any{"src": ""}},
	TypeVideo:    {320, 180, map[string]any{"src": ""}},
	TypeInput:    {240, 40, map[string]any{"placeholder": "Enter text"}},
	TypeTextarea: {240, 96, map[string]any{"placeholder": "Enter text"}},
	TypeCheckbox: {24, 24, map[string]any{"checked": false, "label": "Checkbox"}},
	TypeRadio:    {24, 24, map[string]any{"checked": false, "label": "Radio"}},
	TypeToggle:   {48, 28, map[string]any{"on": false}},
	TypeNavbar:   {390, 56, map[string]any{"title": "Navbar"}},
	TypeCard:     {280, 160, map[string]any{"title": "Card"}},
	TypeGroup:    {200, 200, nil},
}

// NewElement builds an element of the given type at (x, y) with per-type
// default size and props. The caller assigns the z-index.
func NewElement(elemType string, x, y float64) (CanvasElement, error) {
	d, ok := defaultsByType[elemType]
	if !ok {
		return CanvasElement{}, fmt.Errorf("unknown element type %q", elemType)
	}
	var props map[string]any
	if d.props != nil {
		props = make(map[string]any, len(d.props))
		for k, v := range d.props {
			props[k] = v
		}
	}
	return CanvasElement{
		ID:     NewID(),
		Type:   elemType,
		Name:   elemType,
		X:      x,
		Y:      y,
		Width:  d.width,
		Height: d.height,
		Props:  props,
	}, nil
}

// NewInteraction builds an interaction bound to the given trigger with the
// default action (navigate) and the supplied payload.
func NewInteraction(trigger, payload string) Interaction {
	return Interaction{
		ID:      NewID(),
		Trigger: trigger,
		Action:  ActionNavigate,
		Payload: payload,
	}
}
