package domain

import "time"

// Project is the root aggregate of a prototype: every screen, screen group,
// canvas element, interaction and asset lives inside it. It is intentionally
// storage-agnostic and used across repository, service and HTTP layers.
// Mutations never edit a Project in place across call sites; they clone,
// modify the clone and publish it wholesale (snapshot replacement).
type Project struct {
	ID             string        `json:"id"`
	OwnerID        string        `json:"owner_id,omitempty"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Temporary      bool          `json:"is_temporary"`
	ViewportWidth  int           `json:"viewportWidth"`
	ViewportHeight int           `json:"viewportHeight"`
	Grid           GridConfig    `json:"grid"`
	Screens        []Screen      `json:"screens"`
	ScreenGroups   []ScreenGroup `json:"screenGroups,omitempty"`
	Assets         []Asset       `json:"assets,omitempty"`
	ActiveScreenID string        `json:"activeScreenId"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Screen is one page/canvas of the prototype. Screens are referenced by id
// only; a screen belongs to at most one ScreenGroup via GroupID ("" = root).
type Screen struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Background string          `json:"background,omitempty"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Grid       GridConfig      `json:"grid"`
	GroupID    string          `json:"groupId,omitempty"`
	Locked     bool            `json:"locked"`
	Hidden     bool            `json:"hidden"`
	Elements   []CanvasElement `json:"elements"`
}

// ScreenGroup is a folder for organizing screens and nested groups.
// The parent/child graph over groups must stay acyclic.
type ScreenGroup struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
	Hidden   bool   `json:"hidden"`
}

// CanvasElement is a single placed object on a screen. ParentID, when set,
// references another element on the same screen (visual containment via a
// group-typed element) and must never create a cycle. ZIndex determines
// paint order; higher paints on top.
type CanvasElement struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Name         string         `json:"name"`
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	ZIndex       int            `json:"zIndex"`
	ParentID     string         `json:"parentId,omitempty"`
	Locked       bool           `json:"locked"`
	Hidden       bool           `json:"hidden"`
	Props        map[string]any `json:"props,omitempty"`
	Style        Style          `json:"style"`
	Interactions []Interaction  `json:"interactions,omitempty"`
}

// Interaction is one trigger/action binding on an element. The payload's
// meaning depends on the action: a screen id for navigate, free text for
// alert/url, unused for back. An element carries at most one interaction
// per trigger value.
type Interaction struct {
	ID      string `json:"id"`
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
	Payload string `json:"payload,omitempty"`
}

// Asset is an uploaded media reference owned by the project. The source is
// embedded by value (data URL), so any number of elements may reference it.
type Asset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Source string `json:"source"`
}

// GridConfig controls the canvas grid of a screen (or the project default
// inherited by new screens).
type GridConfig struct {
	Enabled bool `json:"enabled"`
	Size    int  `json:"size"`
	Snap    bool `json:"snap"`
}

// Style holds the visual overrides of an element. All fields are optional
// pointers so an absent value is distinguishable from a zero value.
type Style struct {
	Color        *string  `json:"color,omitempty"`
	Background   *string  `json:"background,omitempty"`
	BorderColor  *string  `json:"borderColor,omitempty"`
	BorderWidth  *int     `json:"borderWidth,omitempty"`
	BorderRadius *int     `json:"borderRadius,omitempty"`
	FontSize     *int     `json:"fontSize,omitempty"`
	FontWeight   *string  `json:"fontWeight,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
}

// ProjectSummary is the listing form kept in the index so project lists
// never load full documents.
type ProjectSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LastModified time.Time `json:"lastModified"`
	ScreenCount  int       `json:"screen_count"`
}

// Element type constants (closed set).
const (
	TypeText     = "text"
	TypeButton   = "button"
	TypeIcon     = "icon"
	TypeImage    = "image"
	TypeVideo    = "video"
	TypeInput    = "input"
	TypeTextarea = "textarea"
	TypeCheckbox = "checkbox"
	TypeRadio    = "radio"
	TypeToggle   = "toggle"
	TypeNavbar   = "navbar"
	TypeCard     = "card"
	TypeGroup    = "group"
)

// Interaction triggers and actions.
const (
	TriggerOnClick = "onClick"

	ActionNavigate = "navigate"
	ActionBack     = "back"
	ActionAlert    = "alert"
	ActionURL      = "url"
)

// Asset media kinds.
const (
	AssetImage = "image"
	AssetVideo = "video"
)

// ElementTypes lists every valid element type.
var ElementTypes = []string{
	TypeText, TypeButton, TypeIcon, TypeImage, TypeVideo, TypeInput,
	TypeTextarea, TypeCheckbox, TypeRadio, TypeToggle, TypeNavbar,
	TypeCard, TypeGroup,
}

// ValidElementType reports whether t is in the closed element type set.
func ValidElementType(t string) bool {
	for _, et := range ElementTypes {
		if et == t {
			return true
		}
	}
	return false
}

// ValidAction reports whether a is a known interaction action.
func ValidAction(a string) bool {
	switch a {
	case ActionNavigate, ActionBack, ActionAlert, ActionURL:
		return true
	}
	return false
}

// Summary derives the index entry for the project.
func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{
		ID:           p.ID,
		Name:         p.Name,
		LastModified: p.UpdatedAt,
		ScreenCount:  len(p.Screens),
	}
}

// FindScreen returns a pointer into p.Screens for the given id.
func (p *Project) FindScreen(id string) *Screen {
	for i := range p.Screens {
		if p.Screens[i].ID == id {
			return &p.Screens[i]
		}
	}
	return nil
}

// FindScreenGroup returns a pointer into p.ScreenGroups for the given id.
func (p *Project) FindScreenGroup(id string) *ScreenGroup {
	for i := range p.ScreenGroups {
		if p.ScreenGroups[i].ID == id {
			return &p.ScreenGroups[i]
		}
	}
	return nil
}

// ActiveScreen returns the screen referenced by ActiveScreenID, or nil if
// the reference is stale (which the hierarchy engine never allows to persist).
func (p *Project) ActiveScreen() *Screen {
	return p.FindScreen(p.ActiveScreenID)
}

// FindElement returns a pointer into s.Elements for the given id.
func (s *Screen) FindElement(id string) *CanvasElement {
	for i := range s.Elements {
		if s.Elements[i].ID == id {
			return &s.Elements[i]
		}
	}
	return nil
}

// MaxZIndex returns the highest z-index on the screen, or 0 when empty.
func (s *Screen) MaxZIndex() int {
	max := 0
	for i := range s.Elements {
		if s.Elements[i].ZIndex > max {
			max = s.Elements[i].ZIndex
		}
	}
	return max
}

// FindInteraction returns a pointer into e.Interactions for the given id.
func (e *CanvasElement) FindInteraction(id string) *Interaction {
	for i := range e.Interactions {
		if e.Interactions[i].ID == id {
			return &e.Interactions[i]
		}
	}
	return nil
}

// HasTrigger reports whether the element already carries an interaction for
// the given trigger value.
func (e *CanvasElement) HasTrigger(trigger string) bool {
	for i := range e.Interactions {
		if e.Interactions[i].Trigger == trigger {
			return true
		}
	}
	return false
}
