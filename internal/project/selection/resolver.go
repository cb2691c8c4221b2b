// Package selection decides which single action surface applies to the
// current selection. The surfaces are mutually exclusive, so precedence is
// expressed as a ranked predicate list evaluated top to bottom: for any
// selection exactly one branch matches. Elements outrank screens, which
// outrank groups.
package selection

// Selection is the current selection state. It is carried explicitly (not as
// ambient globals) so any combination can be constructed in tests.
type Selection struct {
	ElementIDs []string `json:"element_ids,omitempty"`
	ScreenIDs  []string `json:"screen_ids,omitempty"`
	GroupIDs   []string `json:"group_ids,omitempty"`
	// Context is the navigational context of the panels, e.g. "project"
	// when the project settings view is focused.
	Context string `json:"context,omitempty"`
}

// Surface identifies the action surface to present for a selection.
type Surface string

const (
	SurfaceBulkElements  Surface = "bulk_elements"
	SurfaceElement       Surface = "element"
	SurfaceBulkScreens   Surface = "bulk_screens"
	SurfaceScreen        Surface = "screen"
	SurfaceScreenGroup   Surface = "screen_group"
	SurfaceProject       Surface = "project"
	SurfaceActiveScreen  Surface = "active_screen"
	ContextProject               = "project"
)

type rule struct {
	surface Surface
	match   func(Selection) bool
}

// rules is the precedence order. Order matters; the first match wins.
var rules = []rule{
	{SurfaceBulkElements, func(s Selection) bool { return len(s.ElementIDs) >= 2 }},
	{SurfaceElement, func(s Selection) bool { return len(s.ElementIDs) == 1 }},
	{SurfaceBulkScreens, func(s Selection) bool { return len(s.ScreenIDs) >= 2 }},
	{SurfaceScreen, func(s Selection) bool { return len(s.ScreenIDs) == 1 }},
	{SurfaceScreenGroup, func(s Selection) bool { return len(s.GroupIDs) == 1 }},
	{SurfaceProject, func(s Selection) bool { return s.Context == ContextProject }},
}

// Resolve returns the single surface that applies to the selection. The
// fallback, when nothing is selected and the context is not the project, is
// the active screen's properties.
func Resolve(s Selection) Surface {
	for _, r := range rules {
		if r.match(s) {
			return r.surface
		}
	}
	return SurfaceActiveScreen
}

// Target returns the ids the resolved surface operates on.
func Target(s Selection) (Surface, []string) {
	surface := Resolve(s)
	switch surface {
	case SurfaceBulkElements, SurfaceElement:
		return surface, s.ElementIDs
	case SurfaceBulkScreens, SurfaceScreen:
		return surface, s.ScreenIDs
	case SurfaceScreenGroup:
		return surface, s.GroupIDs
	default:
		return surface, nil
	}
}

// BulkActions lists the bulk operations available on a surface. Grouping
// screens is deliberately absent from the bulk screen surface; it goes
// through the explicit group operation.
func BulkActions(surface Surface) []string {
	switch surface {
	case SurfaceBulkElements:
		return []string{"group", "delete", "export", "move_to_root"}
	case SurfaceBulkScreens:
		return []string{"delete", "export", "move_to_root"}
	default:
		return nil
	}
}
