package domain

// Clone returns a deep copy of the project. Mutations operate on a clone and
// publish it wholesale; a rejected mutation leaves the original untouched.
func (p *Project) Clone() *Project {
	next := *p
	next.Grid = p.Grid
	next.Screens = make([]Screen, len(p.Screens))
	for i := range p.Screens {
		next.Screens[i] = p.Screens[i].Clone()
	}
	if p.ScreenGroups != nil {
		next.ScreenGroups = make([]ScreenGroup, len(p.ScreenGroups))
		copy(next.ScreenGroups, p.ScreenGroups)
	}
	if p.Assets != nil {
		next.Assets = make([]Asset, len(p.Assets))
		copy(next.Assets, p.Assets)
	}
	return &next
}

// Clone returns a deep copy of the screen and its elements.
func (s Screen) Clone() Screen {
	next := s
	next.Elements = make([]CanvasElement, len(s.Elements))
	for i := range s.Elements {
		next.Elements[i] = s.Elements[i].Clone()
	}
	return next
}

// Clone returns a deep copy of the element, including props, style pointers
// and interactions.
func (e CanvasElement) Clone() CanvasElement {
	next := e
	if e.Props != nil {
		next.Props = cloneProps(e.Props)
	}
	next.Style = e.Style.Clone()
	if e.Interactions != nil {
		next.Interactions = make([]Interaction, len(e.Interactions))
		copy(next.Interactions, e.Interactions)
	}
	return next
}

// Clone copies the style so the optional pointers are not shared between
// snapshots.
func (st Style) Clone() Style {
	next := st
	next.Color = clonePtr(st.Color)
	next.Background = clonePtr(st.Background)
	next.BorderColor = clonePtr(st.BorderColor)
	next.BorderWidth = clonePtr(st.BorderWidth)
	next.BorderRadius = clonePtr(st.BorderRadius)
	next.FontSize = clonePtr(st.FontSize)
	next.FontWeight = clonePtr(st.FontWeight)
	next.Opacity = clonePtr(st.Opacity)
	return next
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneProps deep-copies a props bag. Values arriving from JSON are scalars,
// []any or map[string]any; anything else is copied by reference.
func cloneProps(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneProps(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	default:
		return v
	}
}
