// Package mutation is the single surface through which the project aggregate
// is read and changed. Every function takes the current snapshot, returns
// the next one, and never partially applies: on error (and on absorbed
// locked-entity writes) the input snapshot is returned untouched.
package mutation

import (
	"time"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/hierarchy"
	"github.com/protoboard/protoboard-backend/internal/project/interaction"
)

// ElementPatch carries the updatable fields of an element. Nil fields are
// left unchanged. Props entries with a nil value delete the key; style
// fields are merged pointer-wise. A non-nil Interactions replaces the list
// wholesale; triggers must be unique and navigate payloads must reference
// live screens.
// Changing ParentID goes through the hierarchy engine, so the usual
// reparent validation applies.
type ElementPatch struct {
	Name         *string              `json:"name,omitempty"`
	X            *float64             `json:"x,omitempty"`
	Y            *float64             `json:"y,omitempty"`
	Width        *float64             `json:"width,omitempty"`
	Height       *float64             `json:"height,omitempty"`
	ZIndex       *int                 `json:"zIndex,omitempty"`
	ParentID     *string              `json:"parentId,omitempty"`
	Hidden       *bool                `json:"hidden,omitempty"`
	Locked       *bool                `json:"locked,omitempty"`
	Props        map[string]any       `json:"props,omitempty"`
	Style        *domain.Style        `json:"style,omitempty"`
	Interactions []domain.Interaction `json:"interactions,omitempty"`
}

// ScreenPatch carries the updatable fields of a screen.
type ScreenPatch struct {
	Name       *string            `json:"name,omitempty"`
	Background *string            `json:"background,omitempty"`
	Width      *int               `json:"width,omitempty"`
	Height     *int               `json:"height,omitempty"`
	Grid       *domain.GridConfig `json:"grid,omitempty"`
	GroupID    *string            `json:"groupId,omitempty"`
	Hidden     *bool              `json:"hidden,omitempty"`
	Locked     *bool              `json:"locked,omitempty"`
}

// GroupPatch carries the updatable fields of a screen group.
type GroupPatch struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
	Hidden   *bool   `json:"hidden,omitempty"`
}

// ProjectPatch carries the updatable project-level settings.
type ProjectPatch struct {
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	ViewportWidth  *int               `json:"viewportWidth,omitempty"`
	ViewportHeight *int               `json:"viewportHeight,omitempty"`
	Grid           *domain.GridConfig `json:"grid,omitempty"`
}

// GetActiveScreen returns the screen the project is focused on.
func GetActiveScreen(p *domain.Project) (*domain.Screen, bool) {
	s := p.ActiveScreen()
	if s == nil {
		return nil, false
	}
	return s, true
}

// SetActiveScreen repoints the active screen.
func SetActiveScreen(p *domain.Project, screenID string) (*domain.Project, error) {
	if p.FindScreen(screenID) == nil {
		return p, domain.ErrScreenNotFound
	}
	next := p.Clone()
	next.ActiveScreenID = screenID
	touch(next)
	return next, nil
}

// UpdateProject applies project-level settings.
func UpdateProject(p *domain.Project, patch ProjectPatch) (*domain.Project, error) {
	next := p.Clone()
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.ViewportWidth != nil {
		next.ViewportWidth = *patch.ViewportWidth
	}
	if patch.ViewportHeight != nil {
		next.ViewportHeight = *patch.ViewportHeight
	}
	if patch.Grid != nil {
		next.Grid = *patch.Grid
	}
	touch(next)
	return next, nil
}

// UpdateElement patches an element. Writes against a locked screen or a
// locked element are absorbed: the snapshot comes back unchanged with no
// error, matching the "locked items can't be edited" policy. The only patch
// a locked element accepts is the one that unlocks it.
func UpdateElement(p *domain.Project, screenID, elementID string, patch ElementPatch) (*domain.Project, error) {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return p, domain.ErrScreenNotFound
	}
	elem := screen.FindElement(elementID)
	if elem == nil {
		return p, domain.ErrElementNotFound
	}
	if screen.Locked {
		return p, nil
	}
	if elem.Locked {
		if patch.Locked == nil || *patch.Locked {
			return p, nil
		}
		next := p.Clone()
		next.FindScreen(screenID).FindElement(elementID).Locked = false
		touch(next)
		return next, nil
	}

	next := p.Clone()
	if patch.ParentID != nil {
		if err := hierarchy.ReparentElement(next, screenID, elementID, *patch.ParentID); err != nil {
			return p, err
		}
	}
	e := next.FindScreen(screenID).FindElement(elementID)
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.X != nil {
		e.X = *patch.X
	}
	if patch.Y != nil {
		e.Y = *patch.Y
	}
	if patch.Width != nil {
		e.Width = *patch.Width
	}
	if patch.Height != nil {
		e.Height = *patch.Height
	}
	if patch.ZIndex != nil {
		e.ZIndex = *patch.ZIndex
	}
	if patch.Hidden != nil {
		e.Hidden = *patch.Hidden
	}
	if patch.Locked != nil {
		e.Locked = *patch.Locked
	}
	if patch.Props != nil {
		if e.Props == nil {
			e.Props = make(map[string]any, len(patch.Props))
		}
		for k, v := range patch.Props {
			if v == nil {
				delete(e.Props, k)
			} else {
				e.Props[k] = v
			}
		}
	}
	if patch.Style != nil {
		mergeStyle(&e.Style, patch.Style)
	}
	if patch.Interactions != nil {
		if err := interaction.Validate(next, patch.Interactions); err != nil {
			return p, err
		}
		e.Interactions = append([]domain.Interaction(nil), patch.Interactions...)
	}
	touch(next)
	return next, nil
}

// UpdateScreen patches a screen. A locked screen only accepts the patch
// that unlocks it. Changing GroupID goes through the hierarchy engine so
// the usual reparent validation applies.
func UpdateScreen(p *domain.Project, screenID string, patch ScreenPatch) (*domain.Project, error) {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return p, domain.ErrScreenNotFound
	}
	if screen.Locked {
		if patch.Locked == nil || *patch.Locked {
			return p, nil
		}
		next := p.Clone()
		next.FindScreen(screenID).Locked = false
		touch(next)
		return next, nil
	}

	next := p.Clone()
	s := next.FindScreen(screenID)
	if patch.GroupID != nil {
		if err := reparentScreen(next, screenID, *patch.GroupID); err != nil {
			return p, err
		}
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Background != nil {
		s.Background = *patch.Background
	}
	if patch.Width != nil {
		s.Width = *patch.Width
	}
	if patch.Height != nil {
		s.Height = *patch.Height
	}
	if patch.Grid != nil {
		s.Grid = *patch.Grid
	}
	if patch.Hidden != nil {
		s.Hidden = *patch.Hidden
	}
	if patch.Locked != nil {
		s.Locked = *patch.Locked
	}
	touch(next)
	return next, nil
}

// UpdateScreenGroup patches a group. Changing ParentID goes through the
// hierarchy engine, so nesting a group under its own descendant is rejected.
func UpdateScreenGroup(p *domain.Project, groupID string, patch GroupPatch) (*domain.Project, error) {
	if p.FindScreenGroup(groupID) == nil {
		return p, domain.ErrGroupNotFound
	}
	next := p.Clone()
	if patch.ParentID != nil {
		if err := reparentScreenGroup(next, groupID, *patch.ParentID); err != nil {
			return p, err
		}
	}
	g := next.FindScreenGroup(groupID)
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.Hidden != nil {
		g.Hidden = *patch.Hidden
	}
	touch(next)
	return next, nil
}

func mergeStyle(dst *domain.Style, src *domain.Style) {
	if src.Color != nil {
		dst.Color = src.Color
	}
	if src.Background != nil {
		dst.Background = src.Background
	}
	if src.BorderColor != nil {
		dst.BorderColor = src.BorderColor
	}
	if src.BorderWidth != nil {
		dst.BorderWidth = src.BorderWidth
	}
	if src.BorderRadius != nil {
		dst.BorderRadius = src.BorderRadius
	}
	if src.FontSize != nil {
		dst.FontSize = src.FontSize
	}
	if src.FontWeight != nil {
		dst.FontWeight = src.FontWeight
	}
	if src.Opacity != nil {
		dst.Opacity = src.Opacity
	}
}

func touch(p *domain.Project) {
	p.UpdatedAt = time.Now().UTC()
}
