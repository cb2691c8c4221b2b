package mutation

import (
	"fmt"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/hierarchy"
)

const duplicateOffset = 16

// AddElement places a new element of the given type on a screen, painted on
// top of everything already there.
func AddElement(p *domain.Project, screenID, elemType string, x, y float64) (*domain.Project, string, error) {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return p, "", domain.ErrScreenNotFound
	}
	if screen.Locked {
		return p, "", nil
	}
	elem, err := domain.NewElement(elemType, x, y)
	if err != nil {
		return p, "", err
	}
	next := p.Clone()
	s := next.FindScreen(screenID)
	elem.ZIndex = s.MaxZIndex() + 1
	s.Elements = append(s.Elements, elem)
	touch(next)
	return next, elem.ID, nil
}

// DuplicateElement copies an element (fresh ids, including interaction ids)
// with a small offset, painted above the current maximum.
func DuplicateElement(p *domain.Project, screenID, elementID string) (*domain.Project, string, error) {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return p, "", domain.ErrScreenNotFound
	}
	src := screen.FindElement(elementID)
	if src == nil {
		return p, "", domain.ErrElementNotFound
	}
	if screen.Locked {
		return p, "", nil
	}

	next := p.Clone()
	s := next.FindScreen(screenID)
	dup := s.FindElement(elementID).Clone()
	dup.ID = domain.NewID()
	dup.Name = fmt.Sprintf("%s copy", src.Name)
	dup.X += duplicateOffset
	dup.Y += duplicateOffset
	dup.ZIndex = s.MaxZIndex() + 1
	for i := range dup.Interactions {
		dup.Interactions[i].ID = domain.NewID()
	}
	s.Elements = append(s.Elements, dup)
	touch(next)
	return next, dup.ID, nil
}

// GroupElements wraps the selection in a fresh container element and returns
// its id as the sole resulting selection.
func GroupElements(p *domain.Project, screenID string, elementIDs []string) (*domain.Project, string, error) {
	next := p.Clone()
	containerID, err := hierarchy.GroupElements(next, screenID, elementIDs)
	if err != nil {
		return p, "", err
	}
	touch(next)
	return next, containerID, nil
}

// DeleteElements removes the given elements, promoting their children to the
// nearest surviving ancestor.
func DeleteElements(p *domain.Project, screenID string, elementIDs []string) (*domain.Project, error) {
	next := p.Clone()
	if err := hierarchy.DeleteElements(next, screenID, elementIDs); err != nil {
		return p, err
	}
	touch(next)
	return next, nil
}

// MoveElementsToRoot promotes the given elements to the screen root.
func MoveElementsToRoot(p *domain.Project, screenID string, elementIDs []string) (*domain.Project, error) {
	next := p.Clone()
	if err := hierarchy.MoveElementsToRoot(next, screenID, elementIDs); err != nil {
		return p, err
	}
	touch(next)
	return next, nil
}

// ReparentElement moves an element under a new parent on the same screen.
func ReparentElement(p *domain.Project, screenID, elementID, newParentID string) (*domain.Project, error) {
	next := p.Clone()
	if err := hierarchy.ReparentElement(next, screenID, elementID, newParentID); err != nil {
		return p, err
	}
	touch(next)
	return next, nil
}
