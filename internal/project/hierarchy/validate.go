package hierarchy

import (
	"fmt"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

// Validate checks a whole project for structural consistency. It is used on
// import paths, where documents arrive from outside the mutation surface.
func Validate(p *domain.Project) error {
	if len(p.Screens) == 0 {
		return fmt.Errorf("%w: project has no screens", domain.ErrHierarchyViolation)
	}
	if p.FindScreen(p.ActiveScreenID) == nil {
		return fmt.Errorf("%w: activeScreenId references a missing screen", domain.ErrHierarchyViolation)
	}

	screenIDs := make(map[string]bool, len(p.Screens))
	for i := range p.Screens {
		if screenIDs[p.Screens[i].ID] {
			return fmt.Errorf("%w: duplicate screen id %s", domain.ErrHierarchyViolation, p.Screens[i].ID)
		}
		screenIDs[p.Screens[i].ID] = true
	}

	groupIDs := make(map[string]bool, len(p.ScreenGroups))
	for i := range p.ScreenGroups {
		if groupIDs[p.ScreenGroups[i].ID] {
			return fmt.Errorf("%w: duplicate group id %s", domain.ErrHierarchyViolation, p.ScreenGroups[i].ID)
		}
		groupIDs[p.ScreenGroups[i].ID] = true
	}

	for i := range p.Screens {
		s := &p.Screens[i]
		if s.GroupID != "" && !groupIDs[s.GroupID] {
			return fmt.Errorf("%w: screen %s references missing group", domain.ErrHierarchyViolation, s.ID)
		}
		if err := validateScreenElements(s); err != nil {
			return err
		}
	}

	for i := range p.ScreenGroups {
		g := &p.ScreenGroups[i]
		if g.ParentID != "" && !groupIDs[g.ParentID] {
			return fmt.Errorf("%w: group %s references missing parent", domain.ErrHierarchyViolation, g.ID)
		}
	}
	if cyc := findGroupCycle(p); cyc != "" {
		return fmt.Errorf("%w: group %s is its own ancestor", domain.ErrHierarchyViolation, cyc)
	}
	return nil
}

func validateScreenElements(s *domain.Screen) error {
	ids := make(map[string]bool, len(s.Elements))
	for i := range s.Elements {
		if ids[s.Elements[i].ID] {
			return fmt.Errorf("%w: duplicate element id %s on screen %s", domain.ErrHierarchyViolation, s.Elements[i].ID, s.ID)
		}
		ids[s.Elements[i].ID] = true
	}
	for i := range s.Elements {
		e := &s.Elements[i]
		if e.ParentID != "" && !ids[e.ParentID] {
			return fmt.Errorf("%w: element %s references missing parent", domain.ErrHierarchyViolation, e.ID)
		}
		triggers := make(map[string]bool, len(e.Interactions))
		for j := range e.Interactions {
			tr := e.Interactions[j].Trigger
			if triggers[tr] {
				return fmt.Errorf("%w: element %s", domain.ErrDuplicateTrigger, e.ID)
			}
			triggers[tr] = true
		}
	}
	// A parent chain that never terminates means a cycle among parent ids.
	for i := range s.Elements {
		visited := map[string]bool{}
		cur := s.Elements[i].ID
		for cur != "" {
			if visited[cur] {
				return fmt.Errorf("%w: element parent cycle on screen %s", domain.ErrHierarchyViolation, s.ID)
			}
			visited[cur] = true
			e := s.FindElement(cur)
			if e == nil {
				break
			}
			cur = e.ParentID
		}
	}
	return nil
}

func findGroupCycle(p *domain.Project) string {
	for i := range p.ScreenGroups {
		visited := map[string]bool{}
		cur := p.ScreenGroups[i].ID
		for cur != "" {
			if visited[cur] {
				return p.ScreenGroups[i].ID
			}
			visited[cur] = true
			g := p.FindScreenGroup(cur)
			if g == nil {
				break
			}
			cur = g.ParentID
		}
	}
	return ""
}
