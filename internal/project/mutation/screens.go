package mutation

import (
	"fmt"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/hierarchy"
	"github.com/protoboard/protoboard-backend/internal/project/interaction"
)

// AddScreen appends a new screen inheriting the project's default viewport
// and grid, optionally inside a group.
func AddScreen(p *domain.Project, name, groupID string) (*domain.Project, string, error) {
	if groupID != "" && p.FindScreenGroup(groupID) == nil {
		return p, "", domain.ErrGroupNotFound
	}
	if name == "" {
		name = fmt.Sprintf("Screen %d", len(p.Screens)+1)
	}
	next := p.Clone()
	screen := domain.NewScreen(name, next.ViewportWidth, next.ViewportHeight, next.Grid)
	screen.GroupID = groupID
	next.Screens = append(next.Screens, screen)
	touch(next)
	return next, screen.ID, nil
}

// DuplicateScreen copies a screen with fresh screen and element ids, placed
// directly after the original in the same group.
func DuplicateScreen(p *domain.Project, screenID string) (*domain.Project, string, error) {
	src := p.FindScreen(screenID)
	if src == nil {
		return p, "", domain.ErrScreenNotFound
	}
	next := p.Clone()
	dup := next.FindScreen(screenID).Clone()
	dup.ID = domain.NewID()
	dup.Name = fmt.Sprintf("Copy of %s", src.Name)
	// Element ids must be fresh; parent references are remapped alongside.
	remap := make(map[string]string, len(dup.Elements))
	for i := range dup.Elements {
		fresh := domain.NewID()
		remap[dup.Elements[i].ID] = fresh
		dup.Elements[i].ID = fresh
	}
	for i := range dup.Elements {
		if mapped, ok := remap[dup.Elements[i].ParentID]; ok {
			dup.Elements[i].ParentID = mapped
		}
		for j := range dup.Elements[i].Interactions {
			dup.Elements[i].Interactions[j].ID = domain.NewID()
		}
	}

	for i := range next.Screens {
		if next.Screens[i].ID == screenID {
			next.Screens = append(next.Screens[:i+1], append([]domain.Screen{dup}, next.Screens[i+1:]...)...)
			break
		}
	}
	touch(next)
	return next, dup.ID, nil
}

// AddScreenGroup creates an empty screen group, optionally nested.
func AddScreenGroup(p *domain.Project, name, parentID string) (*domain.Project, string, error) {
	if parentID != "" && p.FindScreenGroup(parentID) == nil {
		return p, "", domain.ErrGroupNotFound
	}
	if name == "" {
		name = "Group"
	}
	next := p.Clone()
	group := domain.ScreenGroup{ID: domain.NewID(), Name: name, ParentID: parentID}
	next.ScreenGroups = append(next.ScreenGroups, group)
	touch(next)
	return next, group.ID, nil
}

// GroupScreens wraps the selected sibling screens in a new group and returns
// its id.
func GroupScreens(p *domain.Project, name string, screenIDs []string) (*domain.Project, string, error) {
	next := p.Clone()
	groupID, err := hierarchy.GroupScreens(next, name, screenIDs)
	if err != nil {
		return p, "", err
	}
	touch(next)
	return next, groupID, nil
}

// DeleteScreens removes screens, keeps the project non-empty, repoints the
// active screen and clears navigate payloads left dangling by the deletion.
func DeleteScreens(p *domain.Project, screenIDs []string) (*domain.Project, error) {
	next := p.Clone()
	deleted, err := hierarchy.DeleteScreens(next, screenIDs)
	if err != nil {
		return p, err
	}
	interaction.ClearDanglingNavigations(next, deleted)
	touch(next)
	return next, nil
}

// DeleteScreenGroup removes a group, detaching (never deleting) its child
// screens and groups onto the group's own parent.
func DeleteScreenGroup(p *domain.Project, groupID string) (*domain.Project, error) {
	next := p.Clone()
	if err := hierarchy.DeleteScreenGroup(next, groupID); err != nil {
		return p, err
	}
	touch(next)
	return next, nil
}

// MoveScreensToRoot detaches the given screens from their groups.
func MoveScreensToRoot(p *domain.Project, screenIDs []string) (*domain.Project, error) {
	next := p.Clone()
	if err := hierarchy.MoveScreensToRoot(next, screenIDs); err != nil {
		return p, err
	}
	touch(next)
	return next, nil
}

// MoveGroupsToRoot promotes the given groups to the project root.
func MoveGroupsToRoot(p *domain.Project, groupIDs []string) (*domain.Project, error) {
	next := p.Clone()
	if err := hierarchy.MoveGroupsToRoot(next, groupIDs); err != nil {
		return p, err
	}
	touch(next)
	return next, nil
}

func reparentScreen(next *domain.Project, screenID, groupID string) error {
	return hierarchy.ReparentScreen(next, screenID, groupID)
}

func reparentScreenGroup(next *domain.Project, groupID, parentID string) error {
	return hierarchy.ReparentScreenGroup(next, groupID, parentID)
}
