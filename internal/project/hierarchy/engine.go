// Package hierarchy keeps the three containment relations of a project
// (element-in-element via parentId, screen-in-group, group-in-group)
// internally consistent: no dangling references, no cycles, no empty
// screen list. All functions mutate the given project in place; callers
// clone before calling so a returned error means nothing changed.
package hierarchy

import (
	"fmt"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

// ReparentElement moves an element under a new parent element on the same
// screen. An empty newParentID promotes it to the screen root. Position and
// z-index are untouched.
func ReparentElement(p *domain.Project, screenID, elementID, newParentID string) error {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return domain.ErrScreenNotFound
	}
	elem := screen.FindElement(elementID)
	if elem == nil {
		return domain.ErrElementNotFound
	}
	if newParentID == "" {
		elem.ParentID = ""
		return nil
	}
	if newParentID == elementID {
		return fmt.Errorf("%w: element cannot be its own parent", domain.ErrHierarchyViolation)
	}
	parent := screen.FindElement(newParentID)
	if parent == nil {
		return fmt.Errorf("%w: parent element not on the same screen", domain.ErrHierarchyViolation)
	}
	// Walk ancestors of the proposed parent; if the moved element is among
	// them the move would close a cycle.
	for _, anc := range elementAncestors(screen, newParentID) {
		if anc == elementID {
			return fmt.Errorf("%w: move would create a cycle", domain.ErrHierarchyViolation)
		}
	}
	elem.ParentID = newParentID
	return nil
}

// ReparentScreen moves a screen into a screen group ("" = root).
func ReparentScreen(p *domain.Project, screenID, groupID string) error {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return domain.ErrScreenNotFound
	}
	if groupID != "" && p.FindScreenGroup(groupID) == nil {
		return fmt.Errorf("%w: target group does not exist", domain.ErrHierarchyViolation)
	}
	screen.GroupID = groupID
	return nil
}

// ReparentScreenGroup nests a group under another group ("" = root). A group
// may never become its own ancestor.
func ReparentScreenGroup(p *domain.Project, groupID, newParentID string) error {
	group := p.FindScreenGroup(groupID)
	if group == nil {
		return domain.ErrGroupNotFound
	}
	if newParentID == "" {
		group.ParentID = ""
		return nil
	}
	if newParentID == groupID {
		return fmt.Errorf("%w: group cannot be its own parent", domain.ErrHierarchyViolation)
	}
	if p.FindScreenGroup(newParentID) == nil {
		return fmt.Errorf("%w: target group does not exist", domain.ErrHierarchyViolation)
	}
	for _, anc := range groupAncestors(p, newParentID) {
		if anc == groupID {
			return fmt.Errorf("%w: move would create a cycle", domain.ErrHierarchyViolation)
		}
	}
	group.ParentID = newParentID
	return nil
}

// GroupElements wraps the selected elements of one screen in a fresh
// group-typed container sized to their exact bounding box, with a z-index one
// above the selection's maximum. Members are reparented under the container
// but keep their absolute positions. Returns the container id.
func GroupElements(p *domain.Project, screenID string, ids []string) (string, error) {
	if len(ids) < 2 {
		return "", domain.ErrGroupTooSmall
	}
	screen := p.FindScreen(screenID)
	if screen == nil {
		return "", domain.ErrScreenNotFound
	}

	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		if screen.FindElement(id) == nil {
			return "", domain.ErrElementNotFound
		}
		if selected[id] {
			return "", fmt.Errorf("%w: duplicate id %s in selection", domain.ErrHierarchyViolation, id)
		}
		selected[id] = true
	}
	// Selections containing an element together with one of its ancestors
	// cannot be grouped; the relation already exists.
	for _, id := range ids {
		for _, anc := range elementAncestors(screen, id) {
			if selected[anc] {
				return "", fmt.Errorf("%w: selection contains related elements", domain.ErrHierarchyViolation)
			}
		}
	}

	minX, minY := screen.FindElement(ids[0]).X, screen.FindElement(ids[0]).Y
	maxX, maxY := minX, minY
	maxZ := 0
	for _, id := range ids {
		e := screen.FindElement(id)
		if e.X < minX {
			minX = e.X
		}
		if e.Y < minY {
			minY = e.Y
		}
		if e.X+e.Width > maxX {
			maxX = e.X + e.Width
		}
		if e.Y+e.Height > maxY {
			maxY = e.Y + e.Height
		}
		if e.ZIndex > maxZ {
			maxZ = e.ZIndex
		}
	}

	container := domain.CanvasElement{
		ID:     domain.NewID(),
		Type:   domain.TypeGroup,
		Name:   "Group",
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
		ZIndex: maxZ + 1,
	}
	screen.Elements = append(screen.Elements, container)
	for _, id := range ids {
		screen.FindElement(id).ParentID = container.ID
	}
	return container.ID, nil
}

// GroupScreens wraps the selected sibling screens in a fresh screen group.
// The new group inherits the shared parent of the selection. Returns the
// group id.
func GroupScreens(p *domain.Project, name string, ids []string) (string, error) {
	if len(ids) < 2 {
		return "", domain.ErrGroupTooSmall
	}
	var parentID string
	for i, id := range ids {
		screen := p.FindScreen(id)
		if screen == nil {
			return "", domain.ErrScreenNotFound
		}
		if i == 0 {
			parentID = screen.GroupID
		} else if screen.GroupID != parentID {
			return "", fmt.Errorf("%w: screens must share a parent to be grouped", domain.ErrHierarchyViolation)
		}
	}
	if name == "" {
		name = "Group"
	}
	group := domain.ScreenGroup{
		ID:       domain.NewID(),
		Name:     name,
		ParentID: parentID,
	}
	p.ScreenGroups = append(p.ScreenGroups, group)
	for _, id := range ids {
		p.FindScreen(id).GroupID = group.ID
	}
	return group.ID, nil
}

// MoveElementsToRoot clears the parent reference of each element, promoting
// it to the screen root.
func MoveElementsToRoot(p *domain.Project, screenID string, ids []string) error {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return domain.ErrScreenNotFound
	}
	for _, id := range ids {
		if screen.FindElement(id) == nil {
			return domain.ErrElementNotFound
		}
	}
	for _, id := range ids {
		screen.FindElement(id).ParentID = ""
	}
	return nil
}

// MoveScreensToRoot detaches each screen from its group.
func MoveScreensToRoot(p *domain.Project, ids []string) error {
	for _, id := range ids {
		if p.FindScreen(id) == nil {
			return domain.ErrScreenNotFound
		}
	}
	for _, id := range ids {
		p.FindScreen(id).GroupID = ""
	}
	return nil
}

// MoveGroupsToRoot promotes each group to the project root.
func MoveGroupsToRoot(p *domain.Project, ids []string) error {
	for _, id := range ids {
		if p.FindScreenGroup(id) == nil {
			return domain.ErrGroupNotFound
		}
	}
	for _, id := range ids {
		p.FindScreenGroup(id).ParentID = ""
	}
	return nil
}

// DeleteElements removes the given elements from a screen. Children of a
// deleted element are promoted to the deleted element's own parent (the
// nearest surviving ancestor, or the root), so no parent reference ever
// dangles.
func DeleteElements(p *domain.Project, screenID string, ids []string) error {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return domain.ErrScreenNotFound
	}
	deleted := make(map[string]string, len(ids)) // id -> its own parent id
	for _, id := range ids {
		e := screen.FindElement(id)
		if e == nil {
			return domain.ErrElementNotFound
		}
		deleted[id] = e.ParentID
	}

	survivors := screen.Elements[:0:0]
	for _, e := range screen.Elements {
		if _, gone := deleted[e.ID]; !gone {
			survivors = append(survivors, e)
		}
	}
	screen.Elements = survivors

	for i := range screen.Elements {
		parent := screen.Elements[i].ParentID
		for parent != "" {
			next, gone := deleted[parent]
			if !gone {
				break
			}
			parent = next
		}
		screen.Elements[i].ParentID = parent
	}
	return nil
}

// DeleteScreens removes the given screens. The project must always keep at
// least one screen: if the deletion would empty the list a fresh default
// screen is synthesized. ActiveScreenID is repointed to a survivor (or the
// synthesized screen) when it referenced a deleted screen. The returned set
// holds the deleted screen ids so callers can repair navigate payloads.
func DeleteScreens(p *domain.Project, ids []string) (map[string]bool, error) {
	deleted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if p.FindScreen(id) == nil {
			return nil, domain.ErrScreenNotFound
		}
		deleted[id] = true
	}

	survivors := p.Screens[:0:0]
	for _, s := range p.Screens {
		if !deleted[s.ID] {
			survivors = append(survivors, s)
		}
	}
	if len(survivors) == 0 {
		home := domain.NewScreen(domain.DefaultScreenName, p.ViewportWidth, p.ViewportHeight, p.Grid)
		survivors = append(survivors, home)
	}
	p.Screens = survivors

	if deleted[p.ActiveScreenID] || p.ActiveScreenID == "" {
		p.ActiveScreenID = p.Screens[0].ID
	}
	return deleted, nil
}

// DeleteScreenGroup removes a group without deleting its contents: child
// screens and child groups are detached onto the deleted group's own parent,
// removing exactly one level from the chain.
func DeleteScreenGroup(p *domain.Project, groupID string) error {
	group := p.FindScreenGroup(groupID)
	if group == nil {
		return domain.ErrGroupNotFound
	}
	parentID := group.ParentID

	for i := range p.Screens {
		if p.Screens[i].GroupID == groupID {
			p.Screens[i].GroupID = parentID
		}
	}
	survivors := p.ScreenGroups[:0:0]
	for _, g := range p.ScreenGroups {
		if g.ID == groupID {
			continue
		}
		if g.ParentID == groupID {
			g.ParentID = parentID
		}
		survivors = append(survivors, g)
	}
	p.ScreenGroups = survivors
	return nil
}

// elementAncestors returns the ancestor chain of an element, nearest first.
// A visited guard keeps the walk finite even on corrupt input.
func elementAncestors(s *domain.Screen, id string) []string {
	var out []string
	visited := map[string]bool{id: true}
	e := s.FindElement(id)
	for e != nil && e.ParentID != "" && !visited[e.ParentID] {
		visited[e.ParentID] = true
		out = append(out, e.ParentID)
		e = s.FindElement(e.ParentID)
	}
	return out
}

// groupAncestors returns the ancestor chain of a screen group, nearest first.
func groupAncestors(p *domain.Project, id string) []string {
	var out []string
	visited := map[string]bool{id: true}
	g := p.FindScreenGroup(id)
	for g != nil && g.ParentID != "" && !visited[g.ParentID] {
		visited[g.ParentID] = true
		out = append(out, g.ParentID)
		g = p.FindScreenGroup(g.ParentID)
	}
	return out
}
