// Package interaction maintains the trigger→action→payload bindings on
// canvas elements and the navigation automaton they induce over screens.
// It never executes navigation; that is the previewer's concern.
package interaction

import (
	"fmt"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

// Patch carries the updatable fields of an interaction. When Action changes,
// Payload is reset to an action-appropriate default because the previous
// payload's meaning does not transfer across action kinds; an explicit
// Payload in the same patch wins over the default.
type Patch struct {
	Action  *string `json:"action,omitempty"`
	Payload *string `json:"payload,omitempty"`
}

// Add binds a new interaction for the given trigger to an element. An
// element carries at most one interaction per trigger: a second binding is
// rejected with ErrDuplicateTrigger, not replaced. The new interaction
// defaults to navigate, targeting an existing screen other than the
// element's own when one exists, otherwise the first screen.
func Add(p *domain.Project, screenID, elementID, trigger string) (string, error) {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return "", domain.ErrScreenNotFound
	}
	elem := screen.FindElement(elementID)
	if elem == nil {
		return "", domain.ErrElementNotFound
	}
	if trigger == "" {
		trigger = domain.TriggerOnClick
	}
	if elem.HasTrigger(trigger) {
		return "", fmt.Errorf("%w: %s", domain.ErrDuplicateTrigger, trigger)
	}
	in := domain.NewInteraction(trigger, DefaultNavigateTarget(p, screenID))
	elem.Interactions = append(elem.Interactions, in)
	return in.ID, nil
}

// Update applies a patch to an interaction.
func Update(p *domain.Project, screenID, elementID, interactionID string, patch Patch) error {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return domain.ErrScreenNotFound
	}
	elem := screen.FindElement(elementID)
	if elem == nil {
		return domain.ErrElementNotFound
	}
	in := elem.FindInteraction(interactionID)
	if in == nil {
		return domain.ErrInteractionNotFound
	}
	if patch.Action != nil && *patch.Action != in.Action {
		if !domain.ValidAction(*patch.Action) {
			return fmt.Errorf("unknown action %q", *patch.Action)
		}
		in.Action = *patch.Action
		switch in.Action {
		case domain.ActionNavigate:
			in.Payload = DefaultNavigateTarget(p, screenID)
		default:
			in.Payload = ""
		}
	}
	if patch.Payload != nil {
		if in.Action == domain.ActionNavigate && *patch.Payload != "" && p.FindScreen(*patch.Payload) == nil {
			return fmt.Errorf("%w: navigate target %s", domain.ErrScreenNotFound, *patch.Payload)
		}
		in.Payload = *patch.Payload
	}
	return nil
}

// Validate checks a full interaction set for an element: triggers must be
// unique, actions must be known, and navigate payloads must be empty or
// reference a screen that exists on the project.
func Validate(p *domain.Project, ins []domain.Interaction) error {
	seen := make(map[string]bool, len(ins))
	for i := range ins {
		in := &ins[i]
		if seen[in.Trigger] {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTrigger, in.Trigger)
		}
		seen[in.Trigger] = true
		if !domain.ValidAction(in.Action) {
			return fmt.Errorf("unknown action %q", in.Action)
		}
		if in.Action == domain.ActionNavigate && in.Payload != "" && p.FindScreen(in.Payload) == nil {
			return fmt.Errorf("%w: navigate target %s", domain.ErrScreenNotFound, in.Payload)
		}
	}
	return nil
}

// Remove deletes an interaction from an element. No cascade.
func Remove(p *domain.Project, screenID, elementID, interactionID string) error {
	screen := p.FindScreen(screenID)
	if screen == nil {
		return domain.ErrScreenNotFound
	}
	elem := screen.FindElement(elementID)
	if elem == nil {
		return domain.ErrElementNotFound
	}
	for i := range elem.Interactions {
		if elem.Interactions[i].ID == interactionID {
			elem.Interactions = append(elem.Interactions[:i], elem.Interactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrInteractionNotFound
}

// DefaultNavigateTarget picks the default payload for a new navigate
// interaction: the first screen other than ownScreenID when available,
// otherwise the first screen.
func DefaultNavigateTarget(p *domain.Project, ownScreenID string) string {
	if len(p.Screens) == 0 {
		return ""
	}
	for i := range p.Screens {
		if p.Screens[i].ID != ownScreenID {
			return p.Screens[i].ID
		}
	}
	return p.Screens[0].ID
}

// ClearDanglingNavigations unsets every navigate payload that points at one
// of the deleted screens. Payloads are cleared, never silently retargeted.
// Returns the number of interactions repaired.
func ClearDanglingNavigations(p *domain.Project, deleted map[string]bool) int {
	repaired := 0
	for i := range p.Screens {
		els := p.Screens[i].Elements
		for j := range els {
			for k := range els[j].Interactions {
				in := &els[j].Interactions[k]
				if in.Action == domain.ActionNavigate && in.Payload != "" && deleted[in.Payload] {
					in.Payload = ""
					repaired++
				}
			}
		}
	}
	return repaired
}
