package mutation

import (
	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/interaction"
)

// AddInteraction binds a new interaction to an element. A second binding on
// an already-bound trigger is rejected with ErrDuplicateTrigger.
func AddInteraction(p *domain.Project, screenID, elementID, trigger string) (*domain.Project, string, error) {
	next := p.Clone()
	id, err := interaction.Add(next, screenID, elementID, trigger)
	if err != nil {
		return p, "", err
	}
	touch(next)
	return next, id, nil
}

// UpdateInteraction patches an interaction. An action change resets the
// payload to an action-appropriate default.
func UpdateInteraction(p *domain.Project, screenID, elementID, interactionID string, patch interaction.Patch) (*domain.Project, error) {
	next := p.Clone()
	if err := interaction.Update(next, screenID, elementID, interactionID, patch); err != nil {
		return p, err
	}
	touch(next)
	return next, nil
}

// RemoveInteraction deletes an interaction from an element.
func RemoveInteraction(p *domain.Project, screenID, elementID, interactionID string) (*domain.Project, error) {
	next := p.Clone()
	if err := interaction.Remove(next, screenID, elementID, interactionID); err != nil {
		return p, err
	}
	touch(next)
	return next, nil
}
