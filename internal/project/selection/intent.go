package selection

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

// Entity kinds a delete intent can cover.
const (
	KindElements = "elements"
	KindScreens  = "screens"
)

// DeleteIntent is the confirm-intent phase of a bulk delete: the resolver
// describes what the delete will touch and hands back a token; the mutation
// only executes when the same token is presented again. The token is a
// deterministic digest of kind+ids, so it needs no server-side state.
type DeleteIntent struct {
	Kind         string   `json:"kind"`
	IDs          []string `json:"ids"`
	ElementCount int      `json:"element_count,omitempty"`
	ScreenCount  int      `json:"screen_count,omitempty"`
	Token        string   `json:"confirm_token"`
}

// PlanBulkDelete builds the delete intent for a multi-entity selection.
// Single-entity deletes do not require the confirmation phase.
func PlanBulkDelete(p *domain.Project, kind, screenID string, ids []string) (DeleteIntent, error) {
	intent := DeleteIntent{Kind: kind, IDs: ids}
	switch kind {
	case KindElements:
		screen := p.FindScreen(screenID)
		if screen == nil {
			return DeleteIntent{}, domain.ErrScreenNotFound
		}
		for _, id := range ids {
			if screen.FindElement(id) == nil {
				return DeleteIntent{}, domain.ErrElementNotFound
			}
		}
		intent.ElementCount = len(ids)
	case KindScreens:
		for _, id := range ids {
			s := p.FindScreen(id)
			if s == nil {
				return DeleteIntent{}, domain.ErrScreenNotFound
			}
			intent.ElementCount += len(s.Elements)
		}
		intent.ScreenCount = len(ids)
	default:
		return DeleteIntent{}, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	intent.Token = ConfirmToken(kind, ids)
	return intent, nil
}

// ConfirmToken derives the confirmation token for a delete of the given
// kind and ids. Id order does not matter.
func ConfirmToken(kind string, ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(kind + "\x00" + strings.Join(sorted, "\x00")))
	return hex.EncodeToString(sum[:16])
}

// VerifyConfirm reports whether token authorizes deleting the given ids.
// Bulk deletes (two or more ids) always require a matching token; a single
// id passes without one.
func VerifyConfirm(token, kind string, ids []string) error {
	if len(ids) < 2 {
		return nil
	}
	if token == "" || token != ConfirmToken(kind, ids) {
		return domain.ErrConfirmRequired
	}
	return nil
}
