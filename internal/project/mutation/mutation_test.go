package mutation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

func seedProject(t *testing.T) *domain.Project {
	t.Helper()
	return domain.NewProject("pb-test-0001", "user123", "Seed")
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestSnapshotSemantics(t *testing.T) {
	t.Run("success returns a new snapshot, input untouched", func(t *testing.T) {
		p := seedProject(t)
		before := p.Clone()

		next, id, err := AddElement(p, p.Screens[0].ID, domain.TypeButton, 10, 10)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		assert.NotSame(t, p, next)
		assert.Equal(t, before, p)
		assert.Len(t, next.Screens[0].Elements, 1)
		assert.Empty(t, p.Screens[0].Elements)
	})

	t.Run("error returns the input pointer untouched", func(t *testing.T) {
		p := seedProject(t)
		next, _, err := AddElement(p, "missing", domain.TypeButton, 0, 0)
		assert.ErrorIs(t, err, domain.ErrScreenNotFound)
		assert.Same(t, p, next)
	})

	t.Run("mutation bumps updated_at", func(t *testing.T) {
		p := seedProject(t)
		next, err := UpdateProject(p, ProjectPatch{Name: strPtr("Renamed")})
		require.NoError(t, err)
		assert.True(t, next.UpdatedAt.After(p.UpdatedAt) || next.UpdatedAt.Equal(p.UpdatedAt))
		assert.Equal(t, "Renamed", next.Name)
		assert.Equal(t, "Seed", p.Name)
	})
}

func TestAddElement(t *testing.T) {
	t.Run("z-index stacks above existing elements", func(t *testing.T) {
		p := seedProject(t)
		home := p.Screens[0].ID
		p, _, err := AddElement(p, home, domain.TypeText, 0, 0)
		require.NoError(t, err)
		p, id, err := AddElement(p, home, domain.TypeButton, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, p.FindScreen(home).FindElement(id).ZIndex)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		p := seedProject(t)
		next, _, err := AddElement(p, p.Screens[0].ID, "hologram", 0, 0)
		assert.Error(t, err)
		assert.Same(t, p, next)
	})

	t.Run("locked screen absorbs the write", func(t *testing.T) {
		p := seedProject(t)
		p.Screens[0].Locked = true
		next, id, err := AddElement(p, p.Screens[0].ID, domain.TypeButton, 0, 0)
		assert.NoError(t, err)
		assert.Empty(t, id)
		assert.Same(t, p, next)
	})
}

func TestUpdateElement(t *testing.T) {
	setup := func(t *testing.T) (*domain.Project, string, string) {
		p := seedProject(t)
		home := p.Screens[0].ID
		p, id, err := AddElement(p, home, domain.TypeButton, 10, 10)
		require.NoError(t, err)
		return p, home, id
	}

	t.Run("patched fields applied, others kept", func(t *testing.T) {
		p, home, id := setup(t)
		next, err := UpdateElement(p, home, id, ElementPatch{
			Name: strPtr("CTA"),
			X:    f64Ptr(99),
		})
		require.NoError(t, err)
		e := next.FindScreen(home).FindElement(id)
		assert.Equal(t, "CTA", e.Name)
		assert.Equal(t, 99.0, e.X)
		assert.Equal(t, 10.0, e.Y)
	})

	t.Run("nil prop value deletes the key", func(t *testing.T) {
		p, home, id := setup(t)
		next, err := UpdateElement(p, home, id, ElementPatch{
			Props: map[string]any{"label": nil, "badge": "New"},
		})
		require.NoError(t, err)
		e := next.FindScreen(home).FindElement(id)
		assert.NotContains(t, e.Props, "label")
		assert.Equal(t, "New", e.Props["badge"])
	})

	t.Run("style merges pointer-wise", func(t *testing.T) {
		p, home, id := setup(t)
		next, err := UpdateElement(p, home, id, ElementPatch{
			Style: &domain.Style{Color: strPtr("#111111")},
		})
		require.NoError(t, err)
		next, err = UpdateElement(next, home, id, ElementPatch{
			Style: &domain.Style{FontSize: intPtr(18)},
		})
		require.NoError(t, err)
		e := next.FindScreen(home).FindElement(id)
		require.NotNil(t, e.Style.Color)
		assert.Equal(t, "#111111", *e.Style.Color)
		require.NotNil(t, e.Style.FontSize)
		assert.Equal(t, 18, *e.Style.FontSize)
	})

	t.Run("parent change validates against cycles", func(t *testing.T) {
		p, home, id := setup(t)
		p, container, err := AddElement(p, home, domain.TypeGroup, 0, 0)
		require.NoError(t, err)

		next, err := UpdateElement(p, home, id, ElementPatch{ParentID: &container})
		require.NoError(t, err)
		assert.Equal(t, container, next.FindScreen(home).FindElement(id).ParentID)

		bad, err := UpdateElement(next, home, container, ElementPatch{ParentID: &id})
		assert.ErrorIs(t, err, domain.ErrHierarchyViolation)
		assert.Same(t, next, bad)
	})

	t.Run("interaction list replaced wholesale", func(t *testing.T) {
		p, home, id := setup(t)
		next, err := UpdateElement(p, home, id, ElementPatch{
			Interactions: []domain.Interaction{
				{ID: "in-1", Trigger: domain.TriggerOnClick, Action: domain.ActionNavigate, Payload: home},
				{ID: "in-2", Trigger: "onHover", Action: domain.ActionAlert, Payload: "Hi"},
			},
		})
		require.NoError(t, err)
		assert.Len(t, next.FindScreen(home).FindElement(id).Interactions, 2)
	})

	t.Run("duplicate triggers in the patch rejected", func(t *testing.T) {
		p, home, id := setup(t)
		next, err := UpdateElement(p, home, id, ElementPatch{
			Interactions: []domain.Interaction{
				{ID: "in-1", Trigger: domain.TriggerOnClick, Action: domain.ActionNavigate, Payload: home},
				{ID: "in-2", Trigger: domain.TriggerOnClick, Action: domain.ActionNavigate, Payload: home},
			},
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateTrigger)
		assert.Same(t, p, next)
		assert.Empty(t, p.FindScreen(home).FindElement(id).Interactions)
	})

	t.Run("navigate payload to a dead screen rejected", func(t *testing.T) {
		p, home, id := setup(t)
		next, err := UpdateElement(p, home, id, ElementPatch{
			Interactions: []domain.Interaction{
				{ID: "in-1", Trigger: domain.TriggerOnClick, Action: domain.ActionNavigate, Payload: "screen-never-existed"},
			},
		})
		assert.ErrorIs(t, err, domain.ErrScreenNotFound)
		assert.Same(t, p, next)
	})

	t.Run("locked element absorbs everything except unlock", func(t *testing.T) {
		p, home, id := setup(t)
		p, err := UpdateElement(p, home, id, ElementPatch{Locked: boolPtr(true)})
		require.NoError(t, err)

		next, err := UpdateElement(p, home, id, ElementPatch{Name: strPtr("Nope")})
		assert.NoError(t, err)
		assert.Same(t, p, next)

		next, err = UpdateElement(p, home, id, ElementPatch{Locked: boolPtr(false)})
		require.NoError(t, err)
		assert.NotSame(t, p, next)
		assert.False(t, next.FindScreen(home).FindElement(id).Locked)
	})

	t.Run("locked screen absorbs element patches", func(t *testing.T) {
		p, home, id := setup(t)
		p.FindScreen(home).Locked = true
		next, err := UpdateElement(p, home, id, ElementPatch{Name: strPtr("Nope")})
		assert.NoError(t, err)
		assert.Same(t, p, next)
	})
}

func TestDuplicateElement(t *testing.T) {
	p := seedProject(t)
	home := p.Screens[0].ID
	p, id, err := AddElement(p, home, domain.TypeButton, 10, 20)
	require.NoError(t, err)
	p, _, err = AddInteraction(p, home, id, "")
	require.NoError(t, err)

	next, dupID, err := DuplicateElement(p, home, id)
	require.NoError(t, err)
	require.NotEqual(t, id, dupID)

	src := next.FindScreen(home).FindElement(id)
	dup := next.FindScreen(home).FindElement(dupID)
	assert.Equal(t, src.Name+" copy", dup.Name)
	assert.Equal(t, src.X+duplicateOffset, dup.X)
	assert.Equal(t, src.Y+duplicateOffset, dup.Y)
	assert.Greater(t, dup.ZIndex, src.ZIndex)
	require.Len(t, dup.Interactions, 1)
	assert.NotEqual(t, src.Interactions[0].ID, dup.Interactions[0].ID)
	assert.Equal(t, src.Interactions[0].Payload, dup.Interactions[0].Payload)
}

func TestDeleteScreensClearsNavigation(t *testing.T) {
	p := seedProject(t)
	home := p.Screens[0].ID
	p, detail, err := AddScreen(p, "Detail", "")
	require.NoError(t, err)
	p, btn, err := AddElement(p, home, domain.TypeButton, 0, 0)
	require.NoError(t, err)
	p, inID, err := AddInteraction(p, home, btn, "")
	require.NoError(t, err)
	require.Equal(t, detail, p.FindScreen(home).FindElement(btn).FindInteraction(inID).Payload)

	next, err := DeleteScreens(p, []string{detail})
	require.NoError(t, err)

	assert.Nil(t, next.FindScreen(detail))
	in := next.FindScreen(home).FindElement(btn).FindInteraction(inID)
	require.NotNil(t, in)
	assert.Empty(t, in.Payload)
	// the input snapshot still holds the old target
	assert.Equal(t, detail, p.FindScreen(home).FindElement(btn).FindInteraction(inID).Payload)
}

func TestDuplicateScreen(t *testing.T) {
	p := seedProject(t)
	home := p.Screens[0].ID
	p, container, err := AddElement(p, home, domain.TypeGroup, 0, 0)
	require.NoError(t, err)
	p, child, err := AddElement(p, home, domain.TypeText, 5, 5)
	require.NoError(t, err)
	p, err = ReparentElement(p, home, child, container)
	require.NoError(t, err)

	next, dupID, err := DuplicateScreen(p, home)
	require.NoError(t, err)

	dup := next.FindScreen(dupID)
	require.NotNil(t, dup)
	assert.Equal(t, "Copy of "+domain.DefaultScreenName, dup.Name)
	// inserted directly after the original
	assert.Equal(t, home, next.Screens[0].ID)
	assert.Equal(t, dupID, next.Screens[1].ID)
	// fresh element ids with parent links remapped inside the copy
	require.Len(t, dup.Elements, 2)
	for i := range dup.Elements {
		assert.Nil(t, p.FindScreen(home).FindElement(dup.Elements[i].ID), "id %s reused", dup.Elements[i].ID)
	}
	assert.Equal(t, dup.Elements[0].ID, dup.Elements[1].ParentID)
}

func TestScreenGroupMutations(t *testing.T) {
	t.Run("update group reparent validates cycles", func(t *testing.T) {
		p := seedProject(t)
		p, outer, err := AddScreenGroup(p, "Outer", "")
		require.NoError(t, err)
		p, inner, err := AddScreenGroup(p, "Inner", outer)
		require.NoError(t, err)

		next, err := UpdateScreenGroup(p, outer, GroupPatch{ParentID: &inner})
		assert.ErrorIs(t, err, domain.ErrHierarchyViolation)
		assert.Same(t, p, next)
	})

	t.Run("delete group detaches children", func(t *testing.T) {
		p := seedProject(t)
		p, g, err := AddScreenGroup(p, "Flow", "")
		require.NoError(t, err)
		p, s, err := AddScreen(p, "Detail", g)
		require.NoError(t, err)

		next, err := DeleteScreenGroup(p, g)
		require.NoError(t, err)
		assert.Nil(t, next.FindScreenGroup(g))
		assert.Empty(t, next.FindScreen(s).GroupID)
	})
}

func TestUpdateScreen(t *testing.T) {
	t.Run("locked screen only accepts unlock", func(t *testing.T) {
		p := seedProject(t)
		home := p.Screens[0].ID
		p, err := UpdateScreen(p, home, ScreenPatch{Locked: boolPtr(true)})
		require.NoError(t, err)

		next, err := UpdateScreen(p, home, ScreenPatch{Name: strPtr("Nope")})
		assert.NoError(t, err)
		assert.Same(t, p, next)

		next, err = UpdateScreen(p, home, ScreenPatch{Locked: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, next.FindScreen(home).Locked)
	})

	t.Run("group change rejected for unknown group", func(t *testing.T) {
		p := seedProject(t)
		next, err := UpdateScreen(p, p.Screens[0].ID, ScreenPatch{GroupID: strPtr("ghost")})
		assert.ErrorIs(t, err, domain.ErrHierarchyViolation)
		assert.Same(t, p, next)
	})
}

func TestSetActiveScreen(t *testing.T) {
	p := seedProject(t)
	p, detail, err := AddScreen(p, "Detail", "")
	require.NoError(t, err)

	next, err := SetActiveScreen(p, detail)
	require.NoError(t, err)
	assert.Equal(t, detail, next.ActiveScreenID)

	s, ok := GetActiveScreen(next)
	require.True(t, ok)
	assert.Equal(t, detail, s.ID)

	_, err = SetActiveScreen(p, "ghost")
	assert.ErrorIs(t, err, domain.ErrScreenNotFound)
}

func TestAssets(t *testing.T) {
	p := seedProject(t)

	t.Run("add and remove", func(t *testing.T) {
		next, id, err := AddAsset(p, "logo.png", domain.AssetImage, "data:image/png;base64,AA==")
		require.NoError(t, err)
		require.Len(t, next.Assets, 1)
		assert.Empty(t, p.Assets)

		after, err := RemoveAsset(next, id)
		require.NoError(t, err)
		assert.Empty(t, after.Assets)
		assert.Len(t, next.Assets, 1)
	})

	t.Run("unknown asset type rejected", func(t *testing.T) {
		next, _, err := AddAsset(p, "x", "audio", "data:")
		assert.Error(t, err)
		assert.Same(t, p, next)
	})

	t.Run("remove unknown asset", func(t *testing.T) {
		next, err := RemoveAsset(p, "ghost")
		assert.ErrorIs(t, err, domain.ErrAssetNotFound)
		assert.Same(t, p, next)
	})
}

func TestGroupAndUngroupElements(t *testing.T) {
	p := seedProject(t)
	home := p.Screens[0].ID
	p, a, err := AddElement(p, home, domain.TypeButton, 0, 0)
	require.NoError(t, err)
	p, b, err := AddElement(p, home, domain.TypeText, 200, 0)
	require.NoError(t, err)

	next, containerID, err := GroupElements(p, home, []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, containerID, next.FindScreen(home).FindElement(a).ParentID)
	// original snapshot keeps the ungrouped layout
	assert.Empty(t, p.FindScreen(home).FindElement(a).ParentID)
	assert.Nil(t, p.FindScreen(home).FindElement(containerID))

	after, err := MoveElementsToRoot(next, home, []string{a, b})
	require.NoError(t, err)
	assert.Empty(t, after.FindScreen(home).FindElement(a).ParentID)
	assert.Empty(t, after.FindScreen(home).FindElement(b).ParentID)
}
