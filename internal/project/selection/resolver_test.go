package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name string
		sel  Selection
		want Surface
	}{
		{"two elements", Selection{ElementIDs: []string{"a", "b"}}, SurfaceBulkElements},
		{"single element", Selection{ElementIDs: []string{"a"}}, SurfaceElement},
		{"two screens", Selection{ScreenIDs: []string{"s1", "s2"}}, SurfaceBulkScreens},
		{"single screen", Selection{ScreenIDs: []string{"s1"}}, SurfaceScreen},
		{"single group", Selection{GroupIDs: []string{"g1"}}, SurfaceScreenGroup},
		{"project context", Selection{Context: ContextProject}, SurfaceProject},
		{"nothing selected", Selection{}, SurfaceActiveScreen},
		// mixed: elements outrank everything else
		{"elements beat screens", Selection{ElementIDs: []string{"a", "b"}, ScreenIDs: []string{"s1"}}, SurfaceBulkElements},
		{"one element beats two screens", Selection{ElementIDs: []string{"a"}, ScreenIDs: []string{"s1", "s2"}}, SurfaceElement},
		{"screens beat groups", Selection{ScreenIDs: []string{"s1"}, GroupIDs: []string{"g1"}}, SurfaceScreen},
		{"group beats project context", Selection{GroupIDs: []string{"g1"}, Context: ContextProject}, SurfaceScreenGroup},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.sel))
		})
	}
}

func TestTarget(t *testing.T) {
	t.Run("returns ids of the winning surface", func(t *testing.T) {
		surface, ids := Target(Selection{ElementIDs: []string{"a", "b"}, ScreenIDs: []string{"s1"}})
		assert.Equal(t, SurfaceBulkElements, surface)
		assert.Equal(t, []string{"a", "b"}, ids)
	})

	t.Run("fallback carries no ids", func(t *testing.T) {
		surface, ids := Target(Selection{})
		assert.Equal(t, SurfaceActiveScreen, surface)
		assert.Nil(t, ids)
	})
}

func TestBulkActions(t *testing.T) {
	assert.Equal(t, []string{"group", "delete", "export", "move_to_root"}, BulkActions(SurfaceBulkElements))
	assert.Equal(t, []string{"delete", "export", "move_to_root"}, BulkActions(SurfaceBulkScreens))
	assert.Nil(t, BulkActions(SurfaceElement))
	assert.Nil(t, BulkActions(SurfaceActiveScreen))
}

func TestConfirmToken(t *testing.T) {
	t.Run("order independent", func(t *testing.T) {
		assert.Equal(t, ConfirmToken(KindElements, []string{"a", "b"}), ConfirmToken(KindElements, []string{"b", "a"}))
	})

	t.Run("kind is part of the digest", func(t *testing.T) {
		assert.NotEqual(t, ConfirmToken(KindElements, []string{"a", "b"}), ConfirmToken(KindScreens, []string{"a", "b"}))
	})

	t.Run("single delete needs no token", func(t *testing.T) {
		assert.NoError(t, VerifyConfirm("", KindElements, []string{"a"}))
	})

	t.Run("bulk delete without token rejected", func(t *testing.T) {
		err := VerifyConfirm("", KindElements, []string{"a", "b"})
		assert.ErrorIs(t, err, domain.ErrConfirmRequired)
	})

	t.Run("stale token rejected", func(t *testing.T) {
		token := ConfirmToken(KindElements, []string{"a", "b"})
		err := VerifyConfirm(token, KindElements, []string{"a", "b", "c"})
		assert.ErrorIs(t, err, domain.ErrConfirmRequired)
	})

	t.Run("matching token accepted", func(t *testing.T) {
		token := ConfirmToken(KindScreens, []string{"s1", "s2"})
		assert.NoError(t, VerifyConfirm(token, KindScreens, []string{"s2", "s1"}))
	})
}

func TestPlanBulkDelete(t *testing.T) {
	p := domain.NewProject("pb-test-0001", "user123", "Plan")
	home := &p.Screens[0]
	btn, err := domain.NewElement(domain.TypeButton, 0, 0)
	require.NoError(t, err)
	txt, err := domain.NewElement(domain.TypeText, 0, 0)
	require.NoError(t, err)
	home.Elements = append(home.Elements, btn, txt)

	t.Run("element intent counts elements", func(t *testing.T) {
		intent, err := PlanBulkDelete(p, KindElements, home.ID, []string{btn.ID, txt.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, intent.ElementCount)
		assert.Equal(t, ConfirmToken(KindElements, []string{btn.ID, txt.ID}), intent.Token)
	})

	t.Run("screen intent counts contained elements", func(t *testing.T) {
		second := domain.NewScreen("Second", 390, 844, domain.DefaultGrid())
		p.Screens = append(p.Screens, second)
		intent, err := PlanBulkDelete(p, KindScreens, "", []string{home.ID, second.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, intent.ScreenCount)
		assert.Equal(t, 2, intent.ElementCount)
	})

	t.Run("unknown element rejected", func(t *testing.T) {
		_, err := PlanBulkDelete(p, KindElements, home.ID, []string{"ghost"})
		assert.ErrorIs(t, err, domain.ErrElementNotFound)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		_, err := PlanBulkDelete(p, "assets", "", []string{"a", "b"})
		assert.ErrorIs(t, err, domain.ErrInvalidKind)
	})
}
