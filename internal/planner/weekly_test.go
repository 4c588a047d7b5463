package planner

import (
	"testing"

	"weekly-menu/internal/dish"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *dish.Catalog {
	return dish.NewCatalog([]dish.Dish{
		{ID: "tacos", Name: "Tacos", Ingredients: []string{"Tortillas", "beans"}, IncludeInPlanner: true},
		{ID: "soup", Name: "Soup", Ingredients: []string{"stock"}, IncludeInPlanner: true},
		{ID: "prime-rib", Name: "Prime Rib", IncludeInPlanner: true, Special: true},
		{ID: "seafood", Name: "Seafood", IncludeInPlanner: true, Special: true},
		{ID: "hidden", Name: "Hidden", IncludeInPlanner: false},
	})
}

func TestNewPlanIsEmpty(t *testing.T) {
	p := New(testCatalog())
	snap := p.Snapshot()
	require.Len(t, snap, 7)
	for _, d := range Days {
		assert.Equal(t, Assignment{}, snap[d], d)
	}
	assert.Empty(t, p.DishIDs())
}

func TestAssign(t *testing.T) {
	t.Run("ReplacesSlot", func(t *testing.T) {
		p := New(testCatalog())
		require.NoError(t, p.Assign(Monday, Primary, "tacos"))
		require.NoError(t, p.Assign(Monday, Primary, "soup"))
		assert.Equal(t, "soup", p.Get(Monday, Primary))
		assert.Equal(t, "", p.Get(Monday, Secondary))
	})

	t.Run("EmptyIDClears", func(t *testing.T) {
		p := New(testCatalog())
		require.NoError(t, p.Assign(Friday, Secondary, "tacos"))
		require.NoError(t, p.Assign(Friday, Secondary, ""))
		assert.Equal(t, "", p.Get(Friday, Secondary))
	})

	t.Run("Rejections", func(t *testing.T) {
		p := New(testCatalog())
		before := p.Snapshot()

		assert.ErrorIs(t, p.Assign(Day("Funday"), Primary, "tacos"), ErrUnknownSlot)
		assert.ErrorIs(t, p.Assign(Monday, Slot("dessert"), "tacos"), ErrUnknownSlot)
		assert.ErrorIs(t, p.Assign(Monday, Primary, "missing"), dish.ErrUnknownDish)
		assert.ErrorIs(t, p.Assign(Monday, Primary, "hidden"), ErrExcludedDish)
		assert.Equal(t, before, p.Snapshot())
	})
}

func TestSpecialDishConstraint(t *testing.T) {
	t.Run("SecondSpecialRejected", func(t *testing.T) {
		p := New(testCatalog())
		require.NoError(t, p.Assign(Monday, Primary, "prime-rib"))

		err := p.Assign(Tuesday, Primary, "seafood")
		assert.ErrorIs(t, err, ErrSpecialConflict)
		assert.Equal(t, "", p.Get(Tuesday, Primary))
		assert.Equal(t, 1, p.SpecialCount())
	})

	t.Run("SameSpecialTwiceRejected", func(t *testing.T) {
		p := New(testCatalog())
		require.NoError(t, p.Assign(Monday, Primary, "prime-rib"))
		assert.ErrorIs(t, p.Assign(Monday, Secondary, "prime-rib"), ErrSpecialConflict)
	})

	t.Run("TargetSlotIgnored", func(t *testing.T) {
		p := New(testCatalog())
		require.NoError(t, p.Assign(Monday, Primary, "prime-rib"))
		require.NoError(t, p.Assign(Monday, Primary, "seafood"))
		assert.Equal(t, "seafood", p.Get(Monday, Primary))
		assert.Equal(t, 1, p.SpecialCount())
	})

	t.Run("OrdinaryDishesUnaffected", func(t *testing.T) {
		p := New(testCatalog())
		require.NoError(t, p.Assign(Monday, Primary, "prime-rib"))
		for _, d := range Days {
			require.NoError(t, p.Assign(d, Secondary, "tacos"))
		}
		assert.Equal(t, 1, p.SpecialCount())
	})

	t.Run("FreedAfterClear", func(t *testing.T) {
		p := New(testCatalog())
		require.NoError(t, p.Assign(Monday, Primary, "prime-rib"))
		require.NoError(t, p.Clear(Monday, Primary))
		require.NoError(t, p.Assign(Sunday, Secondary, "seafood"))
	})

	t.Run("HasSpecialElsewhere", func(t *testing.T) {
		p := New(testCatalog())
		require.NoError(t, p.Assign(Wednesday, Secondary, "seafood"))

		assert.False(t, p.HasSpecialElsewhere(Wednesday, Secondary))
		assert.True(t, p.HasSpecialElsewhere(Wednesday, Primary))
		assert.True(t, p.HasSpecialElsewhere(Thursday, Primary))
	})

	t.Run("RestoredConflictNotRepaired", func(t *testing.T) {
		p := FromSnapshot(testCatalog(), map[Day]Assignment{
			Monday:  {Primary: "prime-rib"},
			Tuesday: {Primary: "seafood"},
		})
		assert.Equal(t, 2, p.SpecialCount())
		assert.ErrorIs(t, p.Assign(Friday, Primary, "seafood"), ErrSpecialConflict)
	})

	t.Run("StaleReferencesIgnored", func(t *testing.T) {
		p := FromSnapshot(testCatalog(), map[Day]Assignment{Monday: {Primary: "deleted"}})
		assert.False(t, p.HasSpecialElsewhere(Tuesday, Primary))
		require.NoError(t, p.Assign(Tuesday, Primary, "seafood"))
	})
}

func TestClearAllReferencing(t *testing.T) {
	p := New(testCatalog())
	require.NoError(t, p.Assign(Monday, Primary, "tacos"))
	require.NoError(t, p.Assign(Monday, Secondary, "soup"))
	require.NoError(t, p.Assign(Thursday, Secondary, "tacos"))

	assert.Equal(t, 2, p.ClearAllReferencing("tacos"))
	assert.Equal(t, []string{"soup"}, p.DishIDs())
	assert.Equal(t, 0, p.ClearAllReferencing(""))
}

func TestReset(t *testing.T) {
	p := New(testCatalog())
	require.NoError(t, p.Assign(Saturday, Primary, "soup"))
	p.Reset()
	assert.Empty(t, p.DishIDs())
}

func TestParseDayAndSlot(t *testing.T) {
	d, ok := ParseDay(" monday ")
	assert.True(t, ok)
	assert.Equal(t, Monday, d)

	d, ok = ParseDay("THU")
	assert.True(t, ok)
	assert.Equal(t, Thursday, d)

	_, ok = ParseDay("mo")
	assert.False(t, ok)

	s, ok := ParseSlot("Secondary")
	assert.True(t, ok)
	assert.Equal(t, Secondary, s)

	_, ok = ParseSlot("third")
	assert.False(t, ok)
}
