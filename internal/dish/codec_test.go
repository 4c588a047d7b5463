package dish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDishes(t *testing.T) {
	t.Run("MalformedTopLevel", func(t *testing.T) {
		for _, input := range []string{"", "not json", `{"id":"x"}`, `42`, `null`} {
			assert.Empty(t, ParseDishes([]byte(input)), input)
		}
	})

	t.Run("NormalizesEntries", func(t *testing.T) {
		input := `[
			{"id": "a", "name": " Tacos ", "ingredients": ["Tortillas", 3, " beans ", ""], "special": true},
			{"id": "b", "name": 12, "ingredients": ["x"]},
			{"id": "c", "name": "   "},
			{"name": "No id", "ingredients": "rice", "includeInPlanner": false, "isDefault": true},
			"garbage",
			null
		]`

		dishes := ParseDishes([]byte(input))
		require.Len(t, dishes, 2)

		assert.Equal(t, Dish{
			ID:               "a",
			Name:             "Tacos",
			Ingredients:      []string{"Tortillas", "beans"},
			IncludeInPlanner: true,
			Special:          true,
		}, dishes[0])

		assert.NotEmpty(t, dishes[1].ID)
		assert.Equal(t, "No id", dishes[1].Name)
		assert.Empty(t, dishes[1].Ingredients)
		assert.False(t, dishes[1].IncludeInPlanner)
		assert.True(t, dishes[1].IsDefault)
	})
}

func TestDishesRoundTrip(t *testing.T) {
	original := []Dish{
		{ID: "seed-1", Name: "Roast", Ingredients: []string{"beef", "potatoes"}, IncludeInPlanner: true, IsDefault: true, Special: true},
		{ID: "u-1", Name: "Soup", Ingredients: nil, IncludeInPlanner: false},
	}

	data, err := EncodeDishes(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ingredients":[]`)

	decoded := ParseDishes(data)
	require.Len(t, decoded, 2)
	assert.Equal(t, original[0], decoded[0])
	assert.Equal(t, "Soup", decoded[1].Name)
	assert.Empty(t, decoded[1].Ingredients)
	assert.False(t, decoded[1].IncludeInPlanner)
}
