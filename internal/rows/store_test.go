package rows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreReplace(t *testing.T) {
	s := NewStore()
	var seen []ListID
	unsub := s.Subscribe(func(id ListID) { seen = append(seen, id) })

	in := []Record{{ID: "a"}, {ID: "b"}}
	s.Replace(ListItems, in)
	in[0].ID = "mutated"

	require.Len(t, s.Rows(ListItems), 2)
	assert.Equal(t, "a", s.Rows(ListItems)[0].ID, "replace must copy")
	assert.Equal(t, uint64(1), s.Version(ListItems))
	assert.Equal(t, uint64(0), s.Version(ListHistory))
	assert.Equal(t, []ListID{ListItems}, seen)

	unsub()
	unsub()
	s.Replace(ListHistory, nil)
	assert.Equal(t, []ListID{ListItems}, seen)
	assert.Equal(t, uint64(1), s.Version(ListHistory))
	assert.Empty(t, s.Rows(ListHistory))
}

func TestStoreIgnoresUnknownList(t *testing.T) {
	s := NewStore()
	s.Replace(ListID(9), []Record{{ID: "x"}})
	assert.Nil(t, s.Rows(ListID(9)))
	assert.Zero(t, s.Version(ListID(9)))
}

func TestRank(t *testing.T) {
	recs := []Record{
		{ID: "sword-01", Title: "Iron Sword"},
		{ID: "shield-01", Title: "Oak Shield"},
		{ID: "potion-01", Title: "Health Potion", Badge: "consumable"},
		{ID: "potion-02", Title: "Mana Potoin"},
	}

	t.Run("empty query returns input", func(t *testing.T) {
		assert.Equal(t, recs, Rank(recs, "  "))
	})

	t.Run("substring matches keep order", func(t *testing.T) {
		got := Rank(recs, "potion")
		require.Len(t, got, 2)
		assert.Equal(t, "potion-01", got[0].ID)
		assert.Equal(t, "potion-02", got[1].ID)
	})

	t.Run("fuzzy title word", func(t *testing.T) {
		got := Rank(recs, "shild")
		require.Len(t, got, 1)
		assert.Equal(t, "shield-01", got[0].ID)
	})

	t.Run("badge match", func(t *testing.T) {
		got := Rank(recs, "consum")
		require.Len(t, got, 1)
		assert.Equal(t, "potion-01", got[0].ID)
	})

	t.Run("short query never fuzzy", func(t *testing.T) {
		assert.Empty(t, Rank(recs, "zq"))
	})
}
