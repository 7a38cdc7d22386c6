package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]Product{
		{ID: "A", Title: "Red Shoe"},
		{ID: "B", Title: "Blue Shoe"},
		{ID: "C", Title: "Red Hat"},
	})
	assert.NoError(t, err)
	return c
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Product{
		{ID: "A", Title: "first"},
		{ID: "A", Title: "second"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate product id")
}

func TestGetTitle(t *testing.T) {
	c := testCatalog(t)

	assert.Equal(t, "Red Shoe", c.GetTitle("A"))
	// stale reference echoes the id
	assert.Equal(t, "Z", c.GetTitle("Z"))
	assert.Equal(t, "", c.GetTitle(""))
}

func TestGetTitleEmptyStoredTitle(t *testing.T) {
	c, err := New([]Product{{ID: "X", Title: ""}})
	assert.NoError(t, err)
	assert.Equal(t, "X", c.GetTitle("X"))
}

func TestLookup(t *testing.T) {
	c := testCatalog(t)

	p, ok := c.Lookup("B")
	assert.True(t, ok)
	assert.Equal(t, "Blue Shoe", p.Title)

	_, ok = c.Lookup("Z")
	assert.False(t, ok)
}

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	c := testCatalog(t)

	matches := c.Search("red", 10)
	assert.Len(t, matches, 2)
	assert.Equal(t, "A", matches[0].ID)
	assert.Equal(t, "C", matches[1].ID)
}

func TestSearchEmptyQueryReturnsHead(t *testing.T) {
	c := testCatalog(t)

	matches := c.Search("", 2)
	assert.Len(t, matches, 2)
	assert.Equal(t, "A", matches[0].ID)
	assert.Equal(t, "B", matches[1].ID)
}

func TestSearchNoMatches(t *testing.T) {
	c := testCatalog(t)

	assert.Empty(t, c.Search("sandal", 10))
	assert.Empty(t, c.Search("red", 0))
	assert.Empty(t, c.Search("red", -1))
}

func TestSearchSkipsEmptyTitles(t *testing.T) {
	c, err := New([]Product{
		{ID: "1", Title: ""},
		{ID: "2", Title: "thing"},
	})
	assert.NoError(t, err)

	matches := c.Search("thing", 10)
	assert.Len(t, matches, 1)
	assert.Equal(t, "2", matches[0].ID)
}

func TestOrdinalMappingIsBijection(t *testing.T) {
	c := testCatalog(t)

	for i, id := range []string{"A", "B", "C"} {
		ordinal, ok := c.OrdinalOf(id)
		assert.True(t, ok)
		assert.Equal(t, i, ordinal)

		back, ok := c.IDAt(i)
		assert.True(t, ok)
		assert.Equal(t, id, back)
	}

	_, ok := c.OrdinalOf("Z")
	assert.False(t, ok)
	_, ok = c.IDAt(3)
	assert.False(t, ok)
	_, ok = c.IDAt(-1)
	assert.False(t, ok)
}
