package link_test

import (
	"encoding/json"
	"testing"

	"github.com/jpl-au/mystuff/internal/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("trims tags and keeps order", func(t *testing.T) {
		l := link.New("http://a.example", "desc", []string{" t2", "t1 ", "t2"})
		assert.Equal(t, "http://a.example", l.URL)
		assert.Equal(t, "desc", l.Description)
		assert.Equal(t, []string{"t2", "t1", "t2"}, l.Tags)
	})

	t.Run("nil tags become empty", func(t *testing.T) {
		l := link.New("http://a.example", "", nil)
		assert.NotNil(t, l.Tags)
		assert.Empty(t, l.Tags)
	})
}

func TestLink_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(link.Link{URL: "http://a.example"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"http://a.example","description":"","tags":[]}`, string(b))

	b, err = json.Marshal(link.New("http://b.example", "d", []string{"x"}))
	require.NoError(t, err)
	assert.Equal(t, `{"url":"http://b.example","description":"d","tags":["x"]}`, string(b))
}

func TestLink_Clone(t *testing.T) {
	orig := link.New("http://a.example", "d", []string{"x"})
	c := orig.Clone()
	c.Tags[0] = "changed"
	assert.Equal(t, "x", orig.Tags[0])
	assert.True(t, orig.Equal(link.New("http://a.example", "d", []string{"x"})))
	assert.False(t, orig.Equal(c))
}

func TestCollection(t *testing.T) {
	c := link.Collection{
		"http://b.example": link.New("http://b.example", "b", []string{"Go", "cli"}),
		"http://a.example": link.New("http://a.example", "a", []string{"go", " ", "Web"}),
	}

	t.Run("sorted by url", func(t *testing.T) {
		sorted := c.Sorted()
		require.Len(t, sorted, 2)
		assert.Equal(t, "http://a.example", sorted[0].URL)
		assert.Equal(t, "http://b.example", sorted[1].URL)
	})

	t.Run("distinct lowercase tags", func(t *testing.T) {
		assert.Equal(t, []string{"cli", "go", "web"}, c.Tags())
	})

	t.Run("clone is independent", func(t *testing.T) {
		cl := c.Clone()
		delete(cl, "http://a.example")
		cl["http://b.example"].Tags[0] = "rust"
		assert.Len(t, c, 2)
		assert.Equal(t, "Go", c["http://b.example"].Tags[0])
	})

	t.Run("nil clone", func(t *testing.T) {
		var nilColl link.Collection
		assert.NotNil(t, nilColl.Clone())
		assert.Empty(t, nilColl.Tags())
	})
}
