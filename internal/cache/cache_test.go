package cache

import (
	"testing"
	"time"

	"github.com/JustJay7/nyaya-mitra/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(10, time.Minute)

	_, found := c.Get("a")
	assert.False(t, found)

	c.Set(&database.Case{ID: "a", CaseTitle: "Smith v. Jones", Status: database.StatusSubmitted})

	got, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, "Smith v. Jones", got.CaseTitle)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.False(t, stats.LastAccess.IsZero())
}

func TestCacheReturnsCopies(t *testing.T) {
	c := NewCache(10, time.Minute)

	original := &database.Case{ID: "a", Judgment: database.PendingJudgment}
	c.Set(original)
	original.Judgment = "mutated after set"

	got, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, database.PendingJudgment, got.Judgment)

	got.Judgment = "mutated after get"
	again, _ := c.Get("a")
	assert.Equal(t, database.PendingJudgment, again.Judgment)
}

func TestCacheIgnoresEmpty(t *testing.T) {
	c := NewCache(10, time.Minute)

	c.Set(nil)
	c.Set(&database.Case{})

	assert.Zero(t, c.Stats().Size)
}

func TestCacheEvictsWhenFull(t *testing.T) {
	c := NewCache(2, time.Minute)

	c.Set(&database.Case{ID: "a"})
	time.Sleep(10 * time.Millisecond)
	c.Set(&database.Case{ID: "b"})
	time.Sleep(10 * time.Millisecond)
	c.Set(&database.Case{ID: "c"})

	assert.Equal(t, 2, c.Stats().Size)
	_, found := c.Get("c")
	assert.True(t, found)
}

func TestCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewCache(2, time.Minute)

	c.Set(&database.Case{ID: "a"})
	c.Set(&database.Case{ID: "b"})
	c.Set(&database.Case{ID: "b", Status: database.StatusError})

	_, foundA := c.Get("a")
	b, foundB := c.Get("b")
	assert.True(t, foundA)
	require.True(t, foundB)
	assert.Equal(t, database.StatusError, b.Status)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache(10, time.Minute)

	c.Set(&database.Case{ID: "a"})
	c.Set(&database.Case{ID: "b"})

	c.Delete("a")
	_, found := c.Get("a")
	assert.False(t, found)

	c.Clear()
	stats := c.Stats()
	assert.Zero(t, stats.Size)
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
}
