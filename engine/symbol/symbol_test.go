package symbol

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.parser")
	defer teardown()
	//
	sym, ok := Lookup("bold")
	assert.True(t, ok)
	assert.Equal(t, Bold, sym)
	_, ok = Lookup("Bold") // case-sensitive
	assert.False(t, ok)
	sym, ok = Lookup("Math")
	assert.True(t, ok)
	assert.Equal(t, DisplayMath, sym)
	_, ok = Lookup("exception")
	assert.False(t, ok, "internal symbols must not be writable")
	assert.True(t, IsRegistered(Exception))
	assert.True(t, IsInternal(Exception))
	assert.False(t, IsInternal(Note))
}

func TestNames(t *testing.T) {
	assert.True(t, IsValidName("margin-note"))
	assert.True(t, IsValidName("x_1"))
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName("bold world"))
	assert.False(t, IsValidName(strings.Repeat("a", MaxLength+1)))
	assert.True(t, IsGrouping(List))
	assert.True(t, IsGrouping(Paragraph))
	assert.False(t, IsGrouping(Bold))
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 11)
	assert.Contains(t, all, MarginNote)
	assert.Contains(t, all, Exception)
}

func TestSuggest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.parser")
	defer teardown()
	//
	assert.Contains(t, Suggest("bld"), "bold")
	assert.Contains(t, Suggest("itali"), "italic")
	assert.NotContains(t, Suggest("exc"), "exception")
	assert.Nil(t, Suggest(""))
}
