package compiler

import (
	"testing"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputBuffer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.compiler")
	defer teardown()
	//
	o := newOutput()
	o.emit("<b>")
	o.emit("")
	o.emit("bold")
	o.emit("</b>")
	frags, err := o.fragments()
	require.NoError(t, err)
	assert.Equal(t, 3, frags.Len())
	assert.Equal(t, []string{"<b>", "bold", "</b>"}, frags.Strings())
	assert.Equal(t, uint64(11), frags.Size())
	assert.Equal(t, uint64(11), frags.Cord().Len())
}

func TestOutputBufferKeepsBuilderError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.compiler")
	defer teardown()
	//
	o := newOutput()
	o.emit("a")
	o.err = cords.ErrCordCompleted
	o.emit("b")
	assert.Equal(t, 1, o.count)
	_, err := o.fragments()
	assert.ErrorIs(t, err, cords.ErrCordCompleted)
}
