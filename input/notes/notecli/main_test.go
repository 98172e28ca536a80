package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flynn162/epsilon-delta-notes/core"
	"github.com/flynn162/epsilon-delta-notes/input/notes"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceConfigCoversPackages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.cli")
	defer teardown()
	//
	conf := traceConfig("Debug")
	assert.Equal(t, "Info", conf.GetString("trace.notes.cli"))
	for _, key := range []string{"notes.lexer", "notes.parser", "notes.compiler"} {
		assert.Equal(t, "Debug", conf.GetString("trace."+key), key)
	}
	setTraceLevel("Debug")
	for _, key := range packageTracers {
		assert.Equal(t, tracing.LevelDebug, tracing.Select(key).GetTraceLevel(), key)
	}
	setTraceLevel("Error")
	assert.Equal(t, tracing.LevelError, tracing.Select("notes.parser").GetTraceLevel())
}

func TestExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.cli")
	defer teardown()
	//
	intp := &Intp{renderer: notes.NewRenderer(nil), titles: notes.MapResolver{}}
	err := intp.export(filepath.Join(t.TempDir(), "page.html"))
	assert.Equal(t, "nothing rendered yet", core.Report(err))
	//
	require.NoError(t, intp.renderLine("Hello @bold{World}"))
	name := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, intp.export(name))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<b><span>World</span></b>")
	//
	err = intp.export(filepath.Join(t.TempDir(), "missing", "page.html"))
	assert.Error(t, err)
}

func TestCommandsReportCodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.cli")
	defer teardown()
	//
	intp := &Intp{renderer: notes.NewRenderer(nil), titles: notes.MapResolver{}}
	deep := strings.Repeat("@{", 65) + "x" + strings.Repeat("}", 65)
	_, err := intp.execute(":tree " + deep)
	assert.Equal(t, core.ELIMIT, core.Code(err))
	_, err = intp.execute(":tree @blod{x}")
	assert.Contains(t, core.Report(err), "invalid markup: line 1: unknown command")
	quit, err := intp.execute(":titles calc=Calculus")
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "Calculus", intp.titles["calc"])
	quit, _ = intp.execute(":quit")
	assert.True(t, quit)
}
