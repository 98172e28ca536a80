package parser

import (
	"errors"
	"testing"

	"github.com/flynn162/epsilon-delta-notes/core"
	"github.com/flynn162/epsilon-delta-notes/core/parameters"
	"github.com/flynn162/epsilon-delta-notes/engine/lexer"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestParseShapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.parser")
	defer teardown()
	//
	inputs := [][2]string{
		{"Hello @bold{World}@italic{!!} This is a note. @bold{@italic{Bye!}}",
			`(p 'Hello ' (bold 'World') (italic '!!') ' This is a note. ' (bold (italic 'Bye!')))`},
		{"Curly braces like these @bold{are {totally {acceptable}}} as long as {they {are} balanced}!",
			`(p 'Curly braces like these ' (bold 'are {totally {acceptable}}') ' as long as {they {are} balanced}!')`},
		{"a\nb\n\n\nc",
			`(p 'a' '\n' 'b' '\n\n' 'c')`},
		{"@{a}@|{b}|",
			`(p (list 'a') (list 'b'))`},
		{"@ bold {x}",
			`(p (bold 'x'))`},
		{"@math|{ {x} @y |{z }|",
			`(p (math ' {x} @y |{z '))`},
		{"@Math|{a\n\nb}|",
			`(p (Math 'a' '\n\n' 'b'))`},
		{"x |{raw-ish}| y",
			`(p 'x |{raw-ish}| y')`},
		{"",
			`(p)`},
	}
	for _, in := range inputs {
		root, err := New(nil).ParseString(in[0])
		if assert.NoError(t, err, "input %q", in[0]) {
			assert.Equal(t, in[1], root.String(), "input %q", in[0])
		}
	}
}

func TestParseKeepsRawTextAfterFirstClose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.parser")
	defer teardown()
	//
	// the first '}|' closes a raw body, the remainder is plain text
	root, err := New(nil).ParseString("@math|{a}|b}|")
	assert.Error(t, err)
	assert.Nil(t, root)
	root, err = New(nil).ParseString("@math|{a}|b")
	assert.NoError(t, err)
	assert.Equal(t, `(p (math 'a') 'b')`, root.String())
}

func TestParseLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.parser")
	defer teardown()
	//
	root, err := New(nil).ParseString("one\n\ntwo @bold{x\ny}\n@italic{z}")
	assert.NoError(t, err)
	nodes := root.Nodes()
	if assert.Len(t, nodes, 2) {
		assert.Equal(t, 3, nodes[0].Line)
		assert.Equal(t, 5, nodes[1].Line)
	}
}

func TestParseTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.parser")
	defer teardown()
	//
	// uncollapsed input is collapsed before parsing
	tokens := []lexer.Token{lexer.Lit("a"), lexer.Breaks(1), lexer.Lit("  "), lexer.Breaks(1), lexer.Lit("b")}
	root, err := New(nil).Parse(tokens)
	assert.NoError(t, err)
	assert.Equal(t, `(p 'a' '\n\n' 'b')`, root.String())
}

// --- Error Suite -----------------------------------------------------------

type ErrorTestEnviron struct {
	suite.Suite
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notes.parser")
	defer teardown()
	suite.Run(t, new(ErrorTestEnviron))
}

func (env *ErrorTestEnviron) parseError(input string) *ParseError {
	_, err := New(nil).ParseString(input)
	env.Require().Error(err, "expected error for %q", input)
	var perr *ParseError
	env.Require().True(errors.As(err, &perr), "expected ParseError for %q", input)
	env.Equal(core.EINVALID, core.Code(err))
	return perr
}

func (env *ErrorTestEnviron) TestUnknownCommand() {
	perr := env.parseError("first line\n@blod{x}")
	env.Equal(2, perr.Line)
	env.Contains(perr.Msg, "unknown command")
	env.Contains(perr.Msg, "bold")
	env.Contains(core.UserMessage(perr), "line 2")
	perr = env.parseError("@exception{x}")
	env.Contains(perr.Msg, "unknown command")
}

func (env *ErrorTestEnviron) TestInvalidName() {
	env.Contains(env.parseError("@bo ld{x}").Msg, "invalid command name")
	env.Contains(env.parseError("mail me @ home.").Msg, "invalid command name")
}

func (env *ErrorTestEnviron) TestMissingBracket() {
	env.Contains(env.parseError("@bold}").Msg, "expecting { or |{")
	env.Contains(env.parseError("@bold").Msg, "expecting { or |{")
	env.Contains(env.parseError("@}").Msg, "expected operator or list")
	env.Contains(env.parseError("x @").Msg, "expected operator or list")
	env.Contains(env.parseError("@@bold{x}").Msg, "expected operator or list")
}

func (env *ErrorTestEnviron) TestBrackets() {
	env.Contains(env.parseError("a}").Msg, "unmatched close bracket")
	env.Contains(env.parseError("@bold{x}|").Msg, "mismatched bracket")
	env.Contains(env.parseError("{a}|").Msg, "mismatched bracket")
	perr := env.parseError("@bold{x\n\ny")
	env.Contains(perr.Msg, "unexpected end")
	env.Equal(3, perr.Line)
	env.Contains(env.parseError("@math|{x").Msg, "unexpected end")
	env.Contains(env.parseError("{ a").Msg, "unexpected end")
}

func (env *ErrorTestEnviron) TestNesting() {
	regs := parameters.NewRenderingRegisters()
	regs.Push(parameters.P_MAXDEPTH, 3)
	p := New(regs)
	_, err := p.ParseString("@{@{@{x}}}")
	env.NoError(err)
	_, err = p.ParseString("@{@{@{@{x}}}}")
	var perr *ParseError
	env.Require().True(errors.As(err, &perr))
	env.Equal("nesting too deep, limit is 3", perr.Msg)
	env.Equal(core.ELIMIT, core.Code(err))
	_, err = p.ParseString("{{{{x}}}}")
	env.Equal(core.ELIMIT, core.Code(err))
}

func (env *ErrorTestEnviron) TestBadPageLink() {
	perr := env.parseError("see\n@page{not a slug}")
	env.Equal(2, perr.Line)
	env.Contains(perr.Msg, "invalid slug")
	env.Contains(env.parseError("@page{ }").Msg, "page link")
	env.Contains(env.parseError("@page{@bold{x}}").Msg, "page link")
}
