package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind is the type of a token.
type Kind int8

// Token kinds
const (
	Literal   Kind = iota // a run of text
	At                    // '@'
	Open                  // '{'
	RawOpen               // '|{'
	Close                 // '}'
	RawClose              // '}|'
	LineBreak             // one or more newlines
)

var kindNames = [...]string{"Literal", "At", "Open", "RawOpen", "Close", "RawClose", "LineBreak"}

func (k Kind) String() string {
	if k < Literal || k > LineBreak {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is a lexical unit of note markup.
// Literal tokens carry their text; line-break tokens carry the number of
// newlines they stand for.
type Token struct {
	Kind  Kind
	Text  string
	Count int
}

// Lit creates a literal token.
func Lit(s string) Token {
	return Token{Kind: Literal, Text: s}
}

// Breaks creates a line-break token for n newlines.
func Breaks(n int) Token {
	return Token{Kind: LineBreak, Text: "\n", Count: n}
}

var delimiters = map[Kind]string{
	At:       "@",
	Open:     "{",
	RawOpen:  "|{",
	Close:    "}",
	RawClose: "}|",
}

// Delimiter creates a token for a structural delimiter.
func Delimiter(k Kind) Token {
	return Token{Kind: k, Text: delimiters[k]}
}

// IsBracket is true for open and close tokens of either flavor.
func (t Token) IsBracket() bool {
	return t.Kind == Open || t.Kind == RawOpen || t.Kind == Close || t.Kind == RawClose
}

// IsBlank is true for literal tokens consisting of whitespace only.
func (t Token) IsBlank() bool {
	return t.Kind == Literal && strings.TrimFunc(t.Text, unicode.IsSpace) == ""
}

// Source returns the markup text the token stands for. For line breaks
// this is the collapsed run of newlines.
func (t Token) Source() string {
	if t.Kind == LineBreak {
		return strings.Repeat("\n", t.Count)
	}
	return t.Text
}

func (t Token) String() string {
	switch t.Kind {
	case Literal:
		return fmt.Sprintf("%q", t.Text)
	case LineBreak:
		return fmt.Sprintf("⏎%d", t.Count)
	}
	return t.Text
}
