package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type state int8

const (
	stateText        state = iota // reading literal text
	stateCloseCand                // saw '}', might become '}|'
	statePipeCand                 // saw '|', might become '|{'
	stateLineBreaks               // counting newlines
)

// eof is fed to the state machine once at the end of input.
const eof rune = -1

// Lexer produces tokens from a text, lazily. A lexer consumes its input
// once and cannot be restarted.
type Lexer struct {
	input string
	pos   int
	state state
	buf   strings.Builder
	count int // newlines counted in stateLineBreaks
	queue []Token
	done  bool
}

// New creates a lexer for text.
func New(text string) *Lexer {
	return &Lexer{input: text}
}

// Tokenize splits text into tokens.
func Tokenize(text string) []Token {
	lx := New(text)
	tokens := make([]Token, 0, 16)
	for t, ok := lx.Next(); ok; t, ok = lx.Next() {
		tokens = append(tokens, t)
	}
	return tokens
}

// Next returns the next token. The second return value is false once the
// input is exhausted.
func (lx *Lexer) Next() (Token, bool) {
	for len(lx.queue) == 0 {
		if lx.done {
			return Token{}, false
		}
		if lx.pos < len(lx.input) {
			r, size := utf8.DecodeRuneInString(lx.input[lx.pos:])
			lx.pos += size
			lx.process(r)
		} else {
			lx.process(eof)
			lx.done = true
		}
	}
	t := lx.queue[0]
	lx.queue = lx.queue[1:]
	return t, true
}

func (lx *Lexer) process(r rune) {
	var next state
	switch lx.state {
	case stateText:
		next = lx.onText(r)
	case stateCloseCand:
		next = lx.onCloseCandidate(r)
	case statePipeCand:
		next = lx.onPipeCandidate(r)
	case stateLineBreaks:
		next = lx.onLineBreak(r)
	}
	if next != lx.state {
		tracer().Debugf("lexer state %d -> %d at offset %d", lx.state, next, lx.pos)
		lx.state = next
	}
}

func (lx *Lexer) onText(r rune) state {
	switch r {
	case eof:
		lx.flush()
	case '@':
		lx.emit(Delimiter(At))
	case '{':
		lx.emit(Delimiter(Open))
	case '\r':
	case '}':
		return stateCloseCand
	case '|':
		return statePipeCand
	case '\n':
		lx.count = 1
		return stateLineBreaks
	default:
		lx.buf.WriteRune(r)
	}
	return stateText
}

func (lx *Lexer) onCloseCandidate(r rune) state {
	if r == '|' {
		lx.emit(Delimiter(RawClose))
		return stateText
	}
	lx.emit(Delimiter(Close))
	return lx.onText(r)
}

func (lx *Lexer) onPipeCandidate(r rune) state {
	if r == '{' {
		lx.emit(Delimiter(RawOpen))
		return stateText
	}
	lx.buf.WriteRune('|')
	return lx.onText(r)
}

func (lx *Lexer) onLineBreak(r rune) state {
	if r == '\n' {
		lx.count++
		return stateLineBreaks
	}
	if r != eof && unicode.IsSpace(r) {
		return stateLineBreaks
	}
	lx.emit(Breaks(lx.count))
	lx.count = 0
	return lx.onText(r)
}

// emit flushes pending literal text, then queues t.
func (lx *Lexer) emit(t Token) {
	lx.flush()
	lx.queue = append(lx.queue, t)
}

func (lx *Lexer) flush() {
	if lx.buf.Len() > 0 {
		lx.queue = append(lx.queue, Lit(lx.buf.String()))
		lx.buf.Reset()
	}
}

// Collapse re-scans a token sequence for line-break runs: adjacent line
// breaks are merged, and whitespace-only literals between two line breaks
// are absorbed into the run. Empty literals are dropped.
//
// Output of Tokenize is already collapsed, and Collapse is idempotent.
func Collapse(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == Literal && t.Text == "" {
			continue
		}
		if t.Kind != LineBreak {
			out = append(out, t)
			continue
		}
		k := len(out) - 1
		for k >= 0 && out[k].IsBlank() {
			k--
		}
		if k >= 0 && out[k].Kind == LineBreak {
			out = out[:k+1]
			out[k].Count += t.Count
			continue
		}
		out = append(out, t)
	}
	return out
}
