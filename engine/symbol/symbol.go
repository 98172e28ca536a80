package symbol

import (
	"regexp"
	"sort"
	"strings"

	"github.com/derekparker/trie"
)

// Symbol is a command name. Symbols are case-sensitive.
type Symbol string

// MaxLength is the maximum length of a command name.
const MaxLength = 100

// The command vocabulary.
const (
	Paragraph   Symbol = "p"
	List        Symbol = "list"
	Math        Symbol = "math"
	DisplayMath Symbol = "Math"
	TwoCol      Symbol = "twocol"
	Note        Symbol = "note"
	MarginNote  Symbol = "margin-note"
	Italic      Symbol = "italic"
	Bold        Symbol = "bold"
	Page        Symbol = "page"
	Exception   Symbol = "exception"
)

func (sym Symbol) String() string {
	return string(sym)
}

type entry struct {
	sym      Symbol
	internal bool
}

var nameRE = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,100}$`)

var registry *trie.Trie

func init() {
	registry = trie.New()
	for _, sym := range []Symbol{Paragraph, List, Math, DisplayMath, TwoCol,
		Note, MarginNote, Italic, Bold, Page} {
		registry.Add(string(sym), entry{sym: sym})
	}
	registry.Add(string(Exception), entry{sym: Exception, internal: true})
}

// IsValidName checks the syntax of a command name, without consulting
// the registry.
func IsValidName(name string) bool {
	return nameRE.MatchString(name)
}

// Lookup returns the symbol for a command name an author may write.
// Internal symbols are not found.
func Lookup(name string) (Symbol, bool) {
	node, ok := registry.Find(name)
	if !ok {
		return "", false
	}
	e := node.Meta().(entry)
	if e.internal {
		tracer().Debugf("symbol %q is internal", name)
		return "", false
	}
	return e.sym, true
}

// IsRegistered is true for every symbol of the vocabulary, including
// internal ones.
func IsRegistered(sym Symbol) bool {
	_, ok := registry.Find(string(sym))
	return ok
}

// IsInternal is true for symbols which cannot be written by authors.
func IsInternal(sym Symbol) bool {
	node, ok := registry.Find(string(sym))
	return ok && node.Meta().(entry).internal
}

// IsGrouping is true for the symbols which group children without any
// rendering of their own.
func IsGrouping(sym Symbol) bool {
	return sym == Paragraph || sym == List
}

// All returns all registered symbols, sorted.
func All() []Symbol {
	keys := registry.Keys()
	sort.Strings(keys)
	syms := make([]Symbol, len(keys))
	for i, k := range keys {
		syms[i] = Symbol(k)
	}
	return syms
}

// Suggest proposes author-writable names resembling an unknown name.
func Suggest(name string) []string {
	if name == "" {
		return nil
	}
	candidates := registry.FuzzySearch(name)
	if len(candidates) == 0 {
		candidates = registry.PrefixSearch(name[:1])
	}
	if len(candidates) == 0 {
		candidates = registry.PrefixSearch(strings.ToLower(name[:1]))
	}
	var names []string
	for _, c := range candidates {
		if _, ok := Lookup(c); ok && c != name {
			names = append(names, c)
		}
	}
	sort.Strings(names)
	return names
}
