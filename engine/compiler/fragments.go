package compiler

import (
	"strings"

	"github.com/npillmayer/cords"
)

// Fragments is the output of a compilation, an ordered sequence of HTML
// fragments. Fragments are held as leaves of a cord.
type Fragments struct {
	text  cords.Cord
	count int
}

// Cord returns the fragments as a cord.
func (f Fragments) Cord() cords.Cord {
	return f.text
}

// Len returns the number of fragments.
func (f Fragments) Len() int {
	return f.count
}

// Strings returns the fragments in order.
func (f Fragments) Strings() []string {
	frags := make([]string, 0, f.count)
	if f.count == 0 {
		return frags
	}
	_ = f.text.EachLeaf(func(l cords.Leaf, pos uint64) error {
		frags = append(frags, l.String())
		return nil
	})
	return frags
}

// String concatenates all fragments.
func (f Fragments) String() string {
	return strings.Join(f.Strings(), "")
}

// Size returns the length of the HTML output in bytes.
func (f Fragments) Size() uint64 {
	var size uint64
	if f.count > 0 {
		_ = f.text.EachLeaf(func(l cords.Leaf, pos uint64) error {
			size += l.Weight()
			return nil
		})
	}
	return size
}

// --- Leaf ------------------------------------------------------------------

// fragment is the leaf type of output cords.
type fragment string

// Weight of a fragment is its length in bytes.
func (f fragment) Weight() uint64 {
	return uint64(len(f))
}

func (f fragment) String() string {
	return string(f)
}

// Split splits a fragment at position i, resulting in 2 new fragments.
func (f fragment) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return f[:i], f[i:]
}

// Substring returns a segment of the fragment's text.
func (f fragment) Substring(i, j uint64) []byte {
	return []byte(f[i:j])
}

var _ cords.Leaf = fragment("")

// --- Output buffer ---------------------------------------------------------

type output struct {
	b     *cords.Builder
	count int
	err   error // first error from the cord builder
}

func newOutput() *output {
	return &output{b: cords.NewBuilder()}
}

// emit appends a fragment. Empty strings are not appended. The builder
// refuses fragments once the cord has been completed; the first such
// error is kept and reported by fragments.
func (o *output) emit(s string) {
	if s == "" || o.err != nil {
		return
	}
	if err := o.b.Append(fragment(s)); err != nil {
		o.err = err
		return
	}
	o.count++
}

func (o *output) fragments() (Fragments, error) {
	if o.err != nil {
		return Fragments{}, o.err
	}
	return Fragments{text: o.b.Cord(), count: o.count}, nil
}
