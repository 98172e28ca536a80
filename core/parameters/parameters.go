/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package parameters

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/schuko"
)

// RenderingParameter is a key into the rendering registers.
type RenderingParameter int

const (
	none RenderingParameter = iota
	P_PARAGRAPHS
	P_PAGELINK
	P_EDITLINK
	P_MAXDEPTH
	P_EXCERPTWIDTH
	P_STOPPER
)

var parameterNames = [...]string{
	"none",
	"P_PARAGRAPHS",
	"P_PAGELINK",
	"P_EDITLINK",
	"P_MAXDEPTH",
	"P_EXCERPTWIDTH",
	"P_STOPPER",
}

func (p RenderingParameter) String() string {
	if p < none || p > P_STOPPER {
		return fmt.Sprintf("RenderingParameter(%d)", int(p))
	}
	return parameterNames[p]
}

// Configuration keys read by FromConfig.
const (
	KeyPageLink     = "notes.pagelink"
	KeyEditLink     = "notes.editlink"
	KeyMaxDepth     = "notes.maxdepth"
	KeyExcerptWidth = "notes.excerpt"
)

type ParameterGroup struct {
	params map[RenderingParameter]interface{}
	level  int
	next   *ParameterGroup
}

// RenderingRegisters hold parameters for parsing and rendering. Values
// pushed inside a group are visible until the matching Endgroup.
type RenderingRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

func NewRenderingRegisters() *RenderingRegisters {
	regs := &RenderingRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_PARAGRAPHS] = true                  // wrap runs in paragraph divs
	p[P_PAGELINK] = "?:="                   // prefix or pattern for page links
	p[P_EDITLINK] = "edit#content-%s"       // pattern for editor links, %s = content unit
	p[P_MAXDEPTH] = 64                      // maximum command nesting
	p[P_EXCERPTWIDTH] = 60                  // display columns of a diagnostic excerpt
}

// FromConfig creates registers initialized from a configuration. Keys
// which are not set keep their defaults. Numeric keys which do not hold a
// positive integer are reported as an error, leaving the default in place.
func FromConfig(conf schuko.Configuration) (*RenderingRegisters, error) {
	regs := NewRenderingRegisters()
	if conf == nil {
		return regs, nil
	}
	if s := conf.GetString(KeyPageLink); s != "" {
		regs.base[P_PAGELINK] = s
	}
	if s := conf.GetString(KeyEditLink); s != "" {
		regs.base[P_EDITLINK] = s
	}
	var err error
	for key, p := range map[string]RenderingParameter{
		KeyMaxDepth:     P_MAXDEPTH,
		KeyExcerptWidth: P_EXCERPTWIDTH,
	} {
		s := conf.GetString(key)
		if s == "" {
			continue
		}
		n, e := strconv.Atoi(s)
		if e != nil || n <= 0 {
			err = fmt.Errorf("configuration key %s must be a positive integer, is %q", key, s)
			continue
		}
		regs.base[p] = n
	}
	return regs, err
}

func (regs *RenderingRegisters) Begingroup() {
	regs.grouplevel++
}

func (regs *RenderingRegisters) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

// Level returns the current group nesting level.
func (regs *RenderingRegisters) Level() int {
	return regs.grouplevel
}

func (regs *RenderingRegisters) Push(key RenderingParameter, value interface{}) {
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &ParameterGroup{}
			g.params = make(map[RenderingParameter]interface{})
			g.level = regs.grouplevel
			g.next = regs.groups
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

func (regs *RenderingRegisters) Get(key RenderingParameter) interface{} {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of rendering parameters")
	}
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

func (regs *RenderingRegisters) S(key RenderingParameter) string {
	return regs.Get(key).(string)
}

func (regs *RenderingRegisters) N(key RenderingParameter) int {
	return regs.Get(key).(int)
}

func (regs *RenderingRegisters) B(key RenderingParameter) bool {
	return regs.Get(key).(bool)
}

// Copy returns registers with the same base values and no open groups.
// Parameters pushed inside groups are not carried over.
func (regs *RenderingRegisters) Copy() *RenderingRegisters {
	c := &RenderingRegisters{}
	c.base = regs.base
	return c
}
