/*
Notecli is an interactive playground for notes markup.

Lines entered at the prompt are rendered as a content unit of a page and
the resulting HTML is printed. A literal `\n` inside a line is taken as
a line break. Commands start with a colon:

	:tokens <markup>     print the tokens of markup
	:tree <markup>       print the syntax tree of markup
	:html <markup>       render markup, same as entering it without a command
	:titles slug=Title   add page titles for link resolution
	:links               print linked pages and their titles
	:refresh             look up titles again and re-render
	:export <file>       write the page as a standalone HTML document
	:quit

A file given with flag -file is split into content units at lines
consisting of "---".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/flynn162/epsilon-delta-notes/backend/htmlpage"
	"github.com/flynn162/epsilon-delta-notes/core"
	"github.com/flynn162/epsilon-delta-notes/engine/lexer"
	"github.com/flynn162/epsilon-delta-notes/engine/parser"
	"github.com/flynn162/epsilon-delta-notes/input/notes"
	"github.com/k0kubun/pp"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
)

// tracer traces with key 'notes.cli'
func tracer() tracing.Trace {
	return tracing.Select("notes.cli")
}

// packageTracers are the tracers of the packages driven by the CLI.
var packageTracers = []string{
	"notes.lexer",
	"notes.parser",
	"notes.tree",
	"notes.compiler",
	"notes.page",
	"notes.backend",
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level of the notes packages [Debug|Info|Error]")
	filename := flag.String("file", "", "Markup file to load")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(traceConfig(*tlevel), "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	setTraceLevel(*tlevel)
	pterm.Info.Println("Welcome to the notes markup CLI")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	repl, err := readline.New("notes > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		repl:     repl,
		renderer: notes.NewRenderer(nil),
		titles:   notes.MapResolver{},
	}
	if err := intp.loadFile(*filename); err != nil {
		pterm.Error.Println(core.Report(err))
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
}

// traceConfig configures the CLI tracer on level Info and the package
// tracers on level.
func traceConfig(level string) testconfig.Conf {
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.notes.cli": "Info",
	}
	for _, key := range packageTracers {
		conf["trace."+key] = level
	}
	return conf
}

// setTraceLevel sets the level of package tracers which have been
// created before tracing was configured.
func setTraceLevel(level string) {
	l := tracing.TraceLevelFromString(level)
	for _, key := range packageTracers {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	renderer *notes.Renderer
	titles   notes.MapResolver
	page     notes.Page
	rendered *notes.Rendered
}

func (intp *Intp) loadFile(name string) error {
	if name == "" {
		return nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "could not open markup file")
	}
	intp.page = notes.Page{Slug: "file"}
	for i, u := range strings.Split(string(data), "\n---\n") {
		intp.page.Units = append(intp.page.Units, notes.Unit{ID: strconv.Itoa(i + 1), Text: u})
	}
	pterm.Info.Printf("Loaded %s, %d units\n", name, len(intp.page.Units))
	return intp.render()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		line = strings.ReplaceAll(line, `\n`, "\n")
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.Println(core.Report(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) execute(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.renderLine(line)
	}
	cmd, arg := line, ""
	if i := strings.IndexByte(line, ' '); i > 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	tracer().Debugf("command %s, arg %q", cmd, arg)
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":tokens":
		for _, t := range lexer.Tokenize(arg) {
			fmt.Printf("%-10s %s\n", t.Kind, t)
		}
	case ":tree":
		root, err := parser.New(nil).ParseString(arg)
		if err != nil {
			return false, err
		}
		fmt.Println(root)
	case ":html":
		return false, intp.renderLine(arg)
	case ":titles":
		for _, pair := range strings.Fields(arg) {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				return false, fmt.Errorf("expected slug=Title, got %q", pair)
			}
			intp.titles[kv[0]] = kv[1]
		}
	case ":links":
		if intp.rendered == nil {
			return false, errors.New("nothing rendered yet")
		}
		pp.Println(intp.rendered.Slugs())
		pp.Println(intp.rendered.Titles())
	case ":refresh":
		if intp.rendered == nil {
			return false, errors.New("nothing rendered yet")
		}
		if err := intp.rendered.Refresh(context.Background(), intp.titles); err != nil {
			return false, err
		}
		fmt.Println(intp.rendered)
	case ":export":
		return false, intp.export(arg)
	default:
		help()
	}
	return false, nil
}

func (intp *Intp) renderLine(markup string) error {
	intp.page = notes.Page{Slug: "repl", Units: []notes.Unit{{ID: "1", Text: markup}}}
	return intp.render()
}

func (intp *Intp) render() error {
	r, err := intp.renderer.Render(context.Background(), intp.page, intp.titles)
	if err != nil {
		return errors.Wrap(err, "rendering failed")
	}
	intp.rendered = r
	for _, id := range r.Failed() {
		pterm.Warning.Printf("unit %s rendered as diagnostic\n", id)
	}
	fmt.Println(r)
	return nil
}

func (intp *Intp) export(name string) error {
	if intp.rendered == nil {
		return errors.New("nothing rendered yet")
	}
	if name == "" {
		return errors.New("usage: :export <file>")
	}
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "could not create export file")
	}
	n, err := htmlpage.Export(f, intp.rendered.Strings(), htmlpage.Options{Title: intp.page.Slug})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(err, "could not export")
	}
	pterm.Info.Printf("Wrote %s to %s\n", humanize.Bytes(uint64(n)), name)
	return nil
}

func help() {
	pterm.Info.Println(`Enter markup to render it, or one of
  :tokens <markup>  :tree <markup>  :html <markup>  :titles slug=Title ...
  :links  :refresh  :export <file>  :quit`)
}
