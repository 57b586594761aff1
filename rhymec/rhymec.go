// The rhymec command type checks a Rhyme module.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhymelang/rhyme/check"
	"github.com/rhymelang/rhyme/mod"
)

var (
	floatSize = flag.Int("float", 0, "bit size of float literals with no expected type, 32 or 64")
	trace     = flag.Bool("trace", false, "enable type checker tracing")
	verbose   = flag.Bool("v", false, "enable verbose output")
	defines   stringList
)

func init() {
	flag.Var(&defines, "D", "comma-separated directive names to define; may be repeated")
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if len(flag.Args()) != 1 {
		usage()
		os.Exit(1)
	}
	switch *floatSize {
	case 0, 32, 64:
	default:
		die("", fmt.Errorf("bad -float %d: must be 32 or 64", *floatSize))
	}
	m, err := mod.Load(flag.Args()[0])
	if err != nil {
		die("failed to load module", err)
	}
	if !compile(flag.CommandLine.Output(), m) {
		os.Exit(1)
	}
}

// compile parses and checks the module, writing errors to w.
// It returns whether there were no errors.
func compile(w io.Writer, m *mod.Mod) bool {
	vprintf("checking %s\n", m.Name)
	units, errs := m.Parse(defines...)
	for _, err := range errs {
		fmt.Fprintln(w, err)
	}
	ok := len(errs) == 0
	infos, errs := check.CheckAll(units, config(m))
	for i, info := range infos {
		for _, err := range info.Diags.Errors() {
			fmt.Fprintln(w, err)
		}
		if info.Diags.HadError() {
			ok = false
		}
		if errs[i] != nil {
			fmt.Fprintln(w, errs[i])
			ok = false
		}
	}
	if ok {
		vprintf("ok %s\n", m.Name)
	}
	return ok
}

// config returns the check configuration:
// the manifest settings overridden by flags.
func config(m *mod.Mod) check.Config {
	var cfg check.Config
	if m.Manifest != nil {
		cfg.FloatSize = m.Manifest.FloatSize
		cfg.Trace = m.Manifest.Trace
	}
	if *floatSize != 0 {
		cfg.FloatSize = *floatSize
	}
	if *trace {
		cfg.Trace = true
	}
	return cfg
}

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			*l = append(*l, d)
		}
	}
	return nil
}

func vprintf(f string, vs ...interface{}) {
	if *verbose {
		fmt.Printf(f, vs...)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
	fmt.Fprintf(out, "%s [flags] <module dir or file>\n", os.Args[0])
	flag.PrintDefaults()
}

func die(s string, err error) {
	if s == "" {
		fmt.Fprintln(flag.CommandLine.Output(), err)
	} else {
		fmt.Fprintf(flag.CommandLine.Output(), "%s: %s\n", s, err)
	}
	os.Exit(1)
}
