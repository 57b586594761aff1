// The rhymei command interactively type checks Rhyme declarations.
//
// Each complete input is checked along with all previously accepted input.
// Input with errors is reported and discarded.
// The :src command prints the accepted source and :reset discards it.
// Enter :quit or end of input to exit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/rhymelang/rhyme/check"
)

const historyFile = ".rhymei_history"

var (
	floatSize = flag.Int("float", 0, "bit size of float literals with no expected type, 32 or 64")
	trace     = flag.Bool("trace", false, "enable type checker tracing")
	defines   stringList
)

func init() {
	flag.Var(&defines, "D", "comma-separated directive names to define; may be repeated")
}

func main() {
	flag.Parse()
	switch *floatSize {
	case 0, 32, 64:
	default:
		fmt.Fprintf(os.Stderr, "bad -float %d: must be 32 or 64\n", *floatSize)
		os.Exit(1)
	}
	s := &session{
		cfg:     check.Config{FloatSize: *floatSize, Trace: *trace},
		defines: defines,
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, ok := read(ln, s)
		if !ok {
			fmt.Println()
			return
		}
		switch strings.TrimSpace(input) {
		case "":
			continue
		case ":quit":
			return
		case ":reset":
			s.reset()
			continue
		case ":src":
			fmt.Print(s.src)
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		lines, errs := s.eval(input)
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	}
}

// read reads lines until they form a complete input.
// It returns false at end of input or if reading was aborted.
func read(ln *liner.State, s *session) (string, bool) {
	var b strings.Builder
	for {
		prompt := "> "
		if b.Len() > 0 {
			prompt = ". "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		input := b.String()
		if strings.HasPrefix(strings.TrimSpace(input), ":") || !s.incomplete(input) {
			return input, true
		}
	}
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
