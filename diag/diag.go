// Package diag collects positioned diagnostics.
package diag

import (
	"fmt"
	"strings"

	"github.com/rhymelang/rhyme/loc"
)

// A Diagnostic is a positioned error message.
type Diagnostic struct {
	Loc   loc.Loc
	Msg   string
	Notes []string
}

// Note appends a note to the diagnostic.
func (d *Diagnostic) Note(f string, vs ...interface{}) {
	d.Notes = append(d.Notes, fmt.Sprintf(f, vs...))
}

func (d *Diagnostic) Error() string {
	var s strings.Builder
	s.WriteString(d.Loc.String())
	s.WriteString(": ")
	s.WriteString(d.Msg)
	for _, n := range d.Notes {
		s.WriteString("\n\t")
		s.WriteString(n)
	}
	return s.String()
}

// A Sink is an ordered collection of diagnostics.
// The zero value is an empty Sink.
// A Sink is not safe for concurrent use.
type Sink struct {
	diags    []*Diagnostic
	hadError bool
}

// Errorf adds a diagnostic and returns it so that notes may be added.
func (s *Sink) Errorf(l loc.Loc, f string, vs ...interface{}) *Diagnostic {
	d := &Diagnostic{Loc: l, Msg: fmt.Sprintf(f, vs...)}
	s.diags = append(s.diags, d)
	s.hadError = true
	return d
}

// HadError returns whether any diagnostic was ever added.
func (s *Sink) HadError() bool { return s.hadError }

// Len returns the number of diagnostics.
func (s *Sink) Len() int { return len(s.diags) }

// Diagnostics returns the diagnostics in the order they were added.
func (s *Sink) Diagnostics() []*Diagnostic {
	return append([]*Diagnostic(nil), s.diags...)
}

// Errors returns the diagnostics as errors, in the order they were added.
func (s *Sink) Errors() []error {
	var errs []error
	for _, d := range s.diags {
		errs = append(errs, d)
	}
	return errs
}
