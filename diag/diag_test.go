package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rhymelang/rhyme/loc"
)

func TestSinkOrder(t *testing.T) {
	var s Sink
	if s.HadError() {
		t.Fatalf("empty sink had error")
	}
	s.Errorf(loc.Loc{Path: "b.rhy", Line: 9, Col: 1}, "second %d", 2)
	s.Errorf(loc.Loc{Path: "a.rhy", Line: 1, Col: 4}, "first")
	if !s.HadError() {
		t.Fatalf("HadError()=false after Errorf")
	}
	var got []string
	for _, err := range s.Errors() {
		got = append(got, err.Error())
	}
	want := []string{"b.rhy:9.1: second 2", "a.rhy:1.4: first"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics differ (-want +got):\n%s", diff)
	}
	if s.Len() != 2 {
		t.Errorf("Len()=%d, want 2", s.Len())
	}
}

func TestNotes(t *testing.T) {
	var s Sink
	d := s.Errorf(loc.Loc{Path: "x.rhy", Line: 3, Col: 2}, "f redefined")
	d.Note("previous definition is at %s", loc.Loc{Path: "x.rhy", Line: 1, Col: 1})
	want := "x.rhy:3.2: f redefined\n\tprevious definition is at x.rhy:1.1"
	if got := s.Diagnostics()[0].Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiagnosticsCopy(t *testing.T) {
	var s Sink
	s.Errorf(loc.Loc{}, "x")
	ds := s.Diagnostics()
	ds[0] = nil
	if s.Diagnostics()[0] == nil {
		t.Errorf("Diagnostics() returned the internal slice")
	}
}
