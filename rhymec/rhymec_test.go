package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/rhymelang/rhyme/mod"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		defines []string
		ok      bool
		out     string // regexp
	}{
		{
			name: "ok",
			files: map[string]string{
				"a.rhy": `i32 f(i32 a) { return a + 1; }`,
				"b.rhy": `var x = 1;`,
			},
			ok:  true,
			out: "^$",
		},
		{
			name: "type error",
			files: map[string]string{
				"a.rhy": `i32 f() { return "x"; }`,
			},
			out: `a.rhy:1.18: can't return a value of type 'str', 'i32' expected`,
		},
		{
			name: "parse error",
			files: map[string]string{
				"a.rhy": `i32 f( {`,
			},
			out: `a.rhy:1`,
		},
		{
			name: "manifest defines",
			files: map[string]string{
				"rhyme.yaml": "defines: [WIDE]\n",
				"a.rhy":      `#if WIDE { i64 n = 1; } #else { i32 n = "no"; }`,
			},
			ok:  true,
			out: "^$",
		},
		{
			name: "flag defines",
			files: map[string]string{
				"a.rhy": `#if !WIDE { i32 n = "no"; }`,
			},
			defines: []string{"WIDE"},
			ok:      true,
			out:     "^$",
		},
		{
			name: "manifest float size",
			files: map[string]string{
				"rhyme.yaml": "float_size: 32\n",
				"a.rhy":      `var f = 1.5; f32 g = f;`,
			},
			ok:  true,
			out: "^$",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir, err := ioutil.TempDir("", "rhymec_test")
			if err != nil {
				t.Fatalf("failed to create temp dir: %s", err)
			}
			defer os.RemoveAll(dir)
			for name, body := range test.files {
				if err := ioutil.WriteFile(filepath.Join(dir, name), []byte(body), 0666); err != nil {
					t.Fatalf("failed to write %s: %s", name, err)
				}
			}
			m, err := mod.Load(dir)
			if err != nil {
				t.Fatalf("failed to load module: %s", err)
			}

			defines = test.defines
			defer func() { defines = nil }()
			var out strings.Builder
			if ok := compile(&out, m); ok != test.ok {
				t.Errorf("compile()=%v, want %v:\n%s", ok, test.ok, out.String())
			}
			if !regexp.MustCompile(test.out).MatchString(out.String()) {
				t.Errorf("got output %q, expected matching %s", out.String(), test.out)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	var l stringList
	for _, s := range []string{"A", "B, C", ",D,"} {
		if err := l.Set(s); err != nil {
			t.Fatalf("Set(%q) failed: %s", s, err)
		}
	}
	if got, want := l.String(), "A,B,C,D"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
