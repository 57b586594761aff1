package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rhymelang/rhyme/ast"
	"github.com/rhymelang/rhyme/resolve"
)

const listSrc = `i32 x = 1;
#if DEBUG {
	str mode = "debug";
} #else {
	i32 mode = 0;
}
`

func TestList(t *testing.T) {
	tests := []struct {
		name    string
		defines []string
		all     bool
		want    []string
	}{
		{
			name: "else active",
			want: []string{
				"test.rhy:1.1: i32 x = 1 : i32",
				"test.rhy:2.1: #if DEBUG",
				"\ttest.rhy:5.2: i32 mode = 0 : i32",
			},
		},
		{
			name:    "then active",
			defines: []string{"DEBUG"},
			want: []string{
				"test.rhy:1.1: i32 x = 1 : i32",
				"test.rhy:2.1: #if DEBUG",
				"\ttest.rhy:3.2: str mode = \"debug\" : str",
			},
		},
		{
			name: "all",
			all:  true,
			want: []string{
				"test.rhy:1.1: i32 x = 1 : i32",
				"test.rhy:2.1: #if DEBUG",
				"\ttest.rhy:3.2: str mode = \"debug\"",
				"#else",
				"\ttest.rhy:5.2: i32 mode = 0 : i32",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func(old bool) { *all = old }(*all)
			*all = test.all

			u, err := ast.Parse("test.rhy", strings.NewReader(listSrc))
			if err != nil {
				t.Fatalf("failed to parse: %s", err)
			}
			resolve.Directives(u, test.defines)
			var b bytes.Buffer
			list(&b, u)
			got := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("list differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListDiagnostics(t *testing.T) {
	u, err := ast.Parse("test.rhy", strings.NewReader("str s = 1;\n"))
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	resolve.Directives(u, nil)
	var b bytes.Buffer
	list(&b, u)
	want := []string{
		"test.rhy:1.1: str s = 1",
		"test.rhy:1.5: can't initialize a binding of type 'str' with a value of type 'i32'",
	}
	got := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list differs (-want +got):\n%s", diff)
	}
}
