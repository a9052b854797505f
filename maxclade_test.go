package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"

	"github.com/jsdoublel/maxclade/internal/decomp"
	pr "github.com/jsdoublel/maxclade/internal/prep"
)

func TestWriteClades(t *testing.T) {
	geneTrees := &pr.GeneTrees{
		Trees: []*tree.Tree{
			parseNewick(t, "((a_1,b_1),(a_2,c_1));"),
			parseNewick(t, "((a,b),(c,d));"),
			parseNewick(t, "(x,y);"),
		},
		Names: []string{"1", "2", "3"},
	}
	results := []decomp.Result{
		{Clades: []*tree.Tree{parseNewick(t, "(a_1,b_1,c_1);"), parseNewick(t, "(b_1,a_2,c_1);")}},
		{Clades: []*tree.Tree{parseNewick(t, "((a,b),c,d);")}},
		{Err: decomp.ErrDegenerate},
	}
	testCases := []struct {
		name     string
		trivial  bool
		expOut   string
		expStats []pr.DecompStats
	}{
		{
			name:    "trivial clades dropped",
			trivial: false,
			expOut:  "((a,b),c,d);\n",
			expStats: []pr.DecompStats{
				{Gene: "1", NumClades: 0, NumTrivial: 2, LargestClade: 3, NumLeaves: 4},
				{Gene: "2", NumClades: 1, NumTrivial: 0, LargestClade: 4, NumLeaves: 4},
			},
		},
		{
			name:    "trivial clades kept",
			trivial: true,
			expOut:  "(a_1,b_1,c_1);\n(b_1,a_2,c_1);\n((a,b),c,d);\n",
			expStats: []pr.DecompStats{
				{Gene: "1", NumClades: 2, NumTrivial: 2, LargestClade: 3, NumLeaves: 4},
				{Gene: "2", NumClades: 1, NumTrivial: 0, LargestClade: 4, NumLeaves: 4},
			},
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			buf := bytes.Buffer{}
			stats := writeClades(&buf, geneTrees, results, test.trivial)
			if buf.String() != test.expOut {
				t.Errorf("output != expected,\n%s\n!=\n%s", buf.String(), test.expOut)
			}
			if !reflect.DeepEqual(stats, test.expStats) {
				t.Errorf("stats %v != expected %v", stats, test.expStats)
			}
		})
	}
}

func parseNewick(t *testing.T, nwk string) *tree.Tree {
	t.Helper()
	tre, err := newick.NewParser(strings.NewReader(nwk)).Parse()
	if err != nil {
		t.Fatal("invalid newick tree; test is written wrong")
	}
	return tre
}
