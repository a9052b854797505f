package prep

import (
	"bytes"
	"math"
	"testing"
)

func TestWriteDecompStatsToCSV(t *testing.T) {
	stats := []DecompStats{
		{Gene: "1", NumClades: 2, NumTrivial: 1, LargestClade: 5, NumLeaves: 8},
		{Gene: "2", NumClades: 1, NumTrivial: 0, LargestClade: 4, NumLeaves: 4},
	}
	expected := "gene,clades,trivial,largest clade,leaves\n" +
		"1,2,1,5,8\n" +
		"2,1,0,4,4\n"
	buf := bytes.Buffer{}
	if err := WriteDecompStatsToCSV(stats, &buf); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if buf.String() != expected {
		t.Errorf("result != expected,\n%s\n!=\n%s", buf.String(), expected)
	}
}

func TestCoverage(t *testing.T) {
	if cov := (DecompStats{LargestClade: 5, NumLeaves: 8}).Coverage(); cov != 62.5 {
		t.Errorf("coverage is %f, expected 62.5", cov)
	}
	if cov := (DecompStats{}).Coverage(); !math.IsNaN(cov) {
		t.Errorf("coverage of an empty record is %f, expected NaN", cov)
	}
}
