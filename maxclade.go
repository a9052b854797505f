/*
maxclade decomposes multi-labeled gene family trees (MUL-trees, where several
leaves may belong to the same species because of gene duplication) into their
maximal duplication-free clades. Each clade is emitted as an independent
newick tree suitable for quartet- or distance-based species tree methods,
which cannot consume trees with repeated species labels directly.

usage: maxclade [ -d <delim> | -f <format> | -n <procs> | -o <file> | -s <file> | -p <prefix> | -t | -h | -v ] <gene_trees>

positional arguments:

	<gene_trees>	gene family tree newick file (one tree per line)

flags:

	-d delimiter
	  	delimiter separating species name from the rest of the leaf label
	-f format
	  	gene tree format [ newick | nexus ] (default "newick")
	-h	prints this message and exits
	-n int
	  	number of parallel processes
	-o file
	  	output clade file (default stdout)
	-p prefix
	  	write largest-clade coverage plot to prefix.png
	-s file
	  	write per-tree decomposition stats csv file
	-t	include trivial clades in output
	-v	prints version number and exits

example:

	maxclade -d _ gene-trees.nwk > clades.nwk 2> log.txt
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/jsdoublel/maxclade/internal/decomp"
	gr "github.com/jsdoublel/maxclade/internal/graphs"
	pr "github.com/jsdoublel/maxclade/internal/prep"
)

const (
	Version    = "v0.2.0"
	ErrMessage = "maxclade incountered an error ::"
)

type args struct {
	delimiter    string    // species name delimiter ("" = whole label)
	gtFormat     pr.Format // gene tree file format
	geneTreeFile string    // gene family trees
	outputFile   string    // output clades ("" = stdout)
	statsFile    string    // per-tree stats csv ("" = off)
	plotPrefix   string    // coverage plot prefix ("" = off)
	trivial      bool      // include trivial clades
	nprocs       int       // number of parallel processes
}

func setNProcs(nprocs int) int {
	maxProcs := runtime.GOMAXPROCS(0)
	switch {
	case nprocs > maxProcs:
		log.Printf("%d is greater than available processes (%d); limit set to %d\n", nprocs, maxProcs, maxProcs)
		return maxProcs
	case nprocs <= 0:
		log.Printf("number of processes not set; defaulting to %d processes\n", maxProcs)
		return maxProcs
	default:
		return nprocs
	}
}

func parseArgs() args {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr,
			"usage: maxclade [ -d <delim> | -f <format> | -n <procs> | -o <file> | -s <file> | -p <prefix> | -t | -h | -v ] <gene_trees>\n",
			"\n",
			"positional arguments:\n\n",
			"  <gene_trees>\tgene family tree newick file (one tree per line)\n",
			"\n",
			"flags:\n\n",
		)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr,
			"\n",
			"example:\n\n",
			"\tmaxclade -d _ gene-trees.nwk > clades.nwk 2> log.txt\n",
		)
	}
	format := pr.Newick
	flag.Var(&format, "f", "gene tree `format` [ newick | nexus ] (default \"newick\")")
	delimiter := flag.String("d", "", "`delimiter` separating species name from the rest of the leaf label")
	outputFile := flag.String("o", "", "output clade `file` (default stdout)")
	statsFile := flag.String("s", "", "write per-tree decomposition stats csv `file`")
	plotPrefix := flag.String("p", "", "write largest-clade coverage plot to `prefix`.png")
	trivial := flag.Bool("t", false, "include trivial clades in output")
	help := flag.Bool("h", false, "prints this message and exits")
	ver := flag.Bool("v", false, "prints version number and exits")
	nprocs := flag.Int("n", 0, "number of parallel processes")
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *ver {
		fmt.Printf("maxclade version %s\n", Version)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		parserError("one positional argument required: <gene_trees>")
	}
	return args{
		delimiter:    *delimiter,
		gtFormat:     format,
		geneTreeFile: flag.Arg(0),
		outputFile:   *outputFile,
		statsFile:    *statsFile,
		plotPrefix:   *plotPrefix,
		trivial:      *trivial,
		nprocs:       setNProcs(*nprocs),
	}
}

// prints message, usage, and exits (status code 1)
func parserError(message string) {
	fmt.Fprintln(os.Stderr, message)
	flag.Usage()
	os.Exit(1)
}

// writes non-trivial (or all, with -t) clades to w; returns per-tree stats
func writeClades(w io.Writer, geneTrees *pr.GeneTrees, results []decomp.Result, includeTrivial bool) []pr.DecompStats {
	stats := make([]pr.DecompStats, 0, len(results))
	for i, res := range results {
		name := geneTrees.Names[i]
		if res.Err != nil {
			log.Printf("skipping gene tree %s: %s", name, res.Err)
			continue
		}
		st := pr.DecompStats{Gene: name, NumLeaves: gr.NumLeaves(geneTrees.Trees[i])}
		for _, clade := range res.Clades {
			if n := gr.NumLeaves(clade); n > st.LargestClade {
				st.LargestClade = n
			}
			nwk := clade.Newick()
			if decomp.Trivial(nwk) {
				st.NumTrivial++
				if !includeTrivial {
					continue
				}
			}
			st.NumClades++
			fmt.Fprintln(w, nwk)
		}
		stats = append(stats, st)
	}
	return stats
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("maxclade version %s", Version)
	args := parseArgs()
	geneTrees, err := pr.ReadGeneTrees(args.geneTreeFile, args.gtFormat)
	if err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	log.Printf("decomposing %d gene trees...", len(geneTrees.Trees))
	results, err := decomp.DecomposeAll(geneTrees.Trees, args.delimiter, args.nprocs)
	if err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	out := os.Stdout
	if args.outputFile != "" {
		out, err = os.Create(args.outputFile)
		if err != nil {
			log.Fatalf("%s %s\n", ErrMessage, err)
		}
		defer func() {
			if err := out.Close(); err != nil {
				log.Printf("error closing %s, %s", args.outputFile, err)
			}
		}()
	}
	stats := writeClades(out, geneTrees, results, args.trivial)
	if args.statsFile != "" {
		f, err := os.Create(args.statsFile)
		if err != nil {
			log.Fatalf("%s %s\n", ErrMessage, err)
		}
		if err := pr.WriteDecompStatsToCSV(stats, f); err != nil {
			log.Fatalf("%s %s\n", ErrMessage, err)
		}
		if err := f.Close(); err != nil {
			log.Printf("error closing %s, %s", args.statsFile, err)
		}
	}
	if args.plotPrefix != "" {
		if err := pr.WriteCoveragePlot(stats, args.plotPrefix); err != nil {
			log.Fatalf("%s %s\n", ErrMessage, err)
		}
	}
}
