// Package used for reading gene family tree files and writing decomposition
// results
package prep

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/io/nexus"
	"github.com/evolbioinfo/gotree/tree"
)

var (
	ErrInvalidFile   = errors.New("invalid file")
	ErrInvalidFormat = errors.New("invalid format")
	ErrWritingFile   = errors.New("error writing file")
)

type Format int

const (
	Newick Format = iota
	Nexus
)

var ParseFormat = map[string]Format{
	"newick": Newick,
	"nexus":  Nexus,
}

func (f *Format) Set(s string) error {
	format, ok := ParseFormat[s]
	if !ok {
		return fmt.Errorf("\"%s\" is not a valid gene tree file format", s)
	}
	*f = format
	return nil
}

func (f Format) String() string {
	for s, fr := range ParseFormat {
		if fr == f {
			return s
		}
	}
	panic(fmt.Sprintf("format (%d) does not exist", f))
}

type GeneTrees struct {
	Trees []*tree.Tree // gene family trees (leaf labels may repeat species)
	Names []string     // gene names
}

// Reads and validates the gene family tree file. Branch lengths and supports
// are kept as-is; they are passed through to the output untouched. Returns
// an error if a tree is not valid newick/nexus or the file is empty.
func ReadGeneTrees(genetreesFile string, format Format) (*GeneTrees, error) {
	flags := log.Flags()
	lout := log.Writer()
	log.SetOutput(io.Discard) // don't log this bit as gotree can be noisy and lead to thousands of log messages
	defer func() {
		log.SetOutput(lout)
		log.SetFlags(flags)
	}()
	file, err := os.Open(genetreesFile)
	if err != nil {
		return nil, fmt.Errorf("error opening %s, %w", genetreesFile, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			panic(fmt.Sprintf("could not close file %s, %s", genetreesFile, err))
		}
	}()
	geneTreeList := make([]*tree.Tree, 0)
	geneTreeNames := make([]string, 0)
	switch format {
	case Newick:
		scanner := bufio.NewScanner(file)
		for i := 1; scanner.Scan(); i++ {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			genetree, err := newick.NewParser(bytes.NewReader(line)).Parse()
			if err != nil {
				return nil, fmt.Errorf("%w, error reading gene tree on line %d in %s: %s",
					ErrInvalidFormat, i, genetreesFile, err.Error())
			}
			genetree.ClearComments()
			geneTreeList = append(geneTreeList, genetree)
			geneTreeNames = append(geneTreeNames, strconv.Itoa(len(geneTreeList)))
		}
	case Nexus:
		nex, err := nexus.NewParser(file).Parse()
		if err != nil {
			return nil, fmt.Errorf("%w, error reading gene tree nexus file %s: %s",
				ErrInvalidFormat, genetreesFile, err.Error())
		}
		nex.IterateTrees(func(s string, t *tree.Tree) {
			t.ClearComments()
			geneTreeList = append(geneTreeList, t)
			geneTreeNames = append(geneTreeNames, s)
		})
	default:
		return nil, fmt.Errorf("%w, not a valid file format", ErrInvalidFile)
	}
	if len(geneTreeList) < 1 {
		return nil, fmt.Errorf("%w, empty gene tree file %s", ErrInvalidFile, genetreesFile)
	}
	return &GeneTrees{Trees: geneTreeList, Names: geneTreeNames}, nil
}
