package decomp

import (
	"fmt"
	"strings"
)

// SpeciesResolver interns the species identity of leaf labels. When a
// delimiter is set, the species name is the part of the label before its
// first occurrence (e.g. "gorilla_copy2" -> "gorilla" with delimiter "_");
// otherwise the whole label is the species name. Ids are dense and start at
// zero, so they double as bitset indices.
type SpeciesResolver struct {
	delimiter string
	ids       map[string]uint
}

func NewSpeciesResolver(delimiter string) *SpeciesResolver {
	return &SpeciesResolver{delimiter: delimiter, ids: make(map[string]uint)}
}

// Resolve returns the species id for a leaf label, assigning the next free id
// to species seen for the first time. A label without the configured
// delimiter is an error; treating the full label as the species would mask
// true duplications or fabricate false ones.
func (sr *SpeciesResolver) Resolve(label string) (uint, error) {
	name := label
	if sr.delimiter != "" {
		before, _, found := strings.Cut(label, sr.delimiter)
		if !found {
			return 0, fmt.Errorf("%w, leaf %q does not contain delimiter %q", ErrBadLabel, label, sr.delimiter)
		}
		name = before
	}
	if id, ok := sr.ids[name]; ok {
		return id, nil
	}
	id := uint(len(sr.ids))
	sr.ids[name] = id
	return id, nil
}

// NumSpecies reports how many distinct species have been resolved so far.
func (sr *SpeciesResolver) NumSpecies() int {
	return len(sr.ids)
}
