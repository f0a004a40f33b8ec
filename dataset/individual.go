package dataset

import (
	"fmt"

	"github.com/pbanos/ancestree/feature"
)

/*
Individual is a member of a population: its id, the label of its
ancestry and the set of variants it carries.
*/
type Individual struct {
	ID       string
	Label    string
	Variants feature.Set
}

// Has returns whether the individual carries the given variant.
func (i Individual) Has(f feature.Feature) bool {
	return i.Variants.Has(f)
}

func (i Individual) String() string {
	return fmt.Sprintf("%s(%s)%v", i.ID, i.Label, i.Variants)
}
