package ancestree

import (
	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
)

/*
Partition represents the split of a population on a feature into the
individuals with it and those without it, along with the information
gain the split yields about their labels.
*/
type Partition struct {
	Feature         feature.Feature
	With            *counts.Table
	Without         *counts.Table
	InformationGain float64
}

/*
NewPartition takes the label counts of a population, the label counts
of the individuals in it carrying the given feature and the feature,
and returns the partition of the population on the feature. The counts
of individuals without the feature are derived from the other two. A
counts.InconsistencyError is returned if the population does not
contain the individuals with the feature.
*/
func NewPartition(parent, with *counts.Table, f feature.Feature) (*Partition, error) {
	without, err := parent.Subtract(with)
	if err != nil {
		return nil, err
	}
	return &Partition{f, with, without, InformationGain(parent, with, without)}, nil
}

/*
InformationGain returns the entropy of the parent population minus
the entropies of the with and without subpopulations weighted by
their share of the parent. It returns 0 for an empty parent.
*/
func InformationGain(parent, with, without *counts.Table) float64 {
	if parent.Total() == 0 {
		return 0.0
	}
	total := float64(parent.Total())
	return parent.Entropy() -
		float64(with.Total())/total*with.Entropy() -
		float64(without.Total())/total*without.Entropy()
}

/*
checkSplit returns a counts.InconsistencyError for the first label
whose counts on the with and without tables do not add up to its
count on the parent table.
*/
func checkSplit(parent, with, without *counts.Table) error {
	sum := with.Add(without)
	for _, l := range sum.Universe().Union(parent.Universe()).Labels() {
		if have, want := parent.Count(l), sum.Count(l); have != want {
			return &counts.InconsistencyError{Label: l, Have: have, Want: want}
		}
	}
	return nil
}
