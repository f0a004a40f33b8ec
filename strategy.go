package ancestree

import (
	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
)

// DefaultMinimumGain is the information gain a split must exceed
// for a node to be developed by default.
const DefaultMinimumGain = 1e-8

// Strategy holds the configuration for when a node
// must not be split and become a leaf instead.
type Strategy struct {
	// MinimumGain is the information gain the best
	// partition of a node must exceed for the node
	// to be split. Partitions with an equal or lower
	// gain are considered uninformative.
	MinimumGain float64
}

// DefaultStrategy returns a Strategy with DefaultMinimumGain.
func DefaultStrategy() *Strategy {
	return &Strategy{MinimumGain: DefaultMinimumGain}
}

/*
Stop takes the label counts of a node, its path, the number of features
available to the tree and the best partition found for the node, which
may be nil if none could be made. It returns true and the reason when
the node must be a leaf, that is, when any of the following holds:
  - at most one label has individuals on the node
  - every feature has been used on the path
  - no partition was found
  - the partition gain does not exceed MinimumGain
*/
func (s *Strategy) Stop(c *counts.Table, p feature.Path, featureCount int, best *Partition) (string, bool) {
	switch {
	case c.Pure():
		return "pure population", true
	case p.Len() >= featureCount:
		return "no features left", true
	case best == nil:
		return "no partition available", true
	case best.InformationGain <= s.MinimumGain:
		return "uninformative partition", true
	}
	return "", false
}
