package tree

import (
	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/pkg/errors"
)

/*
Node is a node of the tree
*/
type Node struct {
	// The criteria that lead from the root to this node.
	// It is empty for the root.
	path feature.Path
	// The label counts of the training population that
	// satisfies the criteria on the path.
	counts   *counts.Table
	majority string
	// The feature on which nodes directly under this node
	// impose a constraint, if any.
	subtreeFeature  feature.Feature
	informationGain float64
	children        []*Node
}

/*
NewLeaf takes the path from the root to a node and the label counts of
the population reaching it and returns a node without children. It
returns counts.ErrEmptyTable if the table is empty, as no label
could be predicted from the node.
*/
func NewLeaf(path feature.Path, c *counts.Table) (*Node, error) {
	majority, err := c.MajorityLabel()
	if err != nil {
		return nil, errors.Wrapf(err, "creating node at %v", path)
	}
	return &Node{path: path, counts: c, majority: majority}, nil
}

/*
NewBranch takes the path from the root to a node, the label counts of
the population reaching it, the feature its children split on, the
information gain of that split and the children themselves, and
returns a node owning them.

Every child must be one criterion on the split feature further down
the path than the node, and there cannot be two children in the same
direction. The children populations cannot add up to more individuals
of a label than the node has: a counts.InconsistencyError is returned
if they do.
*/
func NewBranch(path feature.Path, c *counts.Table, split feature.Feature, gain float64, children ...*Node) (*Node, error) {
	n, err := NewLeaf(path, c)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, errors.Errorf("creating node at %v: split on %s without children", path, split)
	}
	sum := counts.Empty(c.Universe())
	seen := make(map[feature.Direction]bool, 2)
	for _, child := range children {
		if child.path.Len() != path.Len()+1 || !child.path.Prefix(path.Len()).Equal(path) {
			return nil, errors.Errorf("creating node at %v: child at %v is not directly under it", path, child.path)
		}
		last, _ := child.path.Last()
		if last.Feature != split {
			return nil, errors.Errorf("creating node at %v: child at %v does not split on %s", path, child.path, split)
		}
		if seen[last.Direction] {
			return nil, errors.Errorf("creating node at %v: more than one child %s %s", path, last.Direction, split)
		}
		seen[last.Direction] = true
		sum = sum.Add(child.counts)
	}
	if _, err = c.Subtract(sum); err != nil {
		return nil, errors.Wrapf(err, "creating node at %v: children of split on %s", path, split)
	}
	n.subtreeFeature = split
	n.informationGain = gain
	n.children = append([]*Node(nil), children...)
	return n, nil
}

// Path returns the criteria that lead from the root to the node.
func (n *Node) Path() feature.Path {
	return n.path
}

/*
Criterion returns the constraint this node imposes on samples: the
last criterion on its path. It returns false for the root.
*/
func (n *Node) Criterion() (feature.Criterion, bool) {
	return n.path.Last()
}

// Counts returns the label counts of the population reaching the node.
func (n *Node) Counts() *counts.Table {
	return n.counts
}

// Total returns the number of individuals reaching the node.
func (n *Node) Total() int {
	return n.counts.Total()
}

// MajorityLabel returns the most common label among individuals reaching the node.
func (n *Node) MajorityLabel() string {
	return n.majority
}

/*
SubtreeFeature returns the feature the children of the node split on,
or the empty feature for leaves.
*/
func (n *Node) SubtreeFeature() feature.Feature {
	return n.subtreeFeature
}

// InformationGain returns the information gain of the split on SubtreeFeature.
func (n *Node) InformationGain() float64 {
	return n.informationGain
}

// Children returns the nodes directly under this node.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Leaf returns whether the node has no children.
func (n *Node) Leaf() bool {
	return len(n.children) == 0
}
