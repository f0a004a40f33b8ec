package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
)

// Tree represents a decision tree. It is composed of the
// root node, which owns the rest of the nodes, the features
// it may split on and the universe of labels it predicts.
type Tree struct {
	root     *Node
	features []feature.Feature
	labels   *counts.Universe
}

// New takes the root Node, the features available to split
// nodes and the label universe and returns a tree.
func New(root *Node, features []feature.Feature, labels *counts.Universe) *Tree {
	return &Tree{root, append([]feature.Feature(nil), features...), labels}
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Features returns the features the tree could split on.
func (t *Tree) Features() []feature.Feature {
	return append([]feature.Feature(nil), t.features...)
}

// Labels returns the universe of labels the tree predicts.
func (t *Tree) Labels() *counts.Universe {
	return t.labels
}

// Predict takes a sample and returns a prediction according to the tree and an
// error if the prediction could not be made.
// Starting at the root, it descends to the child whose criterion the sample
// satisfies until it reaches a node without children, whose majority label is
// the prediction. A node with children none of which matches the sample causes
// a *TraversalError.
func (t *Tree) Predict(s feature.Sample) (*Prediction, error) {
	if t == nil || t.root == nil {
		return nil, fmt.Errorf("nil tree cannot predict samples")
	}
	n := t.root
	for !n.Leaf() {
		var selectedNode *Node
		for _, child := range n.children {
			c, _ := child.Criterion()
			if c.SatisfiedBy(s) {
				selectedNode = child
				break
			}
		}
		if selectedNode == nil {
			return nil, &TraversalError{Path: n.path, Feature: n.subtreeFeature}
		}
		n = selectedNode
	}
	return &Prediction{Label: n.majority, Node: n}, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
// Otherwise, when the traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	return t.traverse(ctx, t.root, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		if err = f(ctx, n); err != nil {
			return err
		}
	}
	for _, sn := range n.children {
		if err = t.traverse(ctx, sn, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

// Depth returns the length of the longest path from the root to a leaf.
func (t *Tree) Depth() int {
	var depth int
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		if n.path.Len() > depth {
			depth = n.path.Len()
		}
		return nil
	})
	return depth
}

// Leaves returns the nodes of the tree without children, with-branches first.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		if n.Leaf() {
			leaves = append(leaves, n)
		}
		return nil
	})
	return leaves
}

func (t *Tree) String() string {
	return subtreeString(t.root)
}

func subtreeString(n *Node) string {
	result := "[root]\n"
	if c, ok := n.Criterion(); ok {
		result = fmt.Sprintf("[%v]\n", c)
	}
	result = fmt.Sprintf("%s{ %s %v }\n", result, n.majority, n.counts)
	if n.subtreeFeature != "" {
		result = fmt.Sprintf("%s{ split=%s informationGain=%f }\n", result, n.subtreeFeature, n.informationGain)
	}
	if len(n.children) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	} else {
		result = fmt.Sprintf("%s \n", result)
	}
	for i, child := range n.children {
		for j, line := range strings.Split(subtreeString(child), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(n.children)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
