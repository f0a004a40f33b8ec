package tree

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T, u *counts.Universe, m map[string]int) *counts.Table {
	t.Helper()
	c, err := counts.NewTable(u, m)
	require.NoError(t, err)
	return c
}

// sampleTree is the tree for root {A:6 B:2} split on F1 into
// with {A:1 B:2} and without {A:5 B:0}.
func sampleTree(t *testing.T) *Tree {
	t.Helper()
	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	root := feature.NewPath()
	with, err := NewLeaf(root.Extend("F1", feature.With), table(t, u, map[string]int{"A": 1, "B": 2}))
	require.NoError(t, err)
	without, err := NewLeaf(root.Extend("F1", feature.Without), table(t, u, map[string]int{"A": 5}))
	require.NoError(t, err)
	n, err := NewBranch(root, table(t, u, map[string]int{"A": 6, "B": 2}), "F1", 0.5, with, without)
	require.NoError(t, err)
	return New(n, []feature.Feature{"F1", "F2"}, u)
}

func TestPredict(t *testing.T) {
	tr := sampleTree(t)

	p, err := tr.Predict(feature.NewSet())
	require.NoError(t, err)
	assert.Equal(t, "A", p.Label)
	assert.Equal(t, 5, p.Weight())
	assert.Equal(t, 1.0, p.ProbabilityOf("A"))

	p, err = tr.Predict(feature.NewSet("F1", "F2"))
	require.NoError(t, err)
	assert.Equal(t, "B", p.Label)
	assert.Equal(t, 3, p.Weight())
	assert.InDelta(t, 2.0/3.0, p.ProbabilityOf("B"), 1e-12)
	c, ok := p.Node.Criterion()
	require.True(t, ok)
	assert.Equal(t, feature.Criterion{Feature: "F1", Direction: feature.With}, c)
}

func TestPredictWithoutMatchingChild(t *testing.T) {
	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	root := feature.NewPath()
	with, err := NewLeaf(root.Extend("F1", feature.With), table(t, u, map[string]int{"B": 2}))
	require.NoError(t, err)
	n, err := NewBranch(root, table(t, u, map[string]int{"A": 6, "B": 2}), "F1", 0.5, with)
	require.NoError(t, err)
	tr := New(n, []feature.Feature{"F1"}, u)

	p, err := tr.Predict(feature.NewSet("F1"))
	require.NoError(t, err)
	assert.Equal(t, "B", p.Label)

	_, err = tr.Predict(feature.NewSet())
	var te *TraversalError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, feature.Feature("F1"), te.Feature)
	assert.Equal(t, 0, te.Path.Len())
}

func TestNewLeafOnEmptyTable(t *testing.T) {
	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	_, err = NewLeaf(feature.NewPath(), counts.Empty(u))
	assert.True(t, errors.Is(err, counts.ErrEmptyTable))
}

func TestNewBranchValidatesChildren(t *testing.T) {
	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	root := feature.NewPath()
	parent := table(t, u, map[string]int{"A": 2, "B": 2})

	tooMany, err := NewLeaf(root.Extend("F1", feature.With), table(t, u, map[string]int{"A": 3}))
	require.NoError(t, err)
	_, err = NewBranch(root, parent, "F1", 0.1, tooMany)
	var ie *counts.InconsistencyError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "A", ie.Label)

	other, err := NewLeaf(root.Extend("F2", feature.With), table(t, u, map[string]int{"A": 1}))
	require.NoError(t, err)
	_, err = NewBranch(root, parent, "F1", 0.1, other)
	assert.Error(t, err)

	deep, err := NewLeaf(root.Extend("F2", feature.With).Extend("F1", feature.With), table(t, u, map[string]int{"A": 1}))
	require.NoError(t, err)
	_, err = NewBranch(root, parent, "F1", 0.1, deep)
	assert.Error(t, err)

	with, err := NewLeaf(root.Extend("F1", feature.With), table(t, u, map[string]int{"A": 1}))
	require.NoError(t, err)
	_, err = NewBranch(root, parent, "F1", 0.1, with, with)
	assert.Error(t, err)

	_, err = NewBranch(root, parent, "F1", 0.1)
	assert.Error(t, err)
}

func TestTraverse(t *testing.T) {
	tr := sampleTree(t)
	var topdown, bottomup []string
	require.NoError(t, tr.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		topdown = append(topdown, n.Path().String())
		return nil
	}))
	require.NoError(t, tr.Traverse(context.Background(), true, func(_ context.Context, n *Node) error {
		bottomup = append(bottomup, n.Path().String())
		return nil
	}))
	assert.Equal(t, []string{"root", "with:F1", "w/o:F1"}, topdown)
	assert.Equal(t, []string{"with:F1", "w/o:F1", "root"}, bottomup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, tr.Traverse(ctx, false, func(context.Context, *Node) error { return nil }))

	assert.Equal(t, 1, tr.Depth())
	assert.Len(t, tr.Leaves(), 2)
}

func TestString(t *testing.T) {
	s := sampleTree(t).String()
	assert.True(t, strings.HasPrefix(s, "[root]\n{ A {A:6 B:2} }\n"))
	assert.Contains(t, s, "|__[with:F1]")
	assert.Contains(t, s, "|__[w/o:F1]")
}
