package dot

import (
	"bytes"
	"context"
	"testing"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/pbanos/ancestree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T) *tree.Tree {
	u, err := counts.NewUniverse("AFR", "EUR")
	require.NoError(t, err)
	table := func(a, b int) *counts.Table {
		c, err := counts.NewTable(u, map[string]int{"AFR": a, "EUR": b})
		require.NoError(t, err)
		return c
	}
	root := feature.NewPath()
	with, err := tree.NewLeaf(root.Extend("22:9:10", feature.With), table(1, 2))
	require.NoError(t, err)
	without, err := tree.NewLeaf(root.Extend("22:9:10", feature.Without), table(5, 0))
	require.NoError(t, err)
	n, err := tree.NewBranch(root, table(6, 2), "22:9:10", 0.4669, with, without)
	require.NoError(t, err)
	return tree.New(n, []feature.Feature{"22:9:10"}, u)
}

func TestGraph(t *testing.T) {
	g, err := Graph(context.Background(), sampleTree(t))
	require.NoError(t, err)
	assert.Len(t, g.Nodes.Nodes, 3)
	assert.Len(t, g.Edges.Edges, 2)
	assert.Equal(t, `"with: 22:9:10\nmost common ancestry: EUR | total count: 3"`, g.Nodes.Lookup["n1"].Attrs["label"])
	assert.Equal(t, `"most common ancestry: AFR | total count: 8"`, g.Nodes.Lookup["n0"].Attrs["label"])
}

func TestWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(context.Background(), sampleTree(t), buf))
	assert.Contains(t, buf.String(), "digraph ancestree")
	assert.Contains(t, buf.String(), "n0->n2")
}
