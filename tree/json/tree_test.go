package json

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/pbanos/ancestree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T) *tree.Tree {
	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	table := func(a, b int) *counts.Table {
		c, err := counts.NewTable(u, map[string]int{"A": a, "B": b})
		require.NoError(t, err)
		return c
	}
	root := feature.NewPath()
	with, err := tree.NewLeaf(root.Extend("F1", feature.With), table(1, 2))
	require.NoError(t, err)
	without, err := tree.NewLeaf(root.Extend("F1", feature.Without), table(5, 0))
	require.NoError(t, err)
	n, err := tree.NewBranch(root, table(6, 2), "F1", 0.4669, with, without)
	require.NoError(t, err)
	return tree.New(n, []feature.Feature{"F1", "F2"}, u)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	original := sampleTree(t)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSONTree(ctx, original, buf))
	assert.Contains(t, buf.String(), `"labels":["A","B"]`)

	decoded, err := ReadJSONTree(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, original.String(), decoded.String())
	assert.Equal(t, original.Features(), decoded.Features())
	p, err := decoded.Predict(feature.NewSet("F1"))
	require.NoError(t, err)
	assert.Equal(t, "B", p.Label)
}

func TestUnmarshalRejectsInconsistentTrees(t *testing.T) {
	ctx := context.Background()
	for name, doc := range map[string]string{
		"no root":         `{"labels":["A"],"features":["F1"]}`,
		"unknown label":   `{"labels":["A"],"features":["F1"],"root":{"path":[],"counts":{"C":1}}}`,
		"unknown feature": `{"labels":["A"],"features":["F1"],"root":{"path":[],"counts":{"A":2},"split":"F2","children":[{"path":[{"f":"F2","d":"with"}],"counts":{"A":1}}]}}`,
		"children exceed": `{"labels":["A"],"features":["F1"],"root":{"path":[],"counts":{"A":2},"split":"F1","children":[{"path":[{"f":"F1","d":"with"}],"counts":{"A":3}}]}}`,
		"empty leaf":      `{"labels":["A"],"features":["F1"],"root":{"path":[],"counts":{"A":0}}}`,
	} {
		_, err := ReadJSONTree(ctx, strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}
