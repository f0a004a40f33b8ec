/*
Package dot renders trees as graphs in the DOT language of Graphviz.
*/
package dot

import (
	"context"
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
	"github.com/pbanos/ancestree/tree"
	"github.com/pkg/errors"
)

const graphName = "ancestree"

/*
Graph takes a context and a tree and returns a directed graph with a
node for every node on the tree, labelled with the criterion leading
to it, its most common ancestry and its total count, and an edge from
every node to each of its children.
*/
func Graph(ctx context.Context, t *tree.Tree) (*gographviz.Graph, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}
	ids := make(map[string]string)
	err := t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n.Path().String()] = id
		attrs := map[string]string{
			"label": fmt.Sprintf("%q", label(n)),
			"shape": "box",
		}
		if err := g.AddNode(graphName, id, attrs); err != nil {
			return errors.Wrapf(err, "adding node %v", n.Path())
		}
		if n.Path().Len() == 0 {
			return nil
		}
		parent, ok := ids[n.Path().Prefix(n.Path().Len()-1).String()]
		if !ok {
			return errors.Errorf("no parent for node %v", n.Path())
		}
		if err := g.AddEdge(parent, id, true, nil); err != nil {
			return errors.Wrapf(err, "adding edge to node %v", n.Path())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func label(n *tree.Node) string {
	summary := fmt.Sprintf("most common ancestry: %s | total count: %d", n.MajorityLabel(), n.Total())
	c, ok := n.Criterion()
	if !ok {
		return summary
	}
	return fmt.Sprintf("%s: %s\n%s", c.Direction, c.Feature, summary)
}

// Write writes the graph of the tree onto w.
func Write(ctx context.Context, t *tree.Tree, w io.Writer) error {
	g, err := Graph(ctx, t)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, g.String())
	return err
}
