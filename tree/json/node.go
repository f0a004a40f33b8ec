package json

import (
	"context"
	"encoding/json"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	featurejson "github.com/pbanos/ancestree/feature/json"
	"github.com/pbanos/ancestree/tree"
	"github.com/pkg/errors"
)

type node struct {
	Path     json.RawMessage `json:"path"`
	Counts   map[string]int  `json:"counts"`
	Split    string          `json:"split,omitempty"`
	Gain     float64         `json:"gain,omitempty"`
	Children []*node         `json:"children,omitempty"`
}

/*
nodeCodec converts between tree nodes and their JSON form, encoding
paths with a CriteriaEncodeDecoder and counts over a label universe.
*/
type nodeCodec struct {
	ced    featurejson.CriteriaEncodeDecoder
	labels *counts.Universe
}

func (nc *nodeCodec) encode(n *tree.Node) (*node, error) {
	path, err := nc.ced.Encode(n.Path())
	if err != nil {
		return nil, errors.Wrapf(err, "encoding node at %v", n.Path())
	}
	jn := &node{Path: path, Counts: n.Counts().Map()}
	if n.Leaf() {
		return jn, nil
	}
	jn.Split = n.SubtreeFeature().Name()
	jn.Gain = n.InformationGain()
	for _, c := range n.Children() {
		jc, err := nc.encode(c)
		if err != nil {
			return nil, err
		}
		jn.Children = append(jn.Children, jc)
	}
	return jn, nil
}

func (nc *nodeCodec) decode(ctx context.Context, jn *node) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := nc.ced.Decode(jn.Path)
	if err != nil {
		return nil, errors.Wrap(err, "decoding node path")
	}
	c, err := counts.NewTable(nc.labels, jn.Counts)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding node at %v", path)
	}
	if len(jn.Children) == 0 {
		return tree.NewLeaf(path, c)
	}
	children := make([]*tree.Node, 0, len(jn.Children))
	for _, jc := range jn.Children {
		child, err := nc.decode(ctx, jc)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return tree.NewBranch(path, c, feature.Feature(jn.Split), jn.Gain, children...)
}
