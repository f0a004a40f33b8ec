/*
Package json encodes trees as JSON documents and decodes them back.
*/
package json

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	featurejson "github.com/pbanos/ancestree/feature/json"
	"github.com/pbanos/ancestree/tree"
	"github.com/pkg/errors"
)

type jsonTree struct {
	Labels   []string `json:"labels"`
	Features []string `json:"features"`
	Root     *node    `json:"root"`
}

/*
Marshal takes a tree and returns it serialized as a JSON object with
the following fields:
  - "labels": the label universe of the tree, in order
  - "features": the features the tree was grown on, in order
  - "root": the root node of the tree

Every node is a JSON object with its "path" as an array of criteria,
its label "counts", and, for nodes with children, the "split" feature,
its information "gain" and the "children" nodes.
*/
func Marshal(t *tree.Tree) ([]byte, error) {
	jt := &jsonTree{Labels: t.Labels().Labels()}
	for _, f := range t.Features() {
		jt.Features = append(jt.Features, f.Name())
	}
	nc := &nodeCodec{featurejson.NewCriteriaEncodeDecoder(t.Features()), t.Labels()}
	var err error
	jt.Root, err = nc.encode(t.Root())
	if err != nil {
		return nil, err
	}
	return json.Marshal(jt)
}

/*
Unmarshal takes a slice of bytes with a tree serialized by Marshal
and returns the tree. Nodes are rebuilt with tree.NewLeaf and
tree.NewBranch, so an error is returned if the tree is not consistent
or refers to labels or features it does not declare.
*/
func Unmarshal(ctx context.Context, data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	if err := json.Unmarshal(data, jt); err != nil {
		return nil, err
	}
	if jt.Root == nil {
		return nil, errors.New("decoding tree: no root node")
	}
	labels, err := counts.NewUniverse(jt.Labels...)
	if err != nil {
		return nil, errors.Wrap(err, "decoding tree labels")
	}
	features := make([]feature.Feature, 0, len(jt.Features))
	for _, f := range jt.Features {
		features = append(features, feature.Feature(f))
	}
	if err = feature.Distinct(features); err != nil {
		return nil, errors.Wrap(err, "decoding tree features")
	}
	nc := &nodeCodec{featurejson.NewCriteriaEncodeDecoder(features), labels}
	root, err := nc.decode(ctx, jt.Root)
	if err != nil {
		return nil, errors.Wrap(err, "decoding tree")
	}
	return tree.New(root, features, labels), nil
}

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree and an
io.Writer and writes the tree serialized by Marshal onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

/*
ReadJSONTree takes a context.Context and an io.Reader and returns the
tree unmarshalled from its contents.
*/
func ReadJSONTree(ctx context.Context, r io.Reader) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(ctx, data)
}
