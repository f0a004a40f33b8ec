package tree

import (
	"fmt"

	"github.com/pbanos/ancestree/feature"
)

/*
TraversalError is returned by the Predict method of a tree when a node
with children has none whose criterion the sample satisfies. It means
the tree is malformed.
*/
type TraversalError struct {
	Path    feature.Path
	Feature feature.Feature
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("sample does not satisfy any subtree criteria on feature %s at %v", e.Feature, e.Path)
}
