package ancestree

import (
	"context"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/pkg/errors"
)

/*
CountProvider is the interface to the population a tree is grown from.
All its methods return tables over the same label universe.

RootCounts returns the label counts of the whole population.

CountsWith takes a path and a feature and returns the label counts of
the individuals that satisfy every criterion on the path and carry
the feature.

Implementations may block, for instance on a database query, and must
honour cancellation of the given context.
*/
type CountProvider interface {
	RootCounts(ctx context.Context) (*counts.Table, error)
	CountsWith(ctx context.Context, p feature.Path, f feature.Feature) (*counts.Table, error)
}

/*
PathCounter is implemented by CountProviders that can count the
individuals satisfying a path directly.
*/
type PathCounter interface {
	CountsFor(ctx context.Context, p feature.Path) (*counts.Table, error)
}

/*
CountsFor takes a context, a CountProvider and a path and returns the
label counts for the individuals that satisfy the path. If the provider
is a PathCounter, it is asked directly. Otherwise the counts are
accumulated along the path: starting with the root counts, every With
criterion selects the counts with the feature and every Without
criterion subtracts them.
*/
func CountsFor(ctx context.Context, cp CountProvider, p feature.Path) (*counts.Table, error) {
	if pc, ok := cp.(PathCounter); ok {
		return pc.CountsFor(ctx, p)
	}
	return accumulateCounts(ctx, cp, p)
}

func accumulateCounts(ctx context.Context, cp CountProvider, p feature.Path) (*counts.Table, error) {
	result, err := cp.RootCounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "counting labels at root")
	}
	for i, c := range p.Criteria() {
		prefix := p.Prefix(i)
		with, err := cp.CountsWith(ctx, prefix, c.Feature)
		if err != nil {
			return nil, errors.Wrapf(err, "counting labels with %s at %v", c.Feature, prefix)
		}
		if c.Direction == feature.With {
			result = with
			continue
		}
		result, err = result.Subtract(with)
		if err != nil {
			return nil, errors.Wrapf(err, "counting labels without %s at %v", c.Feature, prefix)
		}
	}
	return result, nil
}
