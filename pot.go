package ancestree

import (
	"context"
	"io"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/pbanos/ancestree/tree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

/*
Pot grows trees over a fixed list of features. The order of the
features is significant: when two features yield the same
information gain on a node, the one appearing first is chosen.
*/
type Pot struct {
	features    []feature.Feature
	strategy    *Strategy
	concurrency int
	logger      logrus.FieldLogger
}

// Option configures a Pot.
type Option func(*Pot)

// WithStrategy sets the Strategy that decides which nodes
// become leaves. DefaultStrategy() is used otherwise, and
// when s is nil.
func WithStrategy(s *Strategy) Option {
	return func(p *Pot) {
		if s != nil {
			p.strategy = s
		}
	}
}

/*
WithConcurrency sets the maximum number of candidate features whose
partitions are evaluated concurrently on each node. Values under 1
are ignored. The tree grown does not depend on this setting.
*/
func WithConcurrency(n int) Option {
	return func(p *Pot) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger the Pot reports its progress to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pot) {
		p.logger = l
	}
}

/*
New takes a list of features and options and returns a Pot to grow
trees on them, or an error if a feature is empty or repeated.
*/
func New(features []feature.Feature, options ...Option) (*Pot, error) {
	if err := feature.Distinct(features); err != nil {
		return nil, errors.Wrap(err, "creating pot")
	}
	discard := logrus.New()
	discard.Out = io.Discard
	p := &Pot{
		features:    append([]feature.Feature(nil), features...),
		strategy:    DefaultStrategy(),
		concurrency: 1,
		logger:      discard,
	}
	for _, o := range options {
		o(p)
	}
	return p, nil
}

// Features returns the features the Pot grows trees on.
func (p *Pot) Features() []feature.Feature {
	return append([]feature.Feature(nil), p.features...)
}

/*
Grow takes a context, the label counts of the whole population and a
CountProvider for it and returns a tree grown on the population, or
an error if the counts are empty, the provider fails or returns
inconsistent counts, or the context is cancelled.
*/
func (p *Pot) Grow(ctx context.Context, root *counts.Table, cp CountProvider) (*tree.Tree, error) {
	if root.Total() == 0 {
		return nil, errors.Wrap(counts.ErrEmptyTable, "growing tree")
	}
	p.logger.WithFields(logrus.Fields{
		"features":    len(p.features),
		"individuals": root.Total(),
	}).Info("growing tree")
	n, err := p.develop(ctx, feature.NewPath(), root, cp)
	if err != nil {
		return nil, errors.Wrap(err, "growing tree")
	}
	t := tree.New(n, p.features, root.Universe())
	p.logger.WithFields(logrus.Fields{
		"depth":  t.Depth(),
		"leaves": len(t.Leaves()),
	}).Info("tree grown")
	return t, nil
}

/*
Build is a convenience function that grows a tree with the default
options on the given root counts, features and provider.
*/
func Build(ctx context.Context, root *counts.Table, features []feature.Feature, cp CountProvider) (*tree.Tree, error) {
	p, err := New(features)
	if err != nil {
		return nil, err
	}
	return p.Grow(ctx, root, cp)
}

func (p *Pot) develop(ctx context.Context, path feature.Path, c *counts.Table, cp CountProvider) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := p.logger.WithField("path", path.String())
	var best *Partition
	if !c.Pure() && path.Len() < len(p.features) {
		var err error
		best, err = p.bestPartition(ctx, path, c, cp)
		if err != nil {
			return nil, err
		}
	}
	if reason, stop := p.strategy.Stop(c, path, len(p.features), best); stop {
		log.WithFields(logrus.Fields{"counts": c, "reason": reason}).Debug("leaf")
		return tree.NewLeaf(path, c)
	}
	log.WithFields(logrus.Fields{
		"feature":         best.Feature,
		"informationGain": best.InformationGain,
	}).Debug("split")
	withPath := path.Extend(best.Feature, feature.With)
	with, err := CountsFor(ctx, cp, withPath)
	if err != nil {
		return nil, errors.Wrapf(err, "counting labels at %v", withPath)
	}
	withoutPath := path.Extend(best.Feature, feature.Without)
	without, err := CountsFor(ctx, cp, withoutPath)
	if err != nil {
		return nil, errors.Wrapf(err, "counting labels at %v", withoutPath)
	}
	if err = checkSplit(c, with, without); err != nil {
		return nil, errors.Wrapf(err, "splitting %v on %s", path, best.Feature)
	}
	var children []*tree.Node
	for _, side := range []struct {
		path   feature.Path
		counts *counts.Table
	}{{withPath, with}, {withoutPath, without}} {
		if side.counts.Total() == 0 {
			continue
		}
		child, err := p.develop(ctx, side.path, side.counts, cp)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return tree.NewBranch(path, c, best.Feature, best.InformationGain, children...)
}

/*
bestPartition evaluates the partition of the node on every feature
not yet used on its path and returns the one with the highest
information gain. Ties go to the candidate appearing first in the
features of the pot, regardless of the order evaluations finish in.
*/
func (p *Pot) bestPartition(ctx context.Context, path feature.Path, c *counts.Table, cp CountProvider) (*Partition, error) {
	if c.Total() == 0 {
		return nil, nil
	}
	var candidates []feature.Feature
	for _, f := range p.features {
		if !path.Uses(f) {
			candidates = append(candidates, f)
		}
	}
	partitions := make([]*Partition, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, f := range candidates {
		i, f := i, f
		g.Go(func() error {
			with, err := cp.CountsWith(gctx, path, f)
			if err != nil {
				return errors.Wrapf(err, "counting labels with %s at %v", f, path)
			}
			partitions[i], err = NewPartition(c, with, f)
			if err != nil {
				return errors.Wrapf(err, "partitioning %v on %s", path, f)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var best *Partition
	for _, pt := range partitions {
		if best == nil || pt.InformationGain > best.InformationGain {
			best = pt
		}
	}
	return best, nil
}
