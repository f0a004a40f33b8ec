package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/ancestree"
	"github.com/pbanos/ancestree/feature"
	"github.com/pbanos/ancestree/tree"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	output      string
	minimumGain float64
	concurrency int
	redisKey    string
	metrics     string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a population",
		Long:  `Grow a tree from a population of individuals with known ancestry to predict the ancestry of others from their variants.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate(cmd)
			if err != nil {
				fail(config.log, 1, err)
			}
			ctx := context.Background()
			src, err := openSource(ctx, config.v, config.log)
			if err != nil {
				fail(config.log, 2, err)
			}
			defer src.close()
			features, err := selectFeatures(config.v, src)
			if err != nil {
				fail(config.log, 3, err)
			}
			provider := src.provider
			if config.v.GetBool("holdout") {
				pop, err := src.load(ctx)
				if err != nil {
					fail(config.log, 4, err)
				}
				train, _ := pop.Holdout()
				config.log.WithField("individuals", train.Len()).Info("growing on even individuals")
				provider = train
			}
			var reg *prometheus.Registry
			if config.metrics != "" {
				reg = prometheus.NewRegistry()
				provider, err = ancestree.InstrumentProvider(provider, reg)
				if err != nil {
					fail(config.log, 5, err)
				}
			}
			t, err := config.grow(ctx, features, provider)
			if err != nil {
				fail(config.log, 6, err)
			}
			config.log.Debugf("grown tree:\n%v", t)
			if reg != nil {
				if err = prometheus.WriteToTextfile(config.metrics, reg); err != nil {
					fail(config.log, 7, err)
				}
			}
			if err = outputTree(ctx, config.output, t); err != nil {
				fail(config.log, 8, err)
			}
			if addr := config.v.GetString("redis"); addr != "" {
				rs, closeFn, err := redisStore(addr)
				if err != nil {
					fail(config.log, 9, err)
				}
				defer closeFn()
				key := config.redisKey
				if key == "" {
					key, err = rs.Create(ctx, t)
				} else {
					err = rs.Save(ctx, key, t)
				}
				if err != nil {
					fail(config.log, 9, err)
				}
				fmt.Fprintf(os.Stderr, "tree stored on redis with id %s\n", key)
			}
		},
	}
	populationFlags(cmd)
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().Float64Var(&(config.minimumGain), "minimum-gain", ancestree.DefaultMinimumGain, "information gain a split must exceed for a node not to be a leaf")
	cmd.Flags().IntVar(&(config.concurrency), "concurrency", 1, "number of candidate variants evaluated at a time on every node")
	cmd.Flags().String("redis", "", "address of a Redis server to also store the tree on")
	cmd.Flags().StringVar(&(config.redisKey), "redis-id", "", "id to store the tree with on Redis (defaults to a random one)")
	cmd.Flags().StringVar(&(config.metrics), "metrics", "", "path to a file to which population query metrics will be written in Prometheus text format")
	return cmd
}

func (gcc *growCmdConfig) Validate(cmd *cobra.Command) error {
	if err := gcc.bind(cmd); err != nil {
		return err
	}
	gcc.output = gcc.v.GetString("output")
	gcc.minimumGain = gcc.v.GetFloat64("minimum-gain")
	gcc.concurrency = gcc.v.GetInt("concurrency")
	gcc.redisKey = gcc.v.GetString("redis-id")
	gcc.metrics = gcc.v.GetString("metrics")
	if gcc.minimumGain < 0 {
		return fmt.Errorf("minimum-gain cannot be negative")
	}
	if gcc.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	return nil
}

func (gcc *growCmdConfig) grow(ctx context.Context, features []feature.Feature, provider ancestree.CountProvider) (*tree.Tree, error) {
	root, err := provider.RootCounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "counting population")
	}
	pot, err := ancestree.New(features,
		ancestree.WithStrategy(&ancestree.Strategy{MinimumGain: gcc.minimumGain}),
		ancestree.WithConcurrency(gcc.concurrency),
		ancestree.WithLogger(gcc.log.WithField("command", "grow")),
	)
	if err != nil {
		return nil, err
	}
	gcc.log.WithFields(logrus.Fields{
		"individuals": root.Total(),
		"variants":    len(features),
	}).Info("growing tree")
	return pot.Grow(ctx, root, provider)
}
