package main

import (
	"context"
	"os"

	"github.com/pbanos/ancestree/evaluation"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a population with known ancestry, printing its confusion matrix and the rates for every ancestry`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.bind(cmd); err != nil {
				fail(config.log, 1, err)
			}
			ctx := context.Background()
			t, err := loadTree(ctx, config.v)
			if err != nil {
				fail(config.log, 2, err)
			}
			src, err := openSource(ctx, config.v, config.log)
			if err != nil {
				fail(config.log, 3, err)
			}
			defer src.close()
			pop, err := src.load(ctx)
			if err != nil {
				fail(config.log, 4, err)
			}
			if config.v.GetBool("holdout") {
				_, pop = pop.Holdout()
			}
			config.log.WithField("individuals", pop.Len()).Info("testing tree")
			cm, err := evaluation.NewConfusionMatrix(ctx, t, pop.Samples(), t.Labels())
			if err != nil {
				fail(config.log, 5, err)
			}
			cm.Render(os.Stdout)
			cm.RenderReport(os.Stdout)
		},
	}
	populationFlags(cmd)
	treeInputFlags(cmd)
	return cmd
}
