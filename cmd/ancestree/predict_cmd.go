package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/pbanos/ancestree/feature"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict [VARIANT...]",
		Short: "Predict the ancestry of an individual",
		Long:  `Use the loaded tree to predict the ancestry of an individual carrying the variants given as arguments`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.bind(cmd); err != nil {
				fail(config.log, 1, err)
			}
			ctx := context.Background()
			t, err := loadTree(ctx, config.v)
			if err != nil {
				fail(config.log, 2, err)
			}
			known := feature.NewSet(t.Features()...)
			sample := feature.NewSet()
			for _, arg := range args {
				f := feature.Feature(arg)
				if !known.Has(f) {
					config.log.WithField("variant", arg).Warn("variant unknown to the tree, ignoring it")
					continue
				}
				sample.Add(f)
			}
			prediction, err := t.Predict(sample)
			if err != nil {
				fail(config.log, 3, err)
			}
			fmt.Printf("Predicted ancestry is %s (from %d individuals)\n", prediction.Label, prediction.Weight())
			probabilities := prediction.Probabilities()
			for _, l := range rankLabels(t.Labels().Labels(), probabilities) {
				if probabilities[l] > 0 {
					fmt.Printf("  %s: %.4f\n", l, probabilities[l])
				}
			}
		},
	}
	treeInputFlags(cmd)
	return cmd
}

// rankLabels sorts labels by decreasing probability, keeping
// the given order for equally probable labels.
func rankLabels(labels []string, probabilities map[string]float64) []string {
	ranked := append([]string(nil), labels...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return probabilities[ranked[i]] > probabilities[ranked[j]]
	})
	return ranked
}
