package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/ancestree/tree/dot"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	dot bool
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a tree",
		Long:  `Show a tree as text or as a graph in the DOT language of Graphviz`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.bind(cmd); err != nil {
				fail(config.log, 1, err)
			}
			ctx := context.Background()
			t, err := loadTree(ctx, config.v)
			if err != nil {
				fail(config.log, 2, err)
			}
			if !config.v.GetBool("dot") {
				fmt.Println(t)
				return
			}
			if err = dot.Write(ctx, t, os.Stdout); err != nil {
				fail(config.log, 3, err)
			}
		},
	}
	treeInputFlags(cmd)
	cmd.Flags().BoolVar(&(config.dot), "dot", false, "print the tree as a DOT graph")
	return cmd
}
