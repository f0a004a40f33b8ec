package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	v          *viper.Viper
	log        *logrus.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{v: viper.New(), log: newLogger()}
	rootCmd := &cobra.Command{
		Use:   "ancestree",
		Short: "ancestree is a tool to predict ancestry from genetic variants",
		Long:  `A tool to grow decision trees that predict the ancestry of individuals from the variants they carry, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.setup()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log the progress of commands in detail")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML or JSON file with values for the flags of the commands")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), predictCmd(config), treeCmd(config), importCmd(config))
	return rootCmd
}
