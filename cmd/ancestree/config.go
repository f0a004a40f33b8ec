package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (rc *rootCmdConfig) setup() error {
	if rc.verbose {
		rc.log.Level = logrus.DebugLevel
	}
	if rc.configFile == "" {
		return nil
	}
	rc.v.SetConfigFile(rc.configFile)
	if err := rc.v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading configuration from %s", rc.configFile)
	}
	rc.log.WithField("file", rc.configFile).Debug("configuration read")
	return nil
}

/*
bind makes the values of the flags of the running command available
through viper, taking precedence over the configuration file when set.
Commands bind on run, as flag names are shared between commands.
*/
func (rc *rootCmdConfig) bind(cmd *cobra.Command) error {
	return rc.v.BindPFlags(cmd.Flags())
}
