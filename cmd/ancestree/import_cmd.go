package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/ancestree/dataset"
	"github.com/pbanos/ancestree/dataset/mongodataset"
	"github.com/pbanos/ancestree/dataset/sqldataset"
	"github.com/pbanos/ancestree/dataset/sqldataset/pgadapter"
	"github.com/pbanos/ancestree/dataset/sqldataset/sqlite3adapter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

type importCmdConfig struct {
	*rootCmdConfig
	output string
}

func importCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a population into a database",
		Long:  `Import the population of a VCF file and a pedigree file into an SQLite3, PostgreSQL or MongoDB database to grow trees from it`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate(cmd)
			if err != nil {
				fail(config.log, 1, err)
			}
			ctx := context.Background()
			pop, err := readPopulation(config.v, config.log)
			if err != nil {
				fail(config.log, 2, err)
			}
			if config.v.GetString("variants") != "" {
				src := &source{features: pop.Features()}
				features, err := selectFeatures(config.v, src)
				if err != nil {
					fail(config.log, 3, err)
				}
				if pop, err = pop.Restrict(features); err != nil {
					fail(config.log, 3, err)
				}
			}
			if err = config.write(ctx, pop); err != nil {
				fail(config.log, 4, err)
			}
			config.log.WithField("output", config.output).Info("population imported")
		},
	}
	populationFlags(cmd)
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "SQLite3 (.db) file, PostgreSQL (postgresql://) or MongoDB (mongodb://) URL to write the population to (required)")
	return cmd
}

func (icc *importCmdConfig) Validate(cmd *cobra.Command) error {
	if err := icc.bind(cmd); err != nil {
		return err
	}
	icc.output = icc.v.GetString("output")
	if icc.output == "" {
		return fmt.Errorf("required output flag was not set")
	}
	return nil
}

func (icc *importCmdConfig) write(ctx context.Context, pop *dataset.Dataset) error {
	var a sqldataset.Adapter
	var err error
	switch {
	case strings.HasPrefix(icc.output, "mongodb://"):
		session, err := mgo.Dial(icc.output)
		if err != nil {
			return errors.Wrapf(err, "connecting to %s", icc.output)
		}
		defer session.Close()
		mds, err := mongodataset.Open(ctx, session)
		if err != nil {
			return err
		}
		return mds.Write(ctx, pop)
	case strings.HasPrefix(icc.output, "postgresql://"), strings.HasPrefix(icc.output, "postgres://"):
		a, err = pgadapter.New(icc.output)
	case strings.HasSuffix(icc.output, ".db"):
		a, err = sqlite3adapter.New(icc.output)
	default:
		return errors.Errorf("unsupported output %s", icc.output)
	}
	if err != nil {
		return err
	}
	d, err := sqldataset.Open(ctx, a)
	if err != nil {
		a.DB().Close()
		return err
	}
	defer d.Close()
	return d.Write(ctx, pop)
}
