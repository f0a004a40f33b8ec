package main

import (
	"context"
	"strings"

	"github.com/pbanos/ancestree"
	"github.com/pbanos/ancestree/dataset"
	"github.com/pbanos/ancestree/dataset/mongodataset"
	"github.com/pbanos/ancestree/dataset/ped"
	"github.com/pbanos/ancestree/dataset/sqldataset"
	"github.com/pbanos/ancestree/dataset/sqldataset/pgadapter"
	"github.com/pbanos/ancestree/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/ancestree/dataset/vcf"
	"github.com/pbanos/ancestree/feature"
	"github.com/pbanos/ancestree/feature/yaml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	mgo "gopkg.in/mgo.v2"
)

/*
source is a population to grow trees from or test them against, held
in memory or on a database.
*/
type source struct {
	provider ancestree.CountProvider
	features []feature.Feature
	load     func(context.Context) (*dataset.Dataset, error)
	close    func()
}

func populationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "SQLite3 (.db) file, PostgreSQL (postgresql://) or MongoDB (mongodb://) URL with a population written by the import command")
	cmd.Flags().String("vcf", "", "path to a VCF file, optionally gzipped, with the variants of the population, used when no input is given")
	cmd.Flags().String("pedigree", "", "path to a pedigree file with the population of every individual, used along the VCF file")
	cmd.Flags().StringSlice("regions", nil, "regions of the VCF file to read variants from, as CHROM:START-END (defaults to all)")
	cmd.Flags().StringP("variants", "m", "", "path to a YML file with the list of variants to use (defaults to all)")
	cmd.Flags().Bool("holdout", false, "split the population, using even individuals to grow trees and odd ones to test them")
}

func openSource(ctx context.Context, v *viper.Viper, log logrus.FieldLogger) (*source, error) {
	input := v.GetString("input")
	switch {
	case input == "":
		return vcfSource(v, log)
	case strings.HasPrefix(input, "postgresql://"), strings.HasPrefix(input, "postgres://"):
		log.WithField("url", input).Debug("opening PostgreSQL population")
		a, err := pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		return sqlSource(ctx, a)
	case strings.HasPrefix(input, "mongodb://"):
		log.WithField("url", input).Debug("opening MongoDB population")
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, errors.Wrapf(err, "connecting to %s", input)
		}
		mds, err := mongodataset.Open(ctx, session)
		if err != nil {
			session.Close()
			return nil, err
		}
		return &source{mds, mds.Features(), mds.Population, session.Close}, nil
	case strings.HasSuffix(input, ".db"):
		log.WithField("file", input).Debug("opening SQLite3 population")
		a, err := sqlite3adapter.New(input)
		if err != nil {
			return nil, err
		}
		return sqlSource(ctx, a)
	}
	return nil, errors.Errorf("unsupported input %s", input)
}

func sqlSource(ctx context.Context, a sqldataset.Adapter) (*source, error) {
	d, err := sqldataset.Open(ctx, a)
	if err != nil {
		a.DB().Close()
		return nil, err
	}
	return &source{d, d.Features(), d.Population, func() { d.Close() }}, nil
}

func vcfSource(v *viper.Viper, log logrus.FieldLogger) (*source, error) {
	d, err := readPopulation(v, log)
	if err != nil {
		return nil, err
	}
	return &source{
		provider: d,
		features: d.Features(),
		load:     func(context.Context) (*dataset.Dataset, error) { return d, nil },
		close:    func() {},
	}, nil
}

func readPopulation(v *viper.Viper, log logrus.FieldLogger) (*dataset.Dataset, error) {
	vcfPath, pedigreePath := v.GetString("vcf"), v.GetString("pedigree")
	if vcfPath == "" || pedigreePath == "" {
		return nil, errors.New("either an input or both vcf and pedigree must be set")
	}
	var regions []vcf.Region
	for _, s := range v.GetStringSlice("regions") {
		r, err := vcf.ParseRegion(s)
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	log.WithFields(logrus.Fields{"file": vcfPath, "regions": len(regions)}).Info("reading variants")
	g, err := vcf.ReadFile(vcfPath, regions...)
	if err != nil {
		return nil, err
	}
	log.WithField("file", pedigreePath).Info("reading pedigree")
	records, err := ped.ReadFile(pedigreePath)
	if err != nil {
		return nil, err
	}
	d, err := dataset.Join(g, records)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"individuals": d.Len(),
		"variants":    len(d.Features()),
		"labels":      d.Labels().Len(),
	}).Info("population read")
	return d, nil
}

/*
selectFeatures returns the variants listed on the variants file, if
any, checking they are all available on the source, or all of the
variants of the source otherwise.
*/
func selectFeatures(v *viper.Viper, src *source) ([]feature.Feature, error) {
	path := v.GetString("variants")
	if path == "" {
		return src.features, nil
	}
	features, err := yaml.ReadFeaturesFromFile(path)
	if err != nil {
		return nil, err
	}
	available := feature.NewSet(src.features...)
	for _, f := range features {
		if !available.Has(f) {
			return nil, errors.Errorf("variant %s on %s is not available on the population", f, path)
		}
	}
	return features, nil
}
