/*
Package dataset provides an in-memory population of individuals with
known ancestry that trees can be grown from and tested against.
*/
package dataset

import (
	"context"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/dataset/ped"
	"github.com/pbanos/ancestree/dataset/vcf"
	"github.com/pbanos/ancestree/evaluation"
	"github.com/pbanos/ancestree/feature"
	"github.com/pkg/errors"
)

/*
Dataset is a population of individuals over a label universe and an
ordered list of variants. It provides the label counts of any of its
subpopulations, so it can be used to grow trees.
*/
type Dataset struct {
	labels      *counts.Universe
	features    []feature.Feature
	individuals []Individual
}

/*
New takes a label universe, a list of variants and individuals and
returns a Dataset with them. An error is returned if the variants are
not distinct, or an individual has a label outside the universe or
carries a variant not in the list.
*/
func New(labels *counts.Universe, features []feature.Feature, individuals []Individual) (*Dataset, error) {
	if err := feature.Distinct(features); err != nil {
		return nil, errors.Wrap(err, "creating dataset")
	}
	known := feature.NewSet(features...)
	for _, ind := range individuals {
		if !labels.Contains(ind.Label) {
			return nil, errors.Wrapf(&counts.InvalidLabelError{Label: ind.Label}, "individual %s", ind.ID)
		}
		for v := range ind.Variants {
			if !known.Has(v) {
				return nil, errors.Errorf("individual %s carries unknown variant %s", ind.ID, v)
			}
		}
	}
	return &Dataset{labels, append([]feature.Feature(nil), features...), append([]Individual(nil), individuals...)}, nil
}

/*
Join takes the genotypes read from a VCF file and pedigree records and
returns a Dataset with the individuals present on both, in pedigree
order, labelled with their population. The label universe holds every
population on the pedigree records, sorted.
*/
func Join(g *vcf.Genotypes, records []ped.Record) (*Dataset, error) {
	populations := make([]string, 0, len(records))
	for _, r := range records {
		populations = append(populations, r.Population)
	}
	labels, err := counts.SortedUniverse(populations...)
	if err != nil {
		return nil, errors.Wrap(err, "joining genotypes and pedigree")
	}
	var individuals []Individual
	for _, r := range records {
		calls, ok := g.Calls[r.IndividualID]
		if !ok {
			continue
		}
		individuals = append(individuals, Individual{r.IndividualID, r.Population, calls})
	}
	return New(labels, g.Variants, individuals)
}

// Labels returns the label universe of the dataset.
func (d *Dataset) Labels() *counts.Universe {
	return d.labels
}

// Features returns the variants of the dataset.
func (d *Dataset) Features() []feature.Feature {
	return append([]feature.Feature(nil), d.features...)
}

// Individuals returns the individuals of the dataset.
func (d *Dataset) Individuals() []Individual {
	return append([]Individual(nil), d.individuals...)
}

// Len returns the number of individuals in the dataset.
func (d *Dataset) Len() int {
	return len(d.individuals)
}

/*
Restrict takes a list of variants and returns a Dataset with the same
individuals over those variants only. An error is returned if any of
them is not a variant of the dataset.
*/
func (d *Dataset) Restrict(features []feature.Feature) (*Dataset, error) {
	known := feature.NewSet(d.features...)
	keep := feature.NewSet()
	for _, f := range features {
		if !known.Has(f) {
			return nil, errors.Errorf("restricting dataset: unknown variant %s", f)
		}
		keep.Add(f)
	}
	individuals := make([]Individual, 0, len(d.individuals))
	for _, ind := range d.individuals {
		variants := feature.NewSet()
		for v := range ind.Variants {
			if keep.Has(v) {
				variants.Add(v)
			}
		}
		individuals = append(individuals, Individual{ind.ID, ind.Label, variants})
	}
	return New(d.labels, features, individuals)
}

/*
Holdout splits the dataset in two over the same label universe and
variants: the individuals on even positions are returned first, to
grow trees from, and the ones on odd positions second, to test them.
*/
func (d *Dataset) Holdout() (*Dataset, *Dataset) {
	train := &Dataset{labels: d.labels, features: d.features}
	test := &Dataset{labels: d.labels, features: d.features}
	for i, ind := range d.individuals {
		if i%2 == 0 {
			train.individuals = append(train.individuals, ind)
		} else {
			test.individuals = append(test.individuals, ind)
		}
	}
	return train, test
}

// VariantCounts returns the number of individuals carrying each variant.
func (d *Dataset) VariantCounts() map[feature.Feature]int {
	result := make(map[feature.Feature]int, len(d.features))
	for _, f := range d.features {
		result[f] = 0
	}
	for _, ind := range d.individuals {
		for v := range ind.Variants {
			result[v]++
		}
	}
	return result
}

// Samples returns the individuals of the dataset as evaluation samples.
func (d *Dataset) Samples() []evaluation.Sample {
	samples := make([]evaluation.Sample, 0, len(d.individuals))
	for _, ind := range d.individuals {
		samples = append(samples, evaluation.Sample{ID: ind.ID, Features: ind, Label: ind.Label})
	}
	return samples
}

// RootCounts returns the label counts of the whole dataset.
func (d *Dataset) RootCounts(ctx context.Context) (*counts.Table, error) {
	return d.count(ctx, func(Individual) bool { return true })
}

// CountsWith returns the label counts of the individuals that satisfy
// the path and carry the variant.
func (d *Dataset) CountsWith(ctx context.Context, p feature.Path, f feature.Feature) (*counts.Table, error) {
	return d.count(ctx, func(ind Individual) bool {
		return ind.Has(f) && p.SatisfiedBy(ind)
	})
}

// CountsFor returns the label counts of the individuals that satisfy the path.
func (d *Dataset) CountsFor(ctx context.Context, p feature.Path) (*counts.Table, error) {
	return d.count(ctx, func(ind Individual) bool {
		return p.SatisfiedBy(ind)
	})
}

func (d *Dataset) count(ctx context.Context, pred func(Individual) bool) (*counts.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make(map[string]int)
	for _, ind := range d.individuals {
		if pred(ind) {
			result[ind.Label]++
		}
	}
	return counts.NewTable(d.labels, result)
}
