package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/dataset/ped"
	"github.com/pbanos/ancestree/dataset/vcf"
	"github.com/pbanos/ancestree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func population(t *testing.T) *Dataset {
	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	individuals := []Individual{
		{"i1", "A", feature.NewSet("F1")},
		{"i2", "B", feature.NewSet("F1", "F2")},
		{"i3", "B", feature.NewSet("F1")},
		{"i4", "A", feature.NewSet()},
		{"i5", "A", feature.NewSet("F2")},
	}
	d, err := New(u, []feature.Feature{"F1", "F2"}, individuals)
	require.NoError(t, err)
	return d
}

func TestNewValidates(t *testing.T) {
	u, err := counts.NewUniverse("A")
	require.NoError(t, err)
	_, err = New(u, []feature.Feature{"F1"}, []Individual{{"i1", "B", feature.NewSet()}})
	var ile *counts.InvalidLabelError
	assert.True(t, errors.As(err, &ile))
	_, err = New(u, []feature.Feature{"F1"}, []Individual{{"i1", "A", feature.NewSet("F2")}})
	assert.Error(t, err)
	_, err = New(u, []feature.Feature{"F1", "F1"}, nil)
	assert.Error(t, err)
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	d := population(t)

	root, err := d.RootCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 3, "B": 2}, root.Map())

	with, err := d.CountsWith(ctx, feature.NewPath(), "F1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1, "B": 2}, with.Map())

	p := feature.NewPath().Extend("F1", feature.Without)
	with, err = d.CountsWith(ctx, p, "F2")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1, "B": 0}, with.Map())

	c, err := d.CountsFor(ctx, p.Extend("F2", feature.Without))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1, "B": 0}, c.Map())

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = d.RootCounts(ctx)
	assert.Equal(t, context.Canceled, err)
}

func TestHoldout(t *testing.T) {
	train, test := population(t).Holdout()
	assert.Equal(t, 3, train.Len())
	assert.Equal(t, 2, test.Len())
	assert.Equal(t, "i1", train.Individuals()[0].ID)
	assert.Equal(t, "i2", test.Individuals()[0].ID)
	assert.True(t, train.Labels().Equal(test.Labels()))
}

func TestVariantCountsAndSamples(t *testing.T) {
	d := population(t)
	assert.Equal(t, map[feature.Feature]int{"F1": 3, "F2": 2}, d.VariantCounts())
	samples := d.Samples()
	require.Len(t, samples, 5)
	assert.Equal(t, "i2", samples[1].ID)
	assert.Equal(t, "B", samples[1].Label)
	assert.True(t, samples[1].Features.Has("F2"))
}

func TestRestrict(t *testing.T) {
	d, err := population(t).Restrict([]feature.Feature{"F2"})
	require.NoError(t, err)
	assert.Equal(t, []feature.Feature{"F2"}, d.Features())
	assert.False(t, d.Individuals()[0].Has("F1"))
	assert.True(t, d.Individuals()[1].Has("F2"))
	_, err = population(t).Restrict([]feature.Feature{"F3"})
	assert.Error(t, err)
}

func TestJoin(t *testing.T) {
	g, err := vcf.Read(strings.NewReader("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\n" +
		"22\t10\t.\tA\tG\t.\t.\t.\tGT\t0|1\t0|0\n"))
	require.NoError(t, err)
	records := []ped.Record{
		{FamilyID: "F", IndividualID: "S2", Population: "YRI"},
		{FamilyID: "F", IndividualID: "S3", Population: "CEU"},
		{FamilyID: "F", IndividualID: "S1", Population: "GBR"},
	}
	d, err := Join(g, records)
	require.NoError(t, err)
	assert.Equal(t, []string{"CEU", "GBR", "YRI"}, d.Labels().Labels())
	require.Equal(t, 2, d.Len())
	assert.Equal(t, "S2", d.Individuals()[0].ID)
	assert.Equal(t, "YRI", d.Individuals()[0].Label)
	assert.True(t, d.Individuals()[1].Has("22:9:10"))
}
