package sqldataset_test

import (
	"context"
	"testing"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/dataset"
	"github.com/pbanos/ancestree/dataset/sqldataset"
	"github.com/pbanos/ancestree/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/ancestree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func population(t *testing.T) *dataset.Dataset {
	u, err := counts.NewUniverse("YRI", "CEU", "GBR")
	require.NoError(t, err)
	d, err := dataset.New(u, []feature.Feature{"22:1:2", "22:5:6", "22:9:10"}, []dataset.Individual{
		{ID: "S1", Label: "CEU", Variants: feature.NewSet("22:1:2")},
		{ID: "S2", Label: "YRI", Variants: feature.NewSet("22:1:2", "22:5:6")},
		{ID: "S3", Label: "YRI", Variants: feature.NewSet("22:5:6")},
		{ID: "S4", Label: "GBR", Variants: feature.NewSet()},
		{ID: "S5", Label: "CEU", Variants: feature.NewSet("22:1:2", "22:9:10")},
	})
	require.NoError(t, err)
	return d
}

func TestSQLiteDataset(t *testing.T) {
	ctx := context.Background()
	a, err := sqlite3adapter.New(":memory:")
	require.NoError(t, err)
	d, err := sqldataset.Open(ctx, a)
	require.NoError(t, err)
	defer d.Close()
	assert.Equal(t, 0, d.Labels().Len())

	pop := population(t)
	require.NoError(t, d.Write(ctx, pop))
	assert.Equal(t, []string{"YRI", "CEU", "GBR"}, d.Labels().Labels())
	assert.Equal(t, pop.Features(), d.Features())
	assert.Equal(t, sqldataset.ErrPopulated, d.Write(ctx, pop))

	reopened, err := sqldataset.Open(ctx, a)
	require.NoError(t, err)
	assert.True(t, pop.Labels().Equal(reopened.Labels()))

	paths := []feature.Path{
		feature.NewPath(),
		feature.NewPath().Extend("22:1:2", feature.With),
		feature.NewPath().Extend("22:1:2", feature.Without),
		feature.NewPath().Extend("22:1:2", feature.With).Extend("22:5:6", feature.Without),
	}
	for _, p := range paths {
		want, err := pop.CountsFor(ctx, p)
		require.NoError(t, err)
		got, err := d.CountsFor(ctx, p)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "%v: want %v, got %v", p, want, got)

		want, err = pop.CountsWith(ctx, p, "22:9:10")
		require.NoError(t, err)
		got, err = d.CountsWith(ctx, p, "22:9:10")
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "%v with 22:9:10: want %v, got %v", p, want, got)
	}
	root, err := d.RootCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, root.Total())

	read, err := d.Population(ctx)
	require.NoError(t, err)
	assert.Equal(t, pop.Individuals(), read.Individuals())
}
