package mongodataset

import (
	"context"
	"os"
	"testing"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/dataset"
	"github.com/pbanos/ancestree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

func TestQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, query(feature.NewPath()))
	p := feature.NewPath().Extend("F1", feature.With).Extend("F2", feature.Without).Extend("F3", feature.With)
	assert.Equal(t, bson.M{"variants": bson.M{
		"$all": []string{"F1", "F3"},
		"$nin": []string{"F2"},
	}}, query(p))
	assert.Equal(t, bson.M{"variants": bson.M{"$nin": []string{"F2"}}}, query(feature.NewPath().Extend("F2", feature.Without)))
}

// TestMongoDataset runs against the empty database
// in the ANCESTREE_TEST_MONGO connection URL.
func TestMongoDataset(t *testing.T) {
	url := os.Getenv("ANCESTREE_TEST_MONGO")
	if url == "" {
		t.Skip("ANCESTREE_TEST_MONGO not set")
	}
	ctx := context.Background()
	session, err := mgo.Dial(url)
	require.NoError(t, err)
	defer session.Close()
	mds, err := Open(ctx, session)
	require.NoError(t, err)

	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	pop, err := dataset.New(u, []feature.Feature{"F1", "F2"}, []dataset.Individual{
		{ID: "1", Label: "A", Variants: feature.NewSet("F1")},
		{ID: "2", Label: "B", Variants: feature.NewSet("F1", "F2")},
		{ID: "3", Label: "B", Variants: feature.NewSet()},
	})
	require.NoError(t, err)
	require.NoError(t, mds.Write(ctx, pop))
	assert.Equal(t, ErrPopulated, mds.Write(ctx, pop))

	with, err := mds.CountsWith(ctx, feature.NewPath().Extend("F2", feature.Without), "F1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1, "B": 0}, with.Map())

	read, err := mds.Population(ctx)
	require.NoError(t, err)
	assert.Equal(t, pop.Individuals(), read.Individuals())
}
