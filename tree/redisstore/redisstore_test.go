package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/pbanos/ancestree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

func TestRandString(t *testing.T) {
	a, b := randString(idLength), randString(idLength)
	assert.Len(t, a, idLength)
	assert.NotEqual(t, a, b)
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "trees:abc", New(nil, "trees").keyFor("abc"))
}

// TestStore runs against the Redis server at the
// ANCESTREE_TEST_REDIS address.
func TestStore(t *testing.T) {
	addr := os.Getenv("ANCESTREE_TEST_REDIS")
	if addr == "" {
		t.Skip("ANCESTREE_TEST_REDIS not set")
	}
	ctx := context.Background()
	rc := redis.NewClient(&redis.Options{Addr: addr})
	defer rc.Close()
	rs := New(rc, "ancestree-test")

	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	c, err := counts.NewTable(u, map[string]int{"A": 3, "B": 1})
	require.NoError(t, err)
	root, err := tree.NewLeaf(feature.NewPath(), c)
	require.NoError(t, err)
	tr := tree.New(root, []feature.Feature{"F1"}, u)

	id, err := rs.Create(ctx, tr)
	require.NoError(t, err)
	loaded, err := rs.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, tr.String(), loaded.String())

	require.NoError(t, rs.Save(ctx, "named", tr))
	require.NoError(t, rs.Delete(ctx, "named"))
	require.NoError(t, rs.Delete(ctx, id))
	_, err = rs.Load(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound))
}
