package main

import (
	"context"
	"os"

	"github.com/pbanos/ancestree/tree"
	treejson "github.com/pbanos/ancestree/tree/json"
	"github.com/pbanos/ancestree/tree/redisstore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/redis.v5"
)

const redisKeyPrefix = "ancestree:trees"

func treeInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("tree", "t", "", "path to a JSON file with the tree, or the id of the tree on Redis when a redis address is given (required)")
	cmd.Flags().String("redis", "", "address of a Redis server trees are stored on")
}

func redisStore(addr string) (*redisstore.Store, func(), error) {
	rc := redis.NewClient(&redis.Options{Addr: addr})
	if err := rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, nil, errors.Wrapf(err, "connecting to redis at %s", addr)
	}
	return redisstore.New(rc, redisKeyPrefix), func() { rc.Close() }, nil
}

func loadTree(ctx context.Context, v *viper.Viper) (*tree.Tree, error) {
	input := v.GetString("tree")
	if input == "" {
		return nil, errors.New("required tree flag was not set")
	}
	if addr := v.GetString("redis"); addr != "" {
		rs, closeFn, err := redisStore(addr)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		return rs.Load(ctx, input)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tree in JSON from %s", input)
	}
	defer f.Close()
	t, err := treejson.ReadJSONTree(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing tree in JSON from %s", input)
	}
	return t, nil
}

func outputTree(ctx context.Context, outputPath string, t *tree.Tree) error {
	f := os.Stdout
	if outputPath != "" {
		var err error
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return treejson.WriteJSONTree(ctx, t, f)
}
