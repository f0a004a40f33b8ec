/*
Package redisstore keeps trees serialized as JSON on a Redis database.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/ancestree/tree"
	treejson "github.com/pbanos/ancestree/tree/json"
	"github.com/pkg/errors"
	"gopkg.in/redis.v5"
)

// Error is the type of the errors of the package.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrNotFound is returned when loading a tree that is not stored.
const ErrNotFound = Error("tree not found")

const idLength = 20

/*
Store keeps trees on a Redis database under keys made of a prefix and
the id of the tree.
*/
type Store struct {
	rc     *redis.Client
	prefix string
}

// New builds a Store backed by the given redis client,
// with keys under the given prefix.
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc, prefix}
}

/*
Create takes a context and a tree, stores the tree under a new random
id and returns the id.
*/
func (rs *Store) Create(ctx context.Context, t *tree.Tree) (string, error) {
	data, err := treejson.Marshal(t)
	if err != nil {
		return "", errors.Wrap(err, "creating tree: encoding tree")
	}
	for {
		if err = ctx.Err(); err != nil {
			return "", err
		}
		id := randString(idLength)
		ok, err := rs.rc.SetNX(rs.keyFor(id), data, 0).Result()
		if err != nil {
			return "", errors.Wrap(err, "creating tree in redis")
		}
		if ok {
			return id, nil
		}
	}
}

// Save stores the tree under the given id, replacing
// any tree stored with it.
func (rs *Store) Save(ctx context.Context, id string, t *tree.Tree) error {
	data, err := treejson.Marshal(t)
	if err != nil {
		return errors.Wrapf(err, "storing tree %q: encoding tree", id)
	}
	if err = rs.rc.Set(rs.keyFor(id), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "storing tree %q in redis", id)
	}
	return nil
}

// Load returns the tree stored under the given id,
// or ErrNotFound if there is none.
func (rs *Store) Load(ctx context.Context, id string) (*tree.Tree, error) {
	data, err := rs.rc.Get(rs.keyFor(id)).Bytes()
	if err == redis.Nil {
		return nil, errors.Wrapf(ErrNotFound, "retrieving tree %q", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving tree %q", id)
	}
	t, err := treejson.Unmarshal(ctx, data)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving tree %q", id)
	}
	return t, nil
}

// Delete removes the tree stored under the given id.
func (rs *Store) Delete(ctx context.Context, id string) error {
	if err := rs.rc.Del(rs.keyFor(id)).Err(); err != nil {
		return errors.Wrapf(err, "deleting tree %q from redis", id)
	}
	return nil
}

func (rs *Store) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
