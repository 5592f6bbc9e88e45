/*
Package redisstore keeps encoded tree models in a redis DB so trained
trees can be shared between the process that grows them and the
processes that classify with them.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/Gakkilovemath/mlpack/tree"
	"gopkg.in/redis.v5"
)

/*
TreeEncodeDecoder is an interface for objects that allow encoding trees
into slices of bytes and decoding them back to trees.
*/
type TreeEncodeDecoder interface {

	// Encode receives a *tree.Tree and returns a slice of bytes
	// with the tree encoded or an error if the encoding could not
	// be performed for some reason.
	Encode(*tree.Tree) ([]byte, error)

	// Decode receives a slice of bytes and returns a *tree.Tree
	// decoded from the slice of bytes or an error if the decoding
	// could not be performed for some reason.
	Decode([]byte) (*tree.Tree, error)
}

/*
ModelStore stores trained trees under names.
*/
type ModelStore interface {
	// Save stores the tree under the given name, overwriting any
	// tree previously saved under it. It returns an error if the
	// tree cannot be stored.
	Save(ctx context.Context, name string, t *tree.Tree) error
	// Load returns the tree saved under the given name, nil if no
	// tree is saved under it, or an error if the store cannot be
	// queried.
	Load(ctx context.Context, name string) (*tree.Tree, error)
	// Delete removes the tree saved under the given name. It
	// returns an error if the removal cannot be performed.
	Delete(ctx context.Context, name string) error
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	tencdec TreeEncodeDecoder
}

/*
New builds a ModelStore backed by a redis DB, keying every model with
the given prefix.
*/
func New(rc *redis.Client, prefix string, tencdec TreeEncodeDecoder) ModelStore {
	return &redisStore{rc, prefix, tencdec}
}

func (rs *redisStore) Save(ctx context.Context, name string, t *tree.Tree) error {
	data, err := rs.tencdec.Encode(t)
	if err != nil {
		return fmt.Errorf("saving model %q: encoding tree: %v", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = rs.rc.Set(rs.keyFor(name), data, 0).Result()
	if err != nil {
		return fmt.Errorf("saving model %q in redis: %v", name, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading model %q from redis: %v", name, err)
	}
	t, err := rs.tencdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("loading model %q: decoding tree: %v", name, err)
	}
	return t, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := rs.rc.Del(rs.keyFor(name)).Result()
	if err != nil {
		return fmt.Errorf("deleting model %q from redis: %v", name, err)
	}
	return nil
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
