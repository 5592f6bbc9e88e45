package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/Gakkilovemath/mlpack/tree"
	treejson "github.com/Gakkilovemath/mlpack/tree/json"
	"github.com/Gakkilovemath/mlpack/tree/redisstore"
	redis "gopkg.in/redis.v5"
)

const redisModelPrefix = "mlpack:models"

type jsonTreeEncodeDecoder struct{}

func (jsonTreeEncodeDecoder) Encode(t *tree.Tree) ([]byte, error) {
	return treejson.Encode(t)
}

func (jsonTreeEncodeDecoder) Decode(data []byte) (*tree.Tree, error) {
	return treejson.Decode(data)
}

// saveTree writes the model to the given output: a redis:// URL stores
// it on redis under the given model name, an empty output dumps it to
// STDOUT and anything else is taken as a file path.
func saveTree(ctx context.Context, output, modelName string, t *tree.Tree) error {
	if strings.HasPrefix(output, "redis://") {
		store, err := redisModelStore(output)
		if err != nil {
			return err
		}
		return store.Save(ctx, modelName, t)
	}
	var f *os.File
	var err error
	if output == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(output)
		if err != nil {
			return fmt.Errorf("creating model file %s: %v", output, err)
		}
	}
	defer f.Close()
	return treejson.WriteTree(f, t)
}

// loadTree reads a model back from a redis:// URL or a file path.
func loadTree(ctx context.Context, input, modelName string) (*tree.Tree, error) {
	if strings.HasPrefix(input, "redis://") {
		store, err := redisModelStore(input)
		if err != nil {
			return nil, err
		}
		t, err := store.Load(ctx, modelName)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("no model %q found at %s", modelName, input)
		}
		return t, nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening model file %s: %v", input, err)
	}
	defer f.Close()
	return treejson.ReadTree(f)
}

func redisModelStore(rawURL string) (redisstore.ModelStore, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL %s: %v", rawURL, err)
	}
	opts := &redis.Options{Addr: u.Host}
	if !strings.Contains(opts.Addr, ":") {
		opts.Addr = opts.Addr + ":6379"
	}
	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			opts.Password = password
		}
	}
	if len(u.Path) > 1 {
		db, err := strconv.Atoi(strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL %s: invalid DB number %q", rawURL, u.Path[1:])
		}
		opts.DB = db
	}
	return redisstore.New(redis.NewClient(opts), redisModelPrefix, jsonTreeEncodeDecoder{}), nil
}
