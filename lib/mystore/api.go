package mystore

import (
	"context"
	"fmt"
	"strings"
)

type ctxTransactionKey struct{}

const (
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendDatastore = "datastore"
)

type Options struct {
	Backend   string
	RedisURL  string
	ProjectID string
}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	List(c context.Context) ([]T, error)
}

func New[T any](c context.Context, opts Options) (Store[T], func(), error) {
	switch opts.Backend {
	case BackendDatastore:
		return newGcloudStore[T](c, opts.ProjectID)
	case BackendRedis:
		return newRedisStore[T](c, opts.RedisURL)
	case BackendMemory, "":
		return NewInMemoryStore[T](c)
	default:
		return nil, func() {}, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// kindOf derives the entity kind from the unqualified type name of T.
func kindOf[T any]() string {
	kind := fmt.Sprintf("%T", *new(T))
	if idx := strings.LastIndex(kind, "."); idx >= 0 {
		kind = kind[idx+1:]
	}
	return kind
}
