package mystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

type redisStore[T any] struct {
	client *redis.Client
	kind   string
	// transactions are serialized per process; single writers per key are assumed
	txMutex sync.Mutex
}

func newRedisStore[T any](c context.Context, redisURL string) (*redisStore[T], func(), error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error parsing redis url: %s", err)
	}

	client := redis.NewClient(opts)
	err = client.Ping(c).Err()
	if err != nil {
		client.Close()
		return nil, func() {}, fmt.Errorf("error connecting to redis: %s", err)
	}

	store, cleanup := NewRedisStoreFromClient[T](client)
	return store, func() {
		cleanup()
		client.Close()
	}, nil
}

func NewRedisStoreFromClient[T any](client *redis.Client) (*redisStore[T], func()) {
	return &redisStore[T]{
		client: client,
		kind:   kindOf[T](),
	}, func() {}
}

func (s *redisStore[T]) key(uid string) string {
	return s.kind + ":" + uid
}

func (s *redisStore[T]) indexKey() string {
	return s.kind + ":_uids"
}

func (s *redisStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if c.Value(ctxTransactionKey{}) == any(s) {
		return f(c)
	}

	s.txMutex.Lock()
	defer s.txMutex.Unlock()

	return f(context.WithValue(c, ctxTransactionKey{}, any(s)))
}

func (s *redisStore[T]) Put(c context.Context, uid string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling %s with uid %s: %s", s.kind, uid, err)
	}

	_, err = s.client.TxPipelined(c, func(pipe redis.Pipeliner) error {
		pipe.Set(c, s.key(uid), data, 0)
		pipe.SAdd(c, s.indexKey(), uid)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error storing %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *redisStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	var value T

	data, err := s.client.Get(c, s.key(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("error fetching %s with uid %s: %s", s.kind, uid, err)
	}

	err = json.Unmarshal(data, &value)
	if err != nil {
		return value, false, fmt.Errorf("error unmarshalling %s with uid %s: %s", s.kind, uid, err)
	}

	return value, true, nil
}

func (s *redisStore[T]) Delete(c context.Context, uid string) error {
	_, err := s.client.TxPipelined(c, func(pipe redis.Pipeliner) error {
		pipe.Del(c, s.key(uid))
		pipe.SRem(c, s.indexKey(), uid)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error deleting %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *redisStore[T]) List(c context.Context) ([]T, error) {
	uids, err := s.client.SMembers(c, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %s", s.kind, err)
	}
	sort.Strings(uids)

	result := make([]T, 0, len(uids))
	for _, uid := range uids {
		value, found, err := s.Get(c, uid)
		if err != nil {
			return nil, err
		}
		if found {
			result = append(result, value)
		}
	}

	return result, nil
}
