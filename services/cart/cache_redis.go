package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

const redisKeyPrefix = "cartview:"

// RedisViewCache shares cart views between kiosk processes on the same terminal.
type RedisViewCache struct {
	client *redis.Client
}

func NewRedisViewCache(client *redis.Client) *RedisViewCache {
	return &RedisViewCache{
		client: client,
	}
}

func (rc *RedisViewCache) Get(c context.Context, sessionID string) (shopmodel.CartView, bool, error) {
	data, err := rc.client.Get(c, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return shopmodel.CartView{}, false, nil
	}
	if err != nil {
		return shopmodel.CartView{}, false, fmt.Errorf("error reading cart view of %s: %w", sessionID, err)
	}

	view := shopmodel.CartView{}
	err = json.Unmarshal(data, &view)
	if err != nil {
		return shopmodel.CartView{}, false, fmt.Errorf("error decoding cart view of %s: %w", sessionID, err)
	}
	return view, true, nil
}

func (rc *RedisViewCache) Set(c context.Context, sessionID string, view shopmodel.CartView, ttl time.Duration) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("error encoding cart view of %s: %w", sessionID, err)
	}
	err = rc.client.Set(c, redisKeyPrefix+sessionID, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing cart view of %s: %w", sessionID, err)
	}
	return nil
}

func (rc *RedisViewCache) Delete(c context.Context, sessionID string) error {
	err := rc.client.Del(c, redisKeyPrefix+sessionID).Err()
	if err != nil {
		return fmt.Errorf("error deleting cart view of %s: %w", sessionID, err)
	}
	return nil
}
