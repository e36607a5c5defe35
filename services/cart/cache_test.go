package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/selfcheckout/lib/mytime"
)

func TestViewCache(t *testing.T) {
	c := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	for name, newCache := range map[string]func(t *testing.T) ViewCache{
		"memory": func(t *testing.T) ViewCache {
			nower := mytime.NewMockNower(ctrl)
			nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
			return NewMemoryViewCache(nower)
		},
		"redis": func(t *testing.T) ViewCache {
			server := miniredis.RunT(t)
			return NewRedisViewCache(redis.NewClient(&redis.Options{Addr: server.Addr()}))
		},
	} {
		t.Run(name+": miss", func(t *testing.T) {
			// setup
			sut := newCache(t)

			// when
			_, found, err := sut.Get(c, "sess-1")

			// then
			assert.NoError(t, err)
			assert.False(t, found)
		})

		t.Run(name+": set get delete", func(t *testing.T) {
			// setup
			sut := newCache(t)

			// given
			sut.Set(c, "sess-1", cartView, time.Minute)

			// when
			view, found, err := sut.Get(c, "sess-1")

			// then
			assert.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, cartView, view)
			assert.Equal(t, int64(35000), view.Total())

			// and when
			sut.Delete(c, "sess-1")
			_, found, _ = sut.Get(c, "sess-1")

			// then
			assert.False(t, found)
		})
	}
}

func TestViewCacheExpiry(t *testing.T) {
	c := context.TODO()

	t.Run("memory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		nower := mytime.NewMockNower(ctrl)
		sut := NewMemoryViewCache(nower)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		sut.Set(c, "sess-1", cartView, 30*time.Second)

		// when
		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(30 * time.Second))
		_, found, _ := sut.Get(c, "sess-1")

		// then
		assert.False(t, found)
	})

	t.Run("redis", func(t *testing.T) {
		// setup
		server := miniredis.RunT(t)
		sut := NewRedisViewCache(redis.NewClient(&redis.Options{Addr: server.Addr()}))

		// given
		sut.Set(c, "sess-1", cartView, 30*time.Second)

		// when
		server.FastForward(31 * time.Second)
		_, found, _ := sut.Get(c, "sess-1")

		// then
		assert.False(t, found)
	})
}
