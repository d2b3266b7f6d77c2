package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/showroom-scheduler/internal/config"
)

// generationTTL bounds how long an idle day's generation counter lives.
const generationTTL = 48 * time.Hour

// Store is the key/value surface the booked-slot cache needs. Every cached
// key carries a generation counter; writers bump it, and a reader only stores
// a value computed under the generation it observed before reading.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Generation(ctx context.Context, key string) (int64, error)
	SetIfGeneration(ctx context.Context, key string, gen int64, value []byte, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, keys ...string) error
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// KEYS[1] value key, KEYS[2] generation key
// ARGV[1] expected generation, ARGV[2] value, ARGV[3] ttl in ms
var setIfGeneration = redis.NewScript(`
local cur = redis.call('GET', KEYS[2])
if not cur then cur = '0' end
if cur ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func generationKey(key string) string {
	return key + ":gen"
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := s.client.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (s *RedisStore) SetIfGeneration(
	ctx context.Context,
	key string,
	gen int64,
	value []byte,
	ttl time.Duration,
) (bool, error) {
	stored, err := setIfGeneration.Run(ctx, s.client,
		[]string{key, generationKey(key)},
		strconv.FormatInt(gen, 10), value, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate bumps each key's generation and drops its value in one transaction.
func (s *RedisStore) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, generationKey(k))
			pipe.Expire(ctx, generationKey(k), generationTTL)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}

var _ Store = (*RedisStore)(nil)
