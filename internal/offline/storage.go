package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nimasrn/resto-manager/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
)

// Storage holds named cache generations, each mapping a request URL to a
// stored response.
type Storage interface {
	Put(ctx context.Context, generation, key string, resp *Response) error
	// PutAll stores every entry in one step; either all are stored or none.
	PutAll(ctx context.Context, generation string, entries map[string]*Response) error
	// Match returns nil and no error on a miss.
	Match(ctx context.Context, generation, key string) (*Response, error)
	Keys(ctx context.Context, generation string) ([]string, error)
	Generations(ctx context.Context) ([]string, error)
	DeleteGeneration(ctx context.Context, generation string) error
}

const (
	generationsKey   = "offline:generations"
	generationPrefix = "offline:gen:"
)

// RedisStorage keeps a set of generation names and one hash per generation.
type RedisStorage struct {
	rdb redis.RedisAdapter
}

func NewRedisStorage(rdb redis.RedisAdapter) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func generationKey(name string) string {
	return generationPrefix + name
}

func (s *RedisStorage) Put(ctx context.Context, generation, key string, resp *Response) error {
	return s.PutAll(ctx, generation, map[string]*Response{key: resp})
}

func (s *RedisStorage) PutAll(ctx context.Context, generation string, entries map[string]*Response) error {
	encoded := make(map[string]any, len(entries))
	for key, resp := range entries {
		b, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		encoded[key] = b
	}

	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.SAdd(ctx, s.rdb.Key(generationsKey), generation)
		if len(encoded) > 0 {
			p.HSet(ctx, s.rdb.Key(generationKey(generation)), encoded)
		}
		return nil
	})
	return err
}

func (s *RedisStorage) Match(ctx context.Context, generation, key string) (*Response, error) {
	b, err := s.rdb.HGet(ctx, generationKey(generation), key)
	if errors.Is(err, redis.NilError) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &resp, nil
}

func (s *RedisStorage) Keys(ctx context.Context, generation string) ([]string, error) {
	return s.rdb.HKeys(ctx, generationKey(generation))
}

func (s *RedisStorage) Generations(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, generationsKey)
}

func (s *RedisStorage) DeleteGeneration(ctx context.Context, generation string) error {
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, s.rdb.Key(generationKey(generation)))
		p.SRem(ctx, s.rdb.Key(generationsKey), generation)
		return nil
	})
	return err
}
