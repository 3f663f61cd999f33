package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/upasthiti/admin-console/internal/models"
	"github.com/upasthiti/admin-console/internal/session"
)

const (
	profileKeyPrefix  = "upasthiti:profile:"
	settingsKeyPrefix = "upasthiti:settings:"
	profileIndexKey   = "upasthiti:profiles"
)

// RedisStore keeps the same state as Store in redis.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) LoadProfile(ctx context.Context, uid string) (*models.AdminProfile, error) {
	var p models.AdminProfile
	if err := s.get(ctx, profileKeyPrefix+uid, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RedisStore) SaveProfile(ctx context.Context, p *models.AdminProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, profileKeyPrefix+p.UID, data, 0)
		pipe.SAdd(ctx, profileIndexKey, p.UID)
		return nil
	})
	return err
}

func (s *RedisStore) LoadSettings(ctx context.Context, uid string) (*models.AppSettings, error) {
	var out models.AppSettings
	if err := s.get(ctx, settingsKeyPrefix+uid, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RedisStore) SaveSettings(ctx context.Context, uid string, in models.AppSettings) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, settingsKeyPrefix+uid, data, 0).Err()
}

func (s *RedisStore) Forget(ctx context.Context, uid string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, profileKeyPrefix+uid, settingsKeyPrefix+uid)
		pipe.SRem(ctx, profileIndexKey, uid)
		return nil
	})
	return err
}

func (s *RedisStore) ProfileUIDs(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, profileIndexKey).Result()
}

func (s *RedisStore) get(ctx context.Context, key string, out any) error {
	value, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.ErrNoState
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
