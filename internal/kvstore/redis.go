package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis — хранилище поверх redis-клиента. Записи хранятся в JSON
// без срока жизни.
type Redis struct {
	db *redis.Client
}

// NewRedis создает хранилище поверх готового клиента.
func NewRedis(db *redis.Client) *Redis {
	return &Redis{db: db}
}

// Get декодирует запись по ключу в result, false — если записи нет.
func (r *Redis) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "kvstore.Redis.Get"
	val, err := r.db.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение по ключу без срока жизни.
func (r *Redis) Set(ctx context.Context, key string, value any) error {
	const op = "kvstore.Redis.Set"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return r.db.Set(ctx, key, jsonData, 0).Err()
}

// Delete удаляет запись по ключу.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.db.Del(ctx, key).Err()
}
