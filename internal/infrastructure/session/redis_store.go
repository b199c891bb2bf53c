// Package session implementa la lista de sesiones revocadas sobre Redis.
// Cada logout guarda el jti del token con TTL igual al tiempo de vida
// restante; el middleware de auth consulta la lista en cada petición.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:revoked:"

// RedisStore guarda tokens revocados en Redis.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore construye el store y verifica la conexión.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// Revoke marca el jti como revocado hasta que expire el token.
// Un TTL no positivo significa token ya vencido: no hay nada que guardar.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revocar sesión: %w", err)
	}
	return nil
}

// IsRevoked informa si el jti está en la lista de revocados.
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("consultar sesión revocada: %w", err)
	}
	return n > 0, nil
}

// Close cierra la conexión con Redis.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
