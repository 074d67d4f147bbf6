// Package cache define el almacén clave/valor de las lecturas agregadas.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indica que la clave no existe o expiró.
var ErrCacheMiss = errors.New("cache miss")

// KVStore es la interfaz mínima que usan los servicios; Redis en producción.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
