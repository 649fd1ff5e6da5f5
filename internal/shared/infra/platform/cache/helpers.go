package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// asyncTimeout limita cada escritura en segundo plano.
const asyncTimeout = 200 * time.Millisecond

// AsyncCacheSet actualiza la caché en background sin bloquear la petición.
// Usa un contexto propio: la escritura debe terminar aunque la petición
// original se haya cancelado.
func AsyncCacheSet(_ context.Context, c Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if c == nil {
		return
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := c.Set(cacheCtx, key, value, ttl); err != nil {
			log.Warn("Cache update failed", zap.String("key", key), zap.Error(err))
		}
	}()
}
