package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/gestiva/pkg/logger"
)

// NewRedisClient conecta a Redis desde una URL redis://. password y db, si vienen,
// reemplazan los de la URL. Verifica la conexión con PING.
func NewRedisClient(url, password string, db int, log *logger.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsear REDIS_URL: %w", err)
	}
	if password != "" {
		opt.Password = password
	}
	if db > 0 {
		opt.DB = db
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping a Redis: %w", err)
	}

	if log != nil {
		log.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("conexión a Redis establecida")
	}
	return client, nil
}
