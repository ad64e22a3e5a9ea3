// Package sessions builds the server-side session store backing
// authentication. Login writes the user id into the session; nothing else is
// kept client-side beyond the cookie.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
)

// Expiration matches the storefront's 24h session cookie.
const Expiration = 24 * time.Hour

// New returns a session store. With a Redis URL sessions live in Redis and
// survive restarts; otherwise fiber's in-memory storage is used.
func New(redisURL string) (*session.Store, error) {
	cfg := session.Config{
		Expiration:     Expiration,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		cfg.Storage = &redisStorage{client: client}
	}

	return session.New(cfg), nil
}

// redisStorage adapts a go-redis client to fiber's Storage interface.
type redisStorage struct {
	client *redis.Client
}

func (r *redisStorage) Get(key string) ([]byte, error) {
	val, err := r.client.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (r *redisStorage) Set(key string, val []byte, exp time.Duration) error {
	return r.client.Set(context.Background(), key, val, exp).Err()
}

func (r *redisStorage) Delete(key string) error {
	return r.client.Del(context.Background(), key).Err()
}

func (r *redisStorage) Reset() error {
	return r.client.FlushDB(context.Background()).Err()
}

func (r *redisStorage) Close() error {
	return r.client.Close()
}
