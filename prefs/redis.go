package prefs

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "dynparam:prefs:"

// Redis keeps one hash per owner.
type Redis struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewRedis connects to addr, which is either host:port or a redis:// / rediss:// URL.
func NewRedis(addr string) (*Redis, error) {
	opts, err := parseRedisURL(addr)
	if err != nil {
		return nil, err
	}
	c := redis.NewUniversalClient(opts)
	r := &Redis{client: c, ctx: context.Background()}
	if err := c.Ping(r.ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return r, nil
}

func parseRedisURL(addr string) (*redis.UniversalOptions, error) {
	if !strings.Contains(addr, "://") {
		return &redis.UniversalOptions{Addrs: []string{addr}}, nil
	}

	u, err := url.Parse(addr)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("redis: unsupported scheme %q", u.Scheme)
	}

	opts := &redis.UniversalOptions{Addrs: strings.Split(u.Host, ",")}
	if u.User != nil {
		opts.Username = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			opts.Password = pw
		}
	}
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		db, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("redis: invalid db: %v", err)
		}
		opts.DB = db
	}
	if u.Scheme == "rediss" {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

func (r *Redis) Get(owner, key string) (string, bool, error) {
	v, err := r.client.HGet(r.ctx, redisPrefix+owner, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Put(owner, key, value string) error {
	return r.client.HSet(r.ctx, redisPrefix+owner, key, value).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
