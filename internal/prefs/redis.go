package prefs

import (
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/pkg/errors"
)

const redisKeyPrefix = "_PREFS_"

// RedisEngine stores values as plain redis strings under a fixed prefix.
type RedisEngine struct {
	pool *redis.Pool
}

// OpenRedisEngine connects to the redis server at addr and selects db.
func OpenRedisEngine(addr string, db int) (*RedisEngine, error) {
	pool := &redis.Pool{
		MaxIdle:     4,
		IdleTimeout: 4 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr, redis.DialDatabase(db), redis.DialConnectTimeout(5*time.Second))
		},
	}

	c := pool.Get()
	defer c.Close()
	if _, err := c.Do("PING"); err != nil {
		pool.Close()
		return nil, errors.Wrapf(err, "redis dial %s failed", addr)
	}
	return &RedisEngine{pool: pool}, nil
}

func (e *RedisEngine) Get(key string) (string, bool, error) {
	c := e.pool.Get()
	defer c.Close()
	val, err := redis.String(c.Do("GET", redisKeyPrefix+key))
	if err == redis.ErrNil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "redis get")
	}
	return val, true, nil
}

func (e *RedisEngine) Put(key, val string) error {
	c := e.pool.Get()
	defer c.Close()
	if _, err := c.Do("SET", redisKeyPrefix+key, val); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (e *RedisEngine) Close() error {
	return e.pool.Close()
}
