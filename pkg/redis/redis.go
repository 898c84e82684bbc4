package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var NilError = goredis.Nil

type Options = goredis.UniversalOptions

// Adapter is the small key/value surface the session store needs.
type Adapter interface {
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
	Del(key string) error
	Expire(key string, ttl time.Duration) error
	Client() goredis.UniversalClient
}

type adapter struct {
	prefix string
	conn   goredis.UniversalClient
	name   string
}

var (
	lock      = &sync.RWMutex{}
	instances map[string]Adapter
)

func NewAdapter(connName string, keysPrefix string, opts *goredis.UniversalOptions) (Adapter, error) {
	lock.RLock()
	if a, ok := instances[connName]; ok {
		lock.RUnlock()
		return a, nil
	}
	lock.RUnlock()

	c := goredis.NewUniversalClient(opts)
	if cmd := c.Ping(context.Background()); cmd.Err() != nil {
		return nil, cmd.Err()
	}

	a := &adapter{conn: c, prefix: keysPrefix, name: connName}

	lock.Lock()
	if instances == nil {
		instances = make(map[string]Adapter)
	}
	instances[connName] = a
	lock.Unlock()

	return a, nil
}

// NewAdapterWithClient wraps an existing client. Used by tests with miniredis.
func NewAdapterWithClient(keysPrefix string, client goredis.UniversalClient) Adapter {
	return &adapter{conn: client, prefix: keysPrefix}
}

func (a *adapter) key(k string) string {
	if a.prefix == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", a.prefix, k)
}

func (a *adapter) Set(key string, value []byte, ttl time.Duration) error {
	return a.conn.Set(context.Background(), a.key(key), value, ttl).Err()
}

func (a *adapter) Get(key string) ([]byte, error) {
	return a.conn.Get(context.Background(), a.key(key)).Bytes()
}

func (a *adapter) Del(key string) error {
	return a.conn.Del(context.Background(), a.key(key)).Err()
}

func (a *adapter) Expire(key string, ttl time.Duration) error {
	return a.conn.Expire(context.Background(), a.key(key), ttl).Err()
}

func (a *adapter) Client() goredis.UniversalClient {
	return a.conn
}
