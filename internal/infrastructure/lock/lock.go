package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLocked = errors.New("lock is held")

func key(id string) string {
	return fmt.Sprintf("payment_lock:%s", id)
}

// releaseScript deletes the lock only while it still holds the caller's token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type redisAPI interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker holds per-payment locks in redis with SET NX and a TTL so a
// crashed holder cannot block a payment forever. Each holder stores its own
// token; a release after the TTL expired leaves the next holder's lock alone.
type RedisLocker struct {
	client   redisAPI
	newToken func() string
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return newRedisLocker(client)
}

func newRedisLocker(client redisAPI) *RedisLocker {
	return &RedisLocker{client: client, newToken: uuid.NewString}
}

// ConnectRedis parses url, pings the server and returns the client.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, id string, ttl time.Duration) (release func(context.Context) error, err error) {
	k := key(id)
	token := l.newToken()
	ok, err := l.client.SetNX(ctx, k, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", k, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func(ctx context.Context) error {
		if err := l.client.Eval(ctx, releaseScript, []string{k}, token).Err(); err != nil {
			return fmt.Errorf("release %s: %w", k, err)
		}
		return nil
	}, nil
}

// LocalLocker is the single-process fallback used when no redis is configured.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]time.Time), clock: time.Now}
}

func (l *LocalLocker) Acquire(_ context.Context, id string, ttl time.Duration) (release func(context.Context) error, err error) {
	k := key(id)
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.held[k]; ok && now.Before(until) {
		return nil, ErrLocked
	}
	until := now.Add(ttl)
	l.held[k] = until

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[k].Equal(until) {
			delete(l.held, k)
		}
		return nil
	}, nil
}
