package repo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct{ C *redis.Client }

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// Limiter is a fixed-window counter over Redis. A nil Limiter (or a zero
// limit) allows everything, which is what tests and single-node dev use.
type Limiter struct {
	R      *Redis
	Limit  int
	Window time.Duration
}

func NewLimiter(r *Redis, perMin int) *Limiter {
	return &Limiter{R: r, Limit: perMin, Window: time.Minute}
}

func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.R == nil || l.Limit <= 0 {
		return true
	}
	n, err := l.R.C.Incr(ctx, "rl:"+key).Result()
	if err != nil {
		// fail open rather than locking everyone out on a redis outage
		return true
	}
	if n == 1 {
		l.R.C.Expire(ctx, "rl:"+key, l.Window)
	}
	return n <= int64(l.Limit)
}
