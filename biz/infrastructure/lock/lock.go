package lock

import (
	"context"
	"errors"
	"score-entry/biz/infrastructure/config"
	rds "score-entry/biz/infrastructure/redis"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// token匹配时才允许删除, 避免释放他人持有的锁
const unlockScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`

var ErrLockHeld = errors.New("lock is held by another caller")

type Mutex interface {
	Lock() error
	Unlock() error
	Expired() bool
}

type IMutexFactory interface {
	NewMutex(ctx context.Context, key string, ttlSeconds int) Mutex
}

type RedisMutexFactory struct {
	rds *redis.Redis
}

func NewRedisMutexFactory(config *config.Config) *RedisMutexFactory {
	return &RedisMutexFactory{rds: rds.GetRedis(config)}
}

func (f *RedisMutexFactory) NewMutex(ctx context.Context, key string, ttlSeconds int) Mutex {
	return &redisMutex{
		rds:        f.rds,
		ctx:        ctx,
		key:        key,
		token:      uuid.NewString(),
		ttlSeconds: ttlSeconds,
	}
}

type redisMutex struct {
	rds        *redis.Redis
	ctx        context.Context
	key        string
	token      string
	ttlSeconds int
	acquiredAt time.Time
}

func (m *redisMutex) Lock() error {
	ok, err := m.rds.SetnxExCtx(m.ctx, m.key, m.token, m.ttlSeconds)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLockHeld
	}
	m.acquiredAt = time.Now()
	return nil
}

func (m *redisMutex) Unlock() error {
	_, err := m.rds.EvalCtx(m.ctx, unlockScript, []string{m.key}, m.token)
	return err
}

func (m *redisMutex) Expired() bool {
	if m.acquiredAt.IsZero() {
		return false
	}
	return time.Since(m.acquiredAt) > time.Duration(m.ttlSeconds)*time.Second
}
