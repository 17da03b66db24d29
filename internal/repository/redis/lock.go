package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	LockKeyPrefix = "lock:bureau"
	lockRetry     = 20 * time.Millisecond
)

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`)

// DistLock 饭局维度的分布式锁，多实例部署时串行化同一饭局的加入和结算
type DistLock struct {
	RDB  *redis.Client
	TTL  time.Duration
	Wait time.Duration // 最长等待时间，超时返回 false
}

func (l *DistLock) key(bureauID uint64) string {
	return fmt.Sprintf("%s:%d", LockKeyPrefix, bureauID)
}

// TryAcquire 单次尝试
func (l *DistLock) TryAcquire(ctx context.Context, bureauID uint64, token string) (bool, error) {
	return l.RDB.SetNX(ctx, l.key(bureauID), token, l.TTL).Result()
}

// Acquire 在 Wait 时间内轮询加锁，成功时返回用于释放的 token
func (l *DistLock) Acquire(ctx context.Context, bureauID uint64) (string, bool, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.Wait)
	for {
		ok, err := l.TryAcquire(ctx, bureauID, token)
		if err != nil {
			return "", false, err
		}
		if ok {
			return token, true, nil
		}
		if time.Now().After(deadline) {
			return "", false, nil
		}
		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case <-time.After(lockRetry):
		}
	}
}

// Release 用lua保证只删除自己持有的锁
func (l *DistLock) Release(ctx context.Context, bureauID uint64, token string) error {
	return releaseScript.Run(ctx, l.RDB, []string{l.key(bureauID)}, token).Err()
}
