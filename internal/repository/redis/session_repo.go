package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const UserTokenPrefix = "login:user:token"

// SessionRepository 每个用户只保留一个有效 access token，后登录会顶掉先登录
type SessionRepository struct {
	RDB *redis.Client
	TTL time.Duration
}

func (r *SessionRepository) key(userID uint64) string {
	return fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
}

func (r *SessionRepository) AddUserToken(ctx context.Context, userID uint64, token string) error {
	if err := r.RDB.Set(ctx, r.key(userID), token, r.TTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) GetUserToken(ctx context.Context, userID uint64) (string, error) {
	token, err := r.RDB.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendUserToken 校验通过后滑动续期
func (r *SessionRepository) ExtendUserToken(ctx context.Context, userID uint64) error {
	if err := r.RDB.Expire(ctx, r.key(userID), r.TTL).Err(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) DeleteUserToken(ctx context.Context, userID uint64) error {
	if err := r.RDB.Del(ctx, r.key(userID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
