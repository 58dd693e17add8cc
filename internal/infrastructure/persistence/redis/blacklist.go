package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

const blacklistPrefix = "blacklist:"

// TokenBlacklist JWT黑名单
// JWT本身无状态,通过黑名单让已签发的Token提前失效(登出、泄露)
// Key: blacklist:{sha256(token)},过期时间与Token剩余有效期一致
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist 创建黑名单
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Revoke 将Token加入黑名单,ttl<=0时不做任何事(Token已过期)
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// IsRevoked 检查Token是否在黑名单中
func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.ErrRedisError.WithCause(err)
	}
	return exists > 0, nil
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistPrefix + hex.EncodeToString(sum[:])
}
