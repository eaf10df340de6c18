package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"content-ledger/pkg/logger"
	"content-ledger/services/ledger/internal/entity"

	"github.com/redis/go-redis/v9"
)

const tokenCacheTTL = 24 * time.Hour

// TokenCache keeps token metadata between reads. Store must drop writes older
// than the cached version, and nothing may be stored for an id after Forget.
type TokenCache interface {
	// Load reports hit=true for a cached token, or for a burned id with a nil
	// token.
	Load(ctx context.Context, id uint64) (token *entity.Token, hit bool)
	Store(ctx context.Context, token *entity.Token)
	Forget(ctx context.Context, id uint64)
}

// storeTokenScript writes the hash unless the id is burned or already holds a
// newer version.
var storeTokenScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], 'burned') == 1 then
  return 0
end
local current = redis.call('HGET', KEYS[1], 'version')
if current and tonumber(current) > tonumber(ARGV[1]) then
  return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'uri', ARGV[2], 'creator', ARGV[3], 'owner', ARGV[4], 'minted_at', ARGV[5])
redis.call('EXPIRE', KEYS[1], ARGV[6])
return 1
`)

type redisTokenCache struct {
	client *redis.Client
	logger *logger.Logger
}

func NewRedisTokenCache(client *redis.Client, logger *logger.Logger) TokenCache {
	return &redisTokenCache{client: client, logger: logger}
}

func tokenCacheKey(id uint64) string {
	return "token:" + strconv.FormatUint(id, 10)
}

// tokenVersion orders cache writes. Microseconds stay exact in Lua numbers.
func tokenVersion(token *entity.Token) int64 {
	return token.UpdatedAt.UnixMicro()
}

func (c *redisTokenCache) Load(ctx context.Context, id uint64) (*entity.Token, bool) {
	fields, err := c.client.HGetAll(ctx, tokenCacheKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read token cache u%d: %v", id, err)
		}
		return nil, false
	}
	if fields["burned"] != "" {
		return nil, true
	}
	if fields["owner"] == "" {
		return nil, false
	}

	mintedAt, _ := strconv.ParseUint(fields["minted_at"], 10, 64)
	version, _ := strconv.ParseInt(fields["version"], 10, 64)
	return &entity.Token{
		ID:        id,
		URI:       fields["uri"],
		Creator:   fields["creator"],
		Owner:     fields["owner"],
		MintedAt:  mintedAt,
		UpdatedAt: time.UnixMicro(version),
	}, true
}

func (c *redisTokenCache) Store(ctx context.Context, token *entity.Token) {
	err := storeTokenScript.Run(ctx, c.client, []string{tokenCacheKey(token.ID)},
		tokenVersion(token),
		token.URI,
		token.Creator,
		token.Owner,
		token.MintedAt,
		int64(tokenCacheTTL/time.Second),
	).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("Failed to cache token u%d: %v", token.ID, err)
	}
}

// Forget leaves a tombstone so a read that raced the burn cannot bring the
// token back. Ids are never reused.
func (c *redisTokenCache) Forget(ctx context.Context, id uint64) {
	key := tokenCacheKey(id)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, "burned", 1)
	pipe.Expire(ctx, key, tokenCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Failed to evict token u%d: %v", id, err)
	}
}
