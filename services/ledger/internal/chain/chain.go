package chain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"content-ledger/services/ledger/internal/entity"

	"github.com/redis/go-redis/v9"
)

const heightKey = "chain:height"

// Chain is the source of the current block height.
type Chain interface {
	Height(ctx context.Context) (uint64, error)
	Advance(ctx context.Context, blocks uint64) (uint64, error)
}

type MemoryChain struct {
	mu     sync.Mutex
	height uint64
}

func NewMemoryChain(start uint64) *MemoryChain {
	return &MemoryChain{height: start}
}

func (c *MemoryChain) Height(_ context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height, nil
}

func (c *MemoryChain) Advance(_ context.Context, blocks uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.height > entity.MaxStoredUint || blocks > entity.MaxStoredUint-c.height {
		return c.height, errHeightOverflow(blocks)
	}
	c.height += blocks
	return c.height, nil
}

func errHeightOverflow(blocks uint64) error {
	return entity.NewContractError(entity.ErrCodeInvalidArgument, "advancing %d blocks overflows the chain height", blocks)
}

// RedisChain keeps the height in a single redis counter so every gateway
// replica observes the same block.
type RedisChain struct {
	client *redis.Client
}

// NewRedisChain seeds the counter with start unless a height already exists.
func NewRedisChain(ctx context.Context, client *redis.Client, start uint64) (*RedisChain, error) {
	if err := client.SetNX(ctx, heightKey, start, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to initialise chain height: %w", err)
	}
	return &RedisChain{client: client}, nil
}

func (c *RedisChain) Height(ctx context.Context) (uint64, error) {
	raw, err := c.client.Get(ctx, heightKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read chain height: %w", err)
	}
	height, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt chain height %q: %w", raw, err)
	}
	return height, nil
}

// Advance relies on INCRBY refusing to overflow a signed 64-bit counter.
func (c *RedisChain) Advance(ctx context.Context, blocks uint64) (uint64, error) {
	if blocks > entity.MaxStoredUint {
		return 0, errHeightOverflow(blocks)
	}
	height, err := c.client.IncrBy(ctx, heightKey, int64(blocks)).Result()
	if err != nil && strings.Contains(err.Error(), "overflow") {
		return 0, errHeightOverflow(blocks)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to advance chain: %w", err)
	}
	return uint64(height), nil
}
