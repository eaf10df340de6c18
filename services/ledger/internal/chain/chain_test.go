package chain

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"content-ledger/services/ledger/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestMemoryChain(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryChain(100)

	h, err := c.Height(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), h)

	h, err = c.Advance(ctx, 50)
	assert.NoError(t, err)
	assert.Equal(t, uint64(150), h)
}

func TestMemoryChain_ConcurrentAdvance(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryChain(0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(ctx, 1)
		}()
	}
	wg.Wait()

	h, _ := c.Height(ctx)
	assert.Equal(t, uint64(20), h)
}

func TestMemoryChain_AdvanceRejectsOverflow(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryChain(100)

	_, err := c.Advance(ctx, math.MaxUint64)
	assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
	_, err = c.Advance(ctx, entity.MaxStoredUint-99)
	assert.True(t, errors.Is(err, entity.ErrInvalidArgument))

	h, _ := c.Height(ctx)
	assert.Equal(t, uint64(100), h)

	h, err = c.Advance(ctx, entity.MaxStoredUint-100)
	assert.NoError(t, err)
	assert.Equal(t, entity.MaxStoredUint, h)
}

func TestRedisChain_AdvanceRejectsOversizedStep(t *testing.T) {
	// rejected before redis is touched
	c := &RedisChain{}
	_, err := c.Advance(context.Background(), math.MaxUint64)
	assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
}
