package dispatcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"content-ledger/pkg/logger"
	"content-ledger/services/ledger/internal/chain"
	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/repo/memory"
	"content-ledger/services/ledger/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sender = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"

func newDispatcher(recorder CallRecorder) *Dispatcher {
	return New(chain.NewMemoryChain(100), recorder, logger.New())
}

func constant(v interface{}) HandlerFunc {
	return func(context.Context, entity.Call) (interface{}, error) { return v, nil }
}

func TestCall_UnknownRoute(t *testing.T) {
	d := newDispatcher(nil)

	result := d.Call(context.Background(), entity.Call{Contract: "content-nft", Function: "mint"})

	assert.False(t, result.Success)
	assert.Equal(t, entity.ErrCodeNotFound, result.Error)
}

func TestCall_RegisteredHandler(t *testing.T) {
	d := newDispatcher(nil)
	var got entity.Call
	d.Register("content-nft", "mint", func(_ context.Context, call entity.Call) (interface{}, error) {
		got = call
		return "u1", nil
	})

	call := entity.Call{Contract: "content-nft", Function: "mint", Sender: sender, Args: []interface{}{"https://example.com/content/1"}}
	result := d.Call(context.Background(), call)

	assert.True(t, result.Success)
	assert.Equal(t, "u1", result.Value)
	assert.Equal(t, call, got)
}

func TestCall_ErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want entity.ErrorCode
	}{
		{"sentinel", entity.ErrUnauthorized, entity.ErrCodeUnauthorized},
		{"wrapped", errors.Join(errors.New("context"), entity.ErrNotFound), entity.ErrCodeNotFound},
		{"contract error", entity.NewContractError(entity.ErrCodeInvalidArgument, "bad uri"), entity.ErrCodeInvalidArgument},
		{"plain", errors.New("db down"), entity.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(nil)
			d.Register("subscription", "renew-subscription", func(context.Context, entity.Call) (interface{}, error) {
				return nil, tt.err
			})

			result := d.Call(context.Background(), entity.Call{Contract: "subscription", Function: "renew-subscription"})

			assert.False(t, result.Success)
			assert.Equal(t, tt.want, result.Error)
		})
	}
}

func TestMock_ShadowsDefaultUntilReset(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher(nil)
	d.Register("content-nft", "get-last-token-id", constant("u0"))
	d.Mock("content-nft", "get-last-token-id", constant("u5"))

	call := entity.Call{Contract: "content-nft", Function: "get-last-token-id"}
	assert.Equal(t, "u5", d.Call(ctx, call).Value)

	d.Reset()
	assert.Equal(t, "u0", d.Call(ctx, call).Value)
	assert.Len(t, d.Calls(), 1)
}

func TestMock_WithoutDefault(t *testing.T) {
	d := newDispatcher(nil)
	d.Mock("subscription", "is-subscribed", constant(true))

	result := d.Call(context.Background(), entity.Call{Contract: "subscription", Function: "is-subscribed"})
	assert.True(t, result.Success)
	assert.Equal(t, true, result.Value)

	d.Reset()
	result = d.Call(context.Background(), entity.Call{Contract: "subscription", Function: "is-subscribed"})
	assert.Equal(t, entity.ErrCodeNotFound, result.Error)
}

func TestCall_RecordsEveryCall(t *testing.T) {
	ctx := context.Background()
	log := memory.NewCallLog()
	d := newDispatcher(log)
	d.Register("content-nft", "burn", func(context.Context, entity.Call) (interface{}, error) {
		return nil, entity.ErrUnauthorized
	})

	d.Call(ctx, entity.Call{Contract: "content-nft", Function: "burn", Sender: sender, Args: []interface{}{"u1"}})
	d.Call(ctx, entity.Call{Contract: "content-nft", Function: "missing", Sender: sender})

	calls := d.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, entity.ErrCodeUnauthorized, calls[0].ErrorCode)
	assert.Equal(t, uint64(100), calls[0].BlockHeight)
	assert.True(t, strings.HasPrefix(calls[0].TxID, "0x"))
	assert.Len(t, calls[0].TxID, 66)
	assert.NotEqual(t, calls[0].TxID, calls[1].TxID)

	persisted, err := log.List(ctx, persistent.CallFilter{Sender: sender}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
}

func TestRoutes(t *testing.T) {
	d := newDispatcher(nil)
	d.Register("subscription", "get-subscription", constant(nil))
	d.Register("content-nft", "mint", constant("u1"))
	d.Mock("content-nft", "mint", constant("u2"))
	d.Mock("content-nft", "burn", constant(nil))

	assert.Equal(t, []string{"content-nft.burn", "content-nft.mint", "subscription.get-subscription"}, d.Routes())
}
