package contract

import (
	"context"
	"encoding/json"
	"testing"

	"content-ledger/pkg/logger"
	"content-ledger/services/ledger/internal/chain"
	"content-ledger/services/ledger/internal/dispatcher"
	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/repo/memory"
	"content-ledger/services/ledger/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contractOwner = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	user1         = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"
	user2         = "ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0"
)

type harness struct {
	d     *dispatcher.Dispatcher
	chain *chain.MemoryChain
}

func newHarness() *harness {
	log := logger.New()
	c := chain.NewMemoryChain(100)
	d := dispatcher.New(c, memory.NewCallLog(), log)
	RegisterContentNFT(d, usecase.NewContentNFTUseCase(memory.NewTokenStore(), c, nil, nil, log))
	RegisterSubscription(d, usecase.NewSubscriptionUseCase(memory.NewSubscriptionStore(), c, nil, log))
	return &harness{d: d, chain: c}
}

func (h *harness) call(contract, function, sender string, args ...interface{}) entity.Result {
	return h.d.Call(context.Background(), entity.Call{Contract: contract, Function: function, Sender: sender, Args: args})
}

func (h *harness) nft(function, sender string, args ...interface{}) entity.Result {
	return h.call(entity.ContractContentNFT, function, sender, args...)
}

func (h *harness) sub(function, sender string, args ...interface{}) entity.Result {
	return h.call(entity.ContractSubscription, function, sender, args...)
}

func wire(t *testing.T, r entity.Result) string {
	t.Helper()
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	return string(raw)
}

func TestContentNFT_Mint(t *testing.T) {
	h := newHarness()
	uri := "https://example.com/content/1"

	assert.Equal(t, entity.Ok("u1"), h.nft("mint", contractOwner, uri))
	assert.Equal(t, entity.Ok("u1"), h.nft("get-last-token-id", contractOwner))
	assert.Equal(t, entity.Ok(uri), h.nft("get-token-uri", contractOwner, "u1"))
	assert.JSONEq(t, `{"success":true,"value":"u1"}`, wire(t, h.nft("get-last-token-id", "")))
}

func TestContentNFT_LastTokenIDBeforeMint(t *testing.T) {
	h := newHarness()
	assert.Equal(t, entity.Ok("u0"), h.nft("get-last-token-id", contractOwner))
}

func TestContentNFT_TokenCreator(t *testing.T) {
	h := newHarness()
	h.nft("mint", contractOwner, "https://example.com/content/2")

	assert.Equal(t, entity.Ok(contractOwner), h.nft("get-token-creator", user1, "u1"))
}

func TestContentNFT_Transfer(t *testing.T) {
	h := newHarness()
	h.nft("mint", contractOwner, "https://example.com/content/3")

	result := h.nft("transfer", contractOwner, "u1", contractOwner, user1)
	assert.JSONEq(t, `{"success":true}`, wire(t, result))

	assert.Equal(t, entity.Ok(user1), h.nft("get-owner", contractOwner, "u1"))
	assert.Equal(t, entity.Ok(contractOwner), h.nft("get-token-creator", contractOwner, "u1"))
}

func TestContentNFT_TransferByNonOwner(t *testing.T) {
	h := newHarness()
	h.nft("mint", contractOwner, "https://example.com/content/3")

	result := h.nft("transfer", user2, "u1", user2, user1)
	assert.JSONEq(t, `{"success":false,"error":403}`, wire(t, result))
	assert.Equal(t, entity.Ok(contractOwner), h.nft("get-owner", user2, "u1"))
}

func TestContentNFT_Burn(t *testing.T) {
	h := newHarness()
	h.nft("mint", contractOwner, "https://example.com/content/4")

	assert.JSONEq(t, `{"success":true}`, wire(t, h.nft("burn", contractOwner, "u1")))
	assert.JSONEq(t, `{"success":false,"error":404}`, wire(t, h.nft("get-token-uri", contractOwner, "u1")))
}

func TestContentNFT_BurnByNonOwner(t *testing.T) {
	h := newHarness()
	uri := "https://example.com/content/5"
	h.nft("mint", contractOwner, uri)

	assert.Equal(t, entity.Fail(entity.ErrCodeUnauthorized), h.nft("burn", user2, "u1"))
	assert.Equal(t, entity.Ok(uri), h.nft("get-token-uri", contractOwner, "u1"))
}

func TestContentNFT_GetOwnedTokens(t *testing.T) {
	h := newHarness()
	for i := 0; i < 3; i++ {
		h.nft("mint", contractOwner, "https://example.com/content/6")
	}
	h.nft("transfer", contractOwner, "u2", contractOwner, user1)
	h.nft("burn", contractOwner, "u3")

	assert.Equal(t, entity.Ok([]string{"u1"}), h.nft("get-owned-tokens", user2, contractOwner))
	assert.Equal(t, entity.Ok([]string{"u2"}), h.nft("get-owned-tokens", user2, user1, "u10", "u0"))
	assert.JSONEq(t, `{"success":true,"value":[]}`, wire(t, h.nft("get-owned-tokens", user2, user2)))
	assert.JSONEq(t, `{"success":true,"value":[]}`, wire(t, h.nft("get-owned-tokens", user2, contractOwner, "u10", "u1")))
	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), h.nft("get-owned-tokens", user2, "bob"))
	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), h.nft("get-owned-tokens", user2, user1, "ten"))
}

func TestContentNFT_BadArguments(t *testing.T) {
	h := newHarness()

	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), h.nft("mint", contractOwner))
	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), h.nft("mint", contractOwner, 42))
	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), h.nft("get-token-uri", contractOwner, "token-1"))
	assert.Equal(t, entity.Fail(entity.ErrCodeNotFound), h.nft("get-token-uri", contractOwner, "u7"))
	assert.Equal(t, entity.Fail(entity.ErrCodeNotFound), h.nft("set-token-uri", contractOwner, "u1"))
}

func TestSubscription_Create(t *testing.T) {
	h := newHarness()

	result := h.sub("create-subscription", user1, user2, "u100", "u1000")
	assert.JSONEq(t, `{"success":true}`, wire(t, result))

	got := h.sub("get-subscription", contractOwner, user1, user2)
	assert.JSONEq(t, `{"success":true,"value":{"start_block":100,"end_block":200,"amount":1000}}`, wire(t, got))
}

func TestSubscription_Renew(t *testing.T) {
	h := newHarness()
	h.sub("create-subscription", user1, user2, "u100", "u1000")

	assert.Equal(t, entity.Ok(nil), h.sub("renew-subscription", user1, user2))

	got := h.sub("get-subscription", user1, user1, user2)
	assert.Equal(t, entity.Ok(&entity.SubscriptionView{StartBlock: 200, EndBlock: 300, Amount: 1000}), got)
}

func TestSubscription_Cancel(t *testing.T) {
	h := newHarness()
	h.sub("create-subscription", user1, user2, "u100", "u1000")

	assert.JSONEq(t, `{"success":true}`, wire(t, h.sub("cancel-subscription", user1, user2)))
	assert.JSONEq(t, `{"success":true,"value":null}`, wire(t, h.sub("get-subscription", user1, user1, user2)))
	assert.Equal(t, entity.Fail(entity.ErrCodeNotFound), h.sub("cancel-subscription", user1, user2))
}

func TestSubscription_IsSubscribed(t *testing.T) {
	h := newHarness()
	h.sub("create-subscription", user1, user2, "u100", "u1000")
	h.chain.Advance(context.Background(), 50)

	assert.Equal(t, entity.Ok(true), h.sub("is-subscribed", user1, user1, user2))
	assert.Equal(t, entity.Ok(false), h.sub("is-subscribed", user1, contractOwner, user2))

	h.chain.Advance(context.Background(), 50)
	assert.Equal(t, entity.Ok(false), h.sub("is-subscribed", user1, user1, user2))
}

func TestSubscription_CreatorSubscribers(t *testing.T) {
	h := newHarness()
	h.sub("create-subscription", user1, user2, "u10", "u5")
	h.sub("create-subscription", contractOwner, user2, "u10", "u5")

	result := h.sub("get-creator-subscribers", user1, user2)
	require.True(t, result.Success)
	assert.ElementsMatch(t, []string{user1, contractOwner}, result.Value)
}

func TestSubscription_Errors(t *testing.T) {
	h := newHarness()

	assert.Equal(t, entity.Fail(entity.ErrCodeNotFound), h.sub("renew-subscription", user1, user2))
	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), h.sub("create-subscription", user1, user2, "u0", "u1000"))
	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), h.sub("create-subscription", user1, "creator", "u100", "u1000"))

	h.sub("create-subscription", user1, user2, "u100", "u1000")
	assert.Equal(t, entity.Fail(entity.ErrCodeConflict), h.sub("create-subscription", user1, user2, "u100", "u1000"))
}

func TestSubscription_RejectsEndBlockOverflow(t *testing.T) {
	h := newHarness()

	result := h.sub("create-subscription", user1, user2, "u18446744073709551615", "u1000")
	assert.JSONEq(t, `{"success":false,"error":400}`, wire(t, result))
	assert.JSONEq(t, `{"success":true,"value":null}`, wire(t, h.sub("get-subscription", user1, user1, user2)))

	result = h.sub("create-subscription", user1, user2, "u100", "u18446744073709551615")
	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), result)

	// end block lands exactly on the largest storable height
	require.True(t, h.sub("create-subscription", user1, user2, "u9223372036854775707", "u1000").Success)
	assert.Equal(t, entity.Fail(entity.ErrCodeInvalidArgument), h.sub("renew-subscription", user1, user2))
	assert.Equal(t,
		entity.Ok(&entity.SubscriptionView{StartBlock: 100, EndBlock: 9223372036854775807, Amount: 1000}),
		h.sub("get-subscription", user1, user1, user2))
}

func TestMock_OverridesContractUntilReset(t *testing.T) {
	h := newHarness()
	h.nft("mint", contractOwner, "https://example.com/content/1")

	h.d.Mock(entity.ContractContentNFT, "burn", func(context.Context, entity.Call) (interface{}, error) {
		return nil, entity.ErrUnauthorized
	})
	assert.Equal(t, entity.Fail(entity.ErrCodeUnauthorized), h.nft("burn", contractOwner, "u1"))

	h.d.Reset()
	assert.Equal(t, entity.Ok(nil), h.nft("burn", contractOwner, "u1"))
}
