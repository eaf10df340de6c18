// Package contract binds the simulated contracts to dispatcher routes, turning
// positional call arguments into usecase calls.
package contract

import (
	"context"

	"content-ledger/pkg/clarity"
	"content-ledger/services/ledger/internal/dispatcher"
	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/usecase"
)

// RegisterContentNFT installs the content-nft functions on d.
func RegisterContentNFT(d *dispatcher.Dispatcher, uc usecase.ContentNFTUseCase) {
	c := entity.ContractContentNFT

	d.Register(c, "mint", func(ctx context.Context, call entity.Call) (interface{}, error) {
		uri, err := argString(call, 0)
		if err != nil {
			return nil, err
		}
		token, err := uc.Mint(ctx, call.Sender, uri)
		if err != nil {
			return nil, err
		}
		return clarity.Uint(token.ID), nil
	})

	d.Register(c, "get-last-token-id", func(ctx context.Context, call entity.Call) (interface{}, error) {
		id, err := uc.GetLastTokenID(ctx)
		if err != nil {
			return nil, err
		}
		return clarity.Uint(id), nil
	})

	d.Register(c, "get-token-uri", tokenField(uc, func(t *entity.Token) string { return t.URI }))
	d.Register(c, "get-token-creator", tokenField(uc, func(t *entity.Token) string { return t.Creator }))
	d.Register(c, "get-owner", tokenField(uc, func(t *entity.Token) string { return t.Owner }))

	// get-owned-tokens: owner [limit] [offset]
	d.Register(c, "get-owned-tokens", func(ctx context.Context, call entity.Call) (interface{}, error) {
		owner, err := argPrincipal(call, 0)
		if err != nil {
			return nil, err
		}
		limit, err := argOptionalInt(call, 1, 0)
		if err != nil {
			return nil, err
		}
		offset, err := argOptionalInt(call, 2, 0)
		if err != nil {
			return nil, err
		}
		tokens, err := uc.ListOwned(ctx, owner, limit, offset)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(tokens))
		for i, token := range tokens {
			ids[i] = clarity.Uint(token.ID)
		}
		return ids, nil
	})

	d.Register(c, "transfer", func(ctx context.Context, call entity.Call) (interface{}, error) {
		id, err := argUint(call, 0)
		if err != nil {
			return nil, err
		}
		sender, err := argString(call, 1)
		if err != nil {
			return nil, err
		}
		recipient, err := argString(call, 2)
		if err != nil {
			return nil, err
		}
		return nil, uc.Transfer(ctx, call.Sender, id, sender, recipient)
	})

	d.Register(c, "burn", func(ctx context.Context, call entity.Call) (interface{}, error) {
		id, err := argUint(call, 0)
		if err != nil {
			return nil, err
		}
		return nil, uc.Burn(ctx, call.Sender, id)
	})
}

func tokenField(uc usecase.ContentNFTUseCase, field func(*entity.Token) string) dispatcher.HandlerFunc {
	return func(ctx context.Context, call entity.Call) (interface{}, error) {
		id, err := argUint(call, 0)
		if err != nil {
			return nil, err
		}
		token, err := uc.GetToken(ctx, id)
		if err != nil {
			return nil, err
		}
		return field(token), nil
	}
}
