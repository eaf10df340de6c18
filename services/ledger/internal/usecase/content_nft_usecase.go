package usecase

import (
	"context"
	"fmt"

	"content-ledger/pkg/clarity"
	"content-ledger/pkg/logger"
	"content-ledger/services/ledger/internal/chain"
	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	maxTokenURILength = 256
	defaultPageSize   = 20
	maxPageSize       = 100
)

type ContentNFTUseCase interface {
	Mint(ctx context.Context, sender, uri string) (*entity.Token, error)
	GetLastTokenID(ctx context.Context) (uint64, error)
	GetToken(ctx context.Context, id uint64) (*entity.Token, error)
	Transfer(ctx context.Context, caller string, id uint64, sender, recipient string) error
	Burn(ctx context.Context, caller string, id uint64) error
	ListOwned(ctx context.Context, owner string, limit, offset int) ([]*entity.Token, error)
}

// EventPublisher is satisfied by queue.Client.
type EventPublisher interface {
	Publish(routingKey string, event interface{}) error
}

type contentNFTUseCase struct {
	tokenRepo persistent.TokenRepository
	chain     chain.Chain
	publisher EventPublisher
	cache     TokenCache
	logger    *logger.Logger
}

func NewContentNFTUseCase(
	tokenRepo persistent.TokenRepository,
	chain chain.Chain,
	publisher EventPublisher,
	redisClient *redis.Client,
	logger *logger.Logger,
) ContentNFTUseCase {
	var cache TokenCache
	if redisClient != nil {
		cache = NewRedisTokenCache(redisClient, logger)
	}
	return newContentNFTUseCase(tokenRepo, chain, publisher, cache, logger)
}

func newContentNFTUseCase(
	tokenRepo persistent.TokenRepository,
	chain chain.Chain,
	publisher EventPublisher,
	cache TokenCache,
	logger *logger.Logger,
) *contentNFTUseCase {
	return &contentNFTUseCase{
		tokenRepo: tokenRepo,
		chain:     chain,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

func (uc *contentNFTUseCase) Mint(ctx context.Context, sender, uri string) (*entity.Token, error) {
	if !clarity.IsPrincipal(sender) {
		return nil, entity.NewContractError(entity.ErrCodeInvalidArgument, "invalid sender %q", sender)
	}
	if uri == "" || len(uri) > maxTokenURILength {
		return nil, entity.NewContractError(entity.ErrCodeInvalidArgument, "token uri must be 1-%d chars", maxTokenURILength)
	}

	height, err := uc.chain.Height(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read block height: %w", err)
	}

	token, err := uc.tokenRepo.Mint(ctx, uri, sender, height)
	if err != nil {
		uc.logger.Error("Failed to mint token: %v", err)
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}

	uc.cacheToken(ctx, token)
	uc.publish(entity.Event{
		Contract:    entity.ContractContentNFT,
		Type:        entity.EventMint,
		BlockHeight: height,
		Attributes: map[string]string{
			"id":        clarity.Uint(token.ID),
			"uri":       token.URI,
			"recipient": token.Owner,
		},
	})
	return token, nil
}

func (uc *contentNFTUseCase) GetLastTokenID(ctx context.Context) (uint64, error) {
	return uc.tokenRepo.LastTokenID(ctx)
}

func (uc *contentNFTUseCase) GetToken(ctx context.Context, id uint64) (*entity.Token, error) {
	if token, hit := uc.cachedToken(ctx, id); hit {
		if token == nil {
			return nil, fmt.Errorf("token u%d burned: %w", id, entity.ErrNotFound)
		}
		return token, nil
	}

	token, err := uc.tokenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cacheToken(ctx, token)
	return token, nil
}

// Transfer moves id from sender to recipient. The caller must be the sender
// and the sender must own the token when the write lands.
func (uc *contentNFTUseCase) Transfer(ctx context.Context, caller string, id uint64, sender, recipient string) error {
	if !clarity.IsPrincipal(recipient) {
		return entity.NewContractError(entity.ErrCodeInvalidArgument, "invalid recipient %q", recipient)
	}

	if caller != sender {
		if _, err := uc.tokenRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("transfer u%d from %s by %s: %w", id, sender, caller, entity.ErrUnauthorized)
	}

	token, err := uc.tokenRepo.UpdateOwner(ctx, id, sender, recipient)
	if err != nil {
		return err
	}
	uc.cacheToken(ctx, token)

	height, _ := uc.chain.Height(ctx)
	uc.publish(entity.Event{
		Contract:    entity.ContractContentNFT,
		Type:        entity.EventTransfer,
		BlockHeight: height,
		Attributes: map[string]string{
			"id":        clarity.Uint(id),
			"sender":    sender,
			"recipient": recipient,
		},
	})
	return nil
}

func (uc *contentNFTUseCase) Burn(ctx context.Context, caller string, id uint64) error {
	if err := uc.tokenRepo.Delete(ctx, id, caller); err != nil {
		return err
	}
	uc.forgetToken(ctx, id)

	height, _ := uc.chain.Height(ctx)
	uc.publish(entity.Event{
		Contract:    entity.ContractContentNFT,
		Type:        entity.EventBurn,
		BlockHeight: height,
		Attributes: map[string]string{
			"id":    clarity.Uint(id),
			"owner": caller,
		},
	})
	return nil
}

func (uc *contentNFTUseCase) ListOwned(ctx context.Context, owner string, limit, offset int) ([]*entity.Token, error) {
	if !clarity.IsPrincipal(owner) {
		return nil, entity.NewContractError(entity.ErrCodeInvalidArgument, "invalid owner %q", owner)
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	tokens, err := uc.tokenRepo.ListByOwner(ctx, owner, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list tokens for %s: %v", owner, err)
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

func (uc *contentNFTUseCase) publish(event entity.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(event.RoutingKey(), event); err != nil {
		uc.logger.Error("[EVENTS] Failed to publish %s: %v", event.RoutingKey(), err)
	}
}

func (uc *contentNFTUseCase) cacheToken(ctx context.Context, token *entity.Token) {
	if uc.cache != nil {
		uc.cache.Store(ctx, token)
	}
}

func (uc *contentNFTUseCase) cachedToken(ctx context.Context, id uint64) (*entity.Token, bool) {
	if uc.cache == nil {
		return nil, false
	}
	return uc.cache.Load(ctx, id)
}

func (uc *contentNFTUseCase) forgetToken(ctx context.Context, id uint64) {
	if uc.cache != nil {
		uc.cache.Forget(ctx, id)
	}
}
