package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"content-ledger/pkg/clarity"
	"content-ledger/pkg/logger"
	"content-ledger/services/ledger/internal/chain"
	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/repo/persistent"
)

type SubscriptionUseCase interface {
	Create(ctx context.Context, subscriber, creator string, duration, amount uint64) (*entity.Subscription, error)
	Renew(ctx context.Context, subscriber, creator string) (*entity.Subscription, error)
	Cancel(ctx context.Context, subscriber, creator string) error
	Get(ctx context.Context, subscriber, creator string) (*entity.Subscription, error)
	IsSubscribed(ctx context.Context, subscriber, creator string) (bool, error)
	ListSubscribers(ctx context.Context, creator string) ([]string, error)
}

type subscriptionUseCase struct {
	subscriptionRepo persistent.SubscriptionRepository
	chain            chain.Chain
	publisher        EventPublisher
	logger           *logger.Logger
}

func NewSubscriptionUseCase(
	subscriptionRepo persistent.SubscriptionRepository,
	chain chain.Chain,
	publisher EventPublisher,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		chain:            chain,
		publisher:        publisher,
		logger:           logger,
	}
}

// Create opens a subscription from the current block for duration blocks. An
// expired subscription for the same pair is replaced; an active one is a
// conflict.
func (uc *subscriptionUseCase) Create(ctx context.Context, subscriber, creator string, duration, amount uint64) (*entity.Subscription, error) {
	if err := validatePair(subscriber, creator); err != nil {
		return nil, err
	}
	if duration == 0 {
		return nil, entity.NewContractError(entity.ErrCodeInvalidArgument, "duration must be positive")
	}
	if amount == 0 || amount > entity.MaxStoredUint {
		return nil, entity.NewContractError(entity.ErrCodeInvalidArgument, "amount must be between 1 and %d", entity.MaxStoredUint)
	}

	height, err := uc.chain.Height(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read block height: %w", err)
	}
	if height > entity.MaxStoredUint || duration > entity.MaxStoredUint-height {
		return nil, entity.NewContractError(entity.ErrCodeInvalidArgument, "duration %d from block %d overflows end block", duration, height)
	}

	subscription := &entity.Subscription{
		Subscriber: subscriber,
		Creator:    creator,
		StartBlock: height,
		EndBlock:   height + duration,
		Amount:     amount,
	}
	if err := uc.subscriptionRepo.Create(ctx, subscription, height); err != nil {
		if entity.CodeOf(err) == entity.ErrCodeInternal {
			uc.logger.Error("Failed to save subscription: %v", err)
			return nil, fmt.Errorf("failed to create subscription: %w", err)
		}
		return nil, err
	}

	uc.publish(entity.EventSubscriptionCreated, height, subscription)
	return subscription, nil
}

// Renew appends one more period of the same length after the current end
// block, so end_block only ever grows.
func (uc *subscriptionUseCase) Renew(ctx context.Context, subscriber, creator string) (*entity.Subscription, error) {
	subscription, err := uc.subscriptionRepo.Update(ctx, subscriber, creator, func(s *entity.Subscription) error {
		duration := s.Duration()
		if duration > entity.MaxStoredUint-s.EndBlock {
			return entity.NewContractError(entity.ErrCodeInvalidArgument, "renewal past block %d overflows end block", s.EndBlock)
		}
		s.StartBlock = s.EndBlock
		s.EndBlock += duration
		return nil
	})
	if err != nil {
		if entity.CodeOf(err) == entity.ErrCodeInternal {
			uc.logger.Error("Failed to renew subscription: %v", err)
			return nil, fmt.Errorf("failed to renew subscription: %w", err)
		}
		return nil, err
	}

	height, _ := uc.chain.Height(ctx)
	uc.publish(entity.EventSubscriptionRenewed, height, subscription)
	return subscription, nil
}

func (uc *subscriptionUseCase) Cancel(ctx context.Context, subscriber, creator string) error {
	subscription, err := uc.subscriptionRepo.Get(ctx, subscriber, creator)
	if err != nil {
		return err
	}
	if err := uc.subscriptionRepo.Delete(ctx, subscriber, creator); err != nil {
		return err
	}

	height, _ := uc.chain.Height(ctx)
	uc.publish(entity.EventSubscriptionCanceled, height, subscription)
	return nil
}

// Get returns nil without error when the pair has no subscription.
func (uc *subscriptionUseCase) Get(ctx context.Context, subscriber, creator string) (*entity.Subscription, error) {
	subscription, err := uc.subscriptionRepo.Get(ctx, subscriber, creator)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (uc *subscriptionUseCase) IsSubscribed(ctx context.Context, subscriber, creator string) (bool, error) {
	subscription, err := uc.Get(ctx, subscriber, creator)
	if err != nil || subscription == nil {
		return false, err
	}

	height, err := uc.chain.Height(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read block height: %w", err)
	}
	return subscription.ActiveAt(height), nil
}

func (uc *subscriptionUseCase) ListSubscribers(ctx context.Context, creator string) ([]string, error) {
	subscriptions, err := uc.subscriptionRepo.ListByCreator(ctx, creator)
	if err != nil {
		uc.logger.Error("Failed to list subscribers of %s: %v", creator, err)
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	subscribers := make([]string, len(subscriptions))
	for i, s := range subscriptions {
		subscribers[i] = s.Subscriber
	}
	return subscribers, nil
}

func (uc *subscriptionUseCase) publish(eventType entity.EventType, height uint64, s *entity.Subscription) {
	if uc.publisher == nil {
		return
	}
	event := entity.Event{
		Contract:    entity.ContractSubscription,
		Type:        eventType,
		BlockHeight: height,
		Attributes: map[string]string{
			"subscriber":  s.Subscriber,
			"creator":     s.Creator,
			"start_block": strconv.FormatUint(s.StartBlock, 10),
			"end_block":   strconv.FormatUint(s.EndBlock, 10),
			"amount":      strconv.FormatUint(s.Amount, 10),
		},
	}
	if err := uc.publisher.Publish(event.RoutingKey(), event); err != nil {
		uc.logger.Error("[EVENTS] Failed to publish %s: %v", event.RoutingKey(), err)
	}
}

func validatePair(subscriber, creator string) error {
	if !clarity.IsPrincipal(subscriber) {
		return entity.NewContractError(entity.ErrCodeInvalidArgument, "invalid subscriber %q", subscriber)
	}
	if !clarity.IsPrincipal(creator) {
		return entity.NewContractError(entity.ErrCodeInvalidArgument, "invalid creator %q", creator)
	}
	if subscriber == creator {
		return entity.NewContractError(entity.ErrCodeInvalidArgument, "cannot subscribe to yourself")
	}
	return nil
}
