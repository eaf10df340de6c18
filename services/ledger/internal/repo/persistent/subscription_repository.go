package persistent

import (
	"context"
	"errors"
	"fmt"

	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	Get(ctx context.Context, subscriber, creator string) (*entity.Subscription, error)
	// Create inserts subscription, replacing a stored one for the same pair
	// only when it has expired at height. An active one is ErrConflict.
	Create(ctx context.Context, subscription *entity.Subscription, height uint64) error
	// Update applies fn to the stored subscription while holding it, and saves
	// the result unless fn fails.
	Update(ctx context.Context, subscriber, creator string, fn func(*entity.Subscription) error) (*entity.Subscription, error)
	Delete(ctx context.Context, subscriber, creator string) error
	ListByCreator(ctx context.Context, creator string) ([]*entity.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Get(ctx context.Context, subscriber, creator string) (*entity.Subscription, error) {
	var subscriptionModel model.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("subscriber = ? AND creator = ?", subscriber, creator).
		First(&subscriptionModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subscription %s -> %s: %w", subscriber, creator, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToSubscriptionEntity(&subscriptionModel), nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription, height uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.SubscriptionModel
		err := lockPair(tx, subscription.Subscriber, subscription.Creator).First(&existing).Error
		switch {
		case err == nil:
			if existing.EndBlock > height {
				return fmt.Errorf("subscription %s -> %s active until %d: %w",
					existing.Subscriber, existing.Creator, existing.EndBlock, entity.ErrConflict)
			}
			existing.StartBlock = subscription.StartBlock
			existing.EndBlock = subscription.EndBlock
			existing.Amount = subscription.Amount
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*subscription = *ToSubscriptionEntity(&existing)
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			subscriptionModel := ToSubscriptionModel(subscription)
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(subscriptionModel)
			if result.Error != nil {
				return result.Error
			}
			// another create for the pair committed first
			if result.RowsAffected == 0 {
				return fmt.Errorf("subscription %s -> %s: %w", subscription.Subscriber, subscription.Creator, entity.ErrConflict)
			}
			*subscription = *ToSubscriptionEntity(subscriptionModel)
			return nil
		default:
			return err
		}
	})
}

func (r *subscriptionRepository) Update(ctx context.Context, subscriber, creator string, fn func(*entity.Subscription) error) (*entity.Subscription, error) {
	var updated *entity.Subscription
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subscriptionModel model.SubscriptionModel
		if err := lockPair(tx, subscriber, creator).First(&subscriptionModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("subscription %s -> %s: %w", subscriber, creator, entity.ErrNotFound)
			}
			return err
		}

		subscription := ToSubscriptionEntity(&subscriptionModel)
		if err := fn(subscription); err != nil {
			return err
		}

		subscriptionModel.StartBlock = subscription.StartBlock
		subscriptionModel.EndBlock = subscription.EndBlock
		subscriptionModel.Amount = subscription.Amount
		if err := tx.Save(&subscriptionModel).Error; err != nil {
			return err
		}
		updated = ToSubscriptionEntity(&subscriptionModel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func lockPair(tx *gorm.DB, subscriber, creator string) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("subscriber = ? AND creator = ?", subscriber, creator)
}

func (r *subscriptionRepository) Delete(ctx context.Context, subscriber, creator string) error {
	result := r.db.WithContext(ctx).
		Where("subscriber = ? AND creator = ?", subscriber, creator).
		Delete(&model.SubscriptionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subscription %s -> %s: %w", subscriber, creator, entity.ErrNotFound)
	}
	return nil
}

func (r *subscriptionRepository) ListByCreator(ctx context.Context, creator string) ([]*entity.Subscription, error) {
	var subscriptionModels []model.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("creator = ?", creator).Order("created_at ASC").Find(&subscriptionModels).Error; err != nil {
		return nil, err
	}

	subscriptions := make([]*entity.Subscription, len(subscriptionModels))
	for i := range subscriptionModels {
		subscriptions[i] = ToSubscriptionEntity(&subscriptionModels[i])
	}
	return subscriptions, nil
}
