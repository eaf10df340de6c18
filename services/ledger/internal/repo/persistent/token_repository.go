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

const lastTokenIDVar = "last-token-id"

type TokenRepository interface {
	Mint(ctx context.Context, uri, creator string, height uint64) (*entity.Token, error)
	GetByID(ctx context.Context, id uint64) (*entity.Token, error)
	LastTokenID(ctx context.Context) (uint64, error)
	// UpdateOwner moves id from one owner to another only while from still
	// owns it. It fails with ErrNotFound or ErrUnauthorized otherwise.
	UpdateOwner(ctx context.Context, id uint64, from, to string) (*entity.Token, error)
	// Delete removes id only while owner still owns it.
	Delete(ctx context.Context, id uint64, owner string) error
	ListByOwner(ctx context.Context, owner string, limit, offset int) ([]*entity.Token, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Mint bumps the last-token-id var under a row lock and inserts the token in
// the same transaction, so ids stay strictly increasing across replicas.
func (r *tokenRepository) Mint(ctx context.Context, uri, creator string, height uint64) (*entity.Token, error) {
	var minted *entity.Token
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter := model.ContractVarModel{Contract: entity.ContractContentNFT, Name: lastTokenIDVar}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("contract = ? AND name = ?", counter.Contract, counter.Name).
			First(&counter).Error; err != nil {
			return err
		}

		counter.Value++
		if err := tx.Save(&counter).Error; err != nil {
			return err
		}

		tokenModel := &model.TokenModel{
			ID:       counter.Value,
			URI:      uri,
			Creator:  creator,
			Owner:    creator,
			MintedAt: height,
		}
		if err := tx.Create(tokenModel).Error; err != nil {
			return err
		}
		minted = ToTokenEntity(tokenModel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return minted, nil
}

func (r *tokenRepository) GetByID(ctx context.Context, id uint64) (*entity.Token, error) {
	var tokenModel model.TokenModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tokenModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token u%d: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToTokenEntity(&tokenModel), nil
}

func (r *tokenRepository) LastTokenID(ctx context.Context) (uint64, error) {
	var counter model.ContractVarModel
	err := r.db.WithContext(ctx).
		Where("contract = ? AND name = ?", entity.ContractContentNFT, lastTokenIDVar).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func (r *tokenRepository) UpdateOwner(ctx context.Context, id uint64, from, to string) (*entity.Token, error) {
	var tokenModel model.TokenModel
	result := ownedBy(r.db.WithContext(ctx).Model(&tokenModel).Clauses(clause.Returning{}), id, from).
		Update("owner", to)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, r.notOwned(ctx, id, from)
	}
	return ToTokenEntity(&tokenModel), nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uint64, owner string) error {
	result := ownedBy(r.db.WithContext(ctx), id, owner).Delete(&model.TokenModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.notOwned(ctx, id, owner)
	}
	return nil
}

// ownedBy guards a write so it only touches id while owner holds it.
func ownedBy(tx *gorm.DB, id uint64, owner string) *gorm.DB {
	return tx.Where("id = ? AND owner = ?", id, owner)
}

// notOwned explains a guarded write that matched no row.
func (r *tokenRepository) notOwned(ctx context.Context, id uint64, owner string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("token u%d not owned by %s: %w", id, owner, entity.ErrUnauthorized)
}

func (r *tokenRepository) ListByOwner(ctx context.Context, owner string, limit, offset int) ([]*entity.Token, error) {
	var tokenModels []model.TokenModel
	query := r.db.WithContext(ctx).Where("owner = ?", owner).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&tokenModels).Error; err != nil {
		return nil, err
	}

	tokens := make([]*entity.Token, len(tokenModels))
	for i := range tokenModels {
		tokens[i] = ToTokenEntity(&tokenModels[i])
	}
	return tokens, nil
}
