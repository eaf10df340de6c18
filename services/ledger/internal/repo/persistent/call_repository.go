package persistent

import (
	"context"

	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/model"

	"gorm.io/gorm"
)

type CallFilter struct {
	Contract string
	Sender   string
}

type CallRepository interface {
	Create(ctx context.Context, record *entity.CallRecord) error
	List(ctx context.Context, filter CallFilter, limit, offset int) ([]*entity.CallRecord, error)
}

type callRepository struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) CallRepository {
	return &callRepository{db: db}
}

func (r *callRepository) Create(ctx context.Context, record *entity.CallRecord) error {
	callModel, err := ToCallModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(callModel).Error; err != nil {
		return err
	}
	record.ID = callModel.ID
	return nil
}

func (r *callRepository) List(ctx context.Context, filter CallFilter, limit, offset int) ([]*entity.CallRecord, error) {
	var callModels []model.CallModel
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Contract != "" {
		query = query.Where("contract = ?", filter.Contract)
	}
	if filter.Sender != "" {
		query = query.Where("sender = ?", filter.Sender)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&callModels).Error; err != nil {
		return nil, err
	}

	records := make([]*entity.CallRecord, len(callModels))
	for i := range callModels {
		records[i] = ToCallRecordEntity(&callModels[i])
	}
	return records, nil
}
