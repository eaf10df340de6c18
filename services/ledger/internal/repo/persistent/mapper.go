package persistent

import (
	"encoding/json"

	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/model"
)

func ToTokenEntity(m *model.TokenModel) *entity.Token {
	if m == nil {
		return nil
	}

	return &entity.Token{
		ID:        m.ID,
		URI:       m.URI,
		Creator:   m.Creator,
		Owner:     m.Owner,
		MintedAt:  m.MintedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToTokenModel(e *entity.Token) *model.TokenModel {
	if e == nil {
		return nil
	}

	return &model.TokenModel{
		ID:        e.ID,
		URI:       e.URI,
		Creator:   e.Creator,
		Owner:     e.Owner,
		MintedAt:  e.MintedAt,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	if m == nil {
		return nil
	}

	return &entity.Subscription{
		Subscriber: m.Subscriber,
		Creator:    m.Creator,
		StartBlock: m.StartBlock,
		EndBlock:   m.EndBlock,
		Amount:     m.Amount,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToSubscriptionModel(e *entity.Subscription) *model.SubscriptionModel {
	if e == nil {
		return nil
	}

	return &model.SubscriptionModel{
		Subscriber: e.Subscriber,
		Creator:    e.Creator,
		StartBlock: e.StartBlock,
		EndBlock:   e.EndBlock,
		Amount:     e.Amount,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func ToCallRecordEntity(m *model.CallModel) *entity.CallRecord {
	if m == nil {
		return nil
	}

	var args []interface{}
	if m.Args != "" {
		_ = json.Unmarshal([]byte(m.Args), &args)
	}

	return &entity.CallRecord{
		ID:          m.ID,
		TxID:        m.TxID,
		Contract:    m.Contract,
		Function:    m.Function,
		Sender:      m.Sender,
		Args:        args,
		Success:     m.Success,
		ErrorCode:   entity.ErrorCode(m.ErrorCode),
		BlockHeight: m.BlockHeight,
		CreatedAt:   m.CreatedAt,
	}
}

func ToCallModel(e *entity.CallRecord) (*model.CallModel, error) {
	if e == nil {
		return nil, nil
	}

	args, err := json.Marshal(e.Args)
	if err != nil {
		return nil, err
	}

	return &model.CallModel{
		ID:          e.ID,
		TxID:        e.TxID,
		Contract:    e.Contract,
		Function:    e.Function,
		Sender:      e.Sender,
		Args:        string(args),
		Success:     e.Success,
		ErrorCode:   int(e.ErrorCode),
		BlockHeight: e.BlockHeight,
		CreatedAt:   e.CreatedAt,
	}, nil
}
