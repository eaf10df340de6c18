package entity

import (
	"math"
	"time"
)

// MaxStoredUint is the largest block height, duration or amount a BIGINT
// column can hold.
const MaxStoredUint uint64 = math.MaxInt64

type Subscription struct {
	Subscriber string    `json:"subscriber"`
	Creator    string    `json:"creator"`
	StartBlock uint64    `json:"start_block"`
	EndBlock   uint64    `json:"end_block"`
	Amount     uint64    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Duration is the number of blocks one subscription period lasts.
func (s *Subscription) Duration() uint64 {
	return s.EndBlock - s.StartBlock
}

// ActiveAt reports whether the subscription still grants access at height.
func (s *Subscription) ActiveAt(height uint64) bool {
	return height < s.EndBlock
}

// SubscriptionView is the tuple get-subscription returns.
type SubscriptionView struct {
	StartBlock uint64 `json:"start_block"`
	EndBlock   uint64 `json:"end_block"`
	Amount     uint64 `json:"amount"`
}

func (s *Subscription) View() *SubscriptionView {
	return &SubscriptionView{
		StartBlock: s.StartBlock,
		EndBlock:   s.EndBlock,
		Amount:     s.Amount,
	}
}
