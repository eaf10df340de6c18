package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	Subscriber string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_subscriber_creator" json:"subscriber"`
	Creator    string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_subscriber_creator;index" json:"creator"`
	StartBlock uint64    `gorm:"not null" json:"start_block"`
	EndBlock   uint64    `gorm:"not null" json:"end_block"`
	Amount     uint64    `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
