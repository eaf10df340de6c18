package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CallModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	TxID        string    `gorm:"type:varchar(66);uniqueIndex;not null" json:"tx_id"`
	Contract    string    `gorm:"type:varchar(64);not null;index" json:"contract"`
	Function    string    `gorm:"type:varchar(64);not null" json:"function"`
	Sender      string    `gorm:"type:varchar(128);index" json:"sender"`
	Args        string    `gorm:"type:jsonb" json:"args"`
	Success     bool      `gorm:"not null" json:"success"`
	ErrorCode   int       `gorm:"default:0" json:"error_code"`
	BlockHeight uint64    `gorm:"not null" json:"block_height"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (CallModel) TableName() string {
	return "contract_calls"
}

func (c *CallModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
