package model

import "time"

type TokenModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	URI       string    `gorm:"type:varchar(256);not null" json:"uri"`
	Creator   string    `gorm:"type:varchar(128);not null;index" json:"creator"`
	Owner     string    `gorm:"type:varchar(128);not null;index" json:"owner"`
	MintedAt  uint64    `gorm:"not null" json:"minted_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TokenModel) TableName() string {
	return "tokens"
}

// ContractVarModel holds a contract data-var, such as the last minted token id.
type ContractVarModel struct {
	Contract  string    `gorm:"primaryKey;type:varchar(64)" json:"contract"`
	Name      string    `gorm:"primaryKey;type:varchar(64)" json:"name"`
	Value     uint64    `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ContractVarModel) TableName() string {
	return "contract_vars"
}
