package entity

import "time"

type Token struct {
	ID        uint64    `json:"id"`
	URI       string    `json:"uri"`
	Creator   string    `json:"creator"`
	Owner     string    `json:"owner"`
	MintedAt  uint64    `json:"minted_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
