package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionModel_BeforeCreate(t *testing.T) {
	m := &SubscriptionModel{Subscriber: "a", Creator: "b"}
	assert.NoError(t, m.BeforeCreate(nil))
	assert.NotEmpty(t, m.ID)

	existing := &SubscriptionModel{ID: "existing-id"}
	assert.NoError(t, existing.BeforeCreate(nil))
	assert.Equal(t, "existing-id", existing.ID)
}

func TestCallModel_BeforeCreate(t *testing.T) {
	m := &CallModel{TxID: "0xabc"}
	assert.NoError(t, m.BeforeCreate(nil))
	assert.NotEmpty(t, m.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "tokens", TokenModel{}.TableName())
	assert.Equal(t, "contract_vars", ContractVarModel{}.TableName())
	assert.Equal(t, "subscriptions", SubscriptionModel{}.TableName())
	assert.Equal(t, "contract_calls", CallModel{}.TableName())
}
