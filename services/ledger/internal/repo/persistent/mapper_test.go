package persistent

import (
	"testing"

	"content-ledger/services/ledger/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallMapping_KeepsArgsAndCode(t *testing.T) {
	record := &entity.CallRecord{
		TxID:        "0x01",
		Contract:    entity.ContractContentNFT,
		Function:    "burn",
		Sender:      "ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0",
		Args:        []interface{}{"u1"},
		ErrorCode:   entity.ErrCodeUnauthorized,
		BlockHeight: 12,
	}

	m, err := ToCallModel(record)
	require.NoError(t, err)
	assert.Equal(t, `["u1"]`, m.Args)
	assert.Equal(t, 403, m.ErrorCode)

	back := ToCallRecordEntity(m)
	assert.Equal(t, record.Args, back.Args)
	assert.Equal(t, entity.ErrCodeUnauthorized, back.ErrorCode)
	assert.Equal(t, uint64(12), back.BlockHeight)
}

func TestMappers_Nil(t *testing.T) {
	assert.Nil(t, ToTokenEntity(nil))
	assert.Nil(t, ToTokenModel(nil))
	assert.Nil(t, ToSubscriptionEntity(nil))
	assert.Nil(t, ToSubscriptionModel(nil))
	assert.Nil(t, ToCallRecordEntity(nil))

	m, err := ToCallModel(nil)
	assert.NoError(t, err)
	assert.Nil(t, m)
}
