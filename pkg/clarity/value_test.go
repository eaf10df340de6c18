package clarity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint(t *testing.T) {
	assert.Equal(t, "u0", Uint(0))
	assert.Equal(t, "u1000", Uint(1000))
}

func TestToUint(t *testing.T) {
	valid := []struct {
		in   interface{}
		want uint64
	}{
		{"u1", 1},
		{"u100", 100},
		{"42", 42},
		{json.Number("7"), 7},
		{uint64(9), 9},
		{int(3), 3},
		{float64(1000), 1000},
	}
	for _, tc := range valid {
		got, err := ToUint(tc.in)
		assert.NoError(t, err, "%v", tc.in)
		assert.Equal(t, tc.want, got)
	}

	invalid := []interface{}{"", "u", "ux1", "-1", -5, 1.5, true, nil}
	for _, in := range invalid {
		_, err := ToUint(in)
		assert.Error(t, err, "%v", in)
	}
}

func TestIsPrincipal(t *testing.T) {
	assert.True(t, IsPrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"))
	assert.True(t, IsPrincipal("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"))
	assert.True(t, IsPrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.content-nft"))

	assert.False(t, IsPrincipal(""))
	assert.False(t, IsPrincipal("alice"))
	assert.False(t, IsPrincipal("SX1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"))
	assert.False(t, IsPrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGI"))
	assert.False(t, IsPrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM."))
	assert.False(t, IsPrincipal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.1nft"))
}
