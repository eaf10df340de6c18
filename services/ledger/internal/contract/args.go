package contract

import (
	"math"

	"content-ledger/pkg/clarity"
	"content-ledger/services/ledger/internal/entity"
)

func argString(call entity.Call, i int) (string, error) {
	if i >= len(call.Args) {
		return "", entity.NewContractError(entity.ErrCodeInvalidArgument, "%s: missing argument %d", call.Function, i)
	}
	s, ok := call.Args[i].(string)
	if !ok {
		return "", entity.NewContractError(entity.ErrCodeInvalidArgument, "%s: argument %d must be a string", call.Function, i)
	}
	return s, nil
}

func argUint(call entity.Call, i int) (uint64, error) {
	if i >= len(call.Args) {
		return 0, entity.NewContractError(entity.ErrCodeInvalidArgument, "%s: missing argument %d", call.Function, i)
	}
	n, err := clarity.ToUint(call.Args[i])
	if err != nil {
		return 0, entity.NewContractError(entity.ErrCodeInvalidArgument, "%s: %v", call.Function, err)
	}
	return n, nil
}

func argPrincipal(call entity.Call, i int) (string, error) {
	s, err := argString(call, i)
	if err != nil {
		return "", err
	}
	if !clarity.IsPrincipal(s) {
		return "", entity.NewContractError(entity.ErrCodeInvalidArgument, "%s: invalid principal %q", call.Function, s)
	}
	return s, nil
}

// argOptionalInt reads an optional uint argument, capped at math.MaxInt32.
func argOptionalInt(call entity.Call, i, fallback int) (int, error) {
	if i >= len(call.Args) || call.Args[i] == nil {
		return fallback, nil
	}
	n, err := argUint(call, i)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(n), nil
}
