// Package clarity converts between Go values and the literal forms contract
// calls use on the wire: unsigned integers as "u<n>" and standard principals.
package clarity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// c32 alphabet used by Stacks addresses.
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	minPrincipalLength = 39
	maxPrincipalLength = 41
	maxContractName    = 40
)

// Uint renders n as a Clarity uint literal.
func Uint(n uint64) string {
	return "u" + strconv.FormatUint(n, 10)
}

// ToUint accepts "u<n>", a decimal string, a json.Number or any Go integer or
// float without a fractional part.
func ToUint(v interface{}) (uint64, error) {
	switch t := v.(type) {
	case string:
		s := strings.TrimPrefix(t, "u")
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid uint %q", t)
		}
		return n, nil
	case json.Number:
		return ToUint(t.String())
	case uint64:
		return t, nil
	case uint:
		return uint64(t), nil
	case uint32:
		return uint64(t), nil
	case int:
		if t < 0 {
			return 0, fmt.Errorf("negative uint %d", t)
		}
		return uint64(t), nil
	case int64:
		if t < 0 {
			return 0, fmt.Errorf("negative uint %d", t)
		}
		return uint64(t), nil
	case int32:
		if t < 0 {
			return 0, fmt.Errorf("negative uint %d", t)
		}
		return uint64(t), nil
	case float64:
		if t < 0 || t != float64(uint64(t)) {
			return 0, fmt.Errorf("invalid uint %v", t)
		}
		return uint64(t), nil
	default:
		return 0, fmt.Errorf("unsupported uint type %T", v)
	}
}

// IsPrincipal reports whether s is a standard principal, optionally followed by
// ".<contract-name>".
func IsPrincipal(s string) bool {
	address, contract, hasContract := strings.Cut(s, ".")
	if hasContract && !isContractName(contract) {
		return false
	}
	if len(address) < minPrincipalLength || len(address) > maxPrincipalLength {
		return false
	}
	if address[0] != 'S' || !strings.ContainsRune("PMTN", rune(address[1])) {
		return false
	}
	for _, r := range address[2:] {
		if !strings.ContainsRune(c32Alphabet, r) {
			return false
		}
	}
	return true
}

func isContractName(name string) bool {
	if name == "" || len(name) > maxContractName {
		return false
	}
	first := name[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z') {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
