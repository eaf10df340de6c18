package entity

import (
	"errors"
	"fmt"
)

// ErrorCode is the numeric error a failed contract call reports.
type ErrorCode int

const (
	ErrCodeInvalidArgument ErrorCode = 400
	ErrCodeUnauthorized    ErrorCode = 403
	ErrCodeNotFound        ErrorCode = 404
	ErrCodeConflict        ErrorCode = 409
	ErrCodeInternal        ErrorCode = 500
)

type ContractError struct {
	Code    ErrorCode
	Message string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Is matches any ContractError with the same code, so wrapped errors carrying
// extra context still compare equal to the sentinels below.
func (e *ContractError) Is(target error) bool {
	var other *ContractError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

var (
	ErrInvalidArgument = &ContractError{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
	ErrUnauthorized    = &ContractError{Code: ErrCodeUnauthorized, Message: "unauthorized"}
	ErrNotFound        = &ContractError{Code: ErrCodeNotFound, Message: "not found"}
	ErrConflict        = &ContractError{Code: ErrCodeConflict, Message: "conflict"}
)

func NewContractError(code ErrorCode, format string, args ...interface{}) *ContractError {
	return &ContractError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the contract error code from err, defaulting to
// ErrCodeInternal for errors that carry none.
func CodeOf(err error) ErrorCode {
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternal
}
