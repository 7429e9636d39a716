package domain

import "errors"

var (
	ErrThreadNotFound      = errors.New("thread not found")
	ErrSessionExists       = errors.New("session already exists")
	ErrInvalidTimestamp    = errors.New("invalid timestamp")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrBumpIndexOutOfRange = errors.New("bump index out of range")
)
