package entity

import "errors"

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrBusy            = errors.New("another operation on this screen is in progress")
	ErrAuditDisabled   = errors.New("audit log not enabled")
	ErrBodyTooLarge    = errors.New("request body too large")
)
