package service

import "errors"

// Sentinels the handlers map to HTTP status codes. Business-rule failures
// wrap ErrValidation with a message naming the violated rule.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)
