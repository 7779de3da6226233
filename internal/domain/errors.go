// Package domain provides shared domain-level sentinel errors and row metadata.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist on the backend.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates a request failed local validation before being sent.
var ErrValidation = errors.New("validation failed")

// ErrBackend indicates the backend rejected or failed a request.
var ErrBackend = errors.New("backend error")
