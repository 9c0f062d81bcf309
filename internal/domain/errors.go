package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCompletionFailure is returned when a chat completion request fails
	ErrCompletionFailure = errors.New("chat completion request failed")
)
