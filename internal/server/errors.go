package server

import "errors"

// Error classes. Handlers wrap these with %w; the router classifies with
// errors.Is.
var (
	// ErrParse marks a request that could not be parsed.
	ErrParse = errors.New("malformed request")
	// ErrNotFound marks a static path with no file behind it.
	ErrNotFound = errors.New("not found")
	// ErrAjaxDispatch marks a control command that could not be dispatched.
	ErrAjaxDispatch = errors.New("ajax dispatch failed")
)
