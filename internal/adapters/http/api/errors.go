package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("serve failed")
	ErrBadRequest = errors.New("bad request")
	ErrBadUpload  = errors.New("unreadable upload")
)
