package repository

import "errors"

var (
	// ErrNotFound indicates the participant does not exist.
	ErrNotFound = errors.New("participant not found")
	// ErrBatchFailed indicates an import batch did not apply.
	ErrBatchFailed = errors.New("batch write failed")
	// ErrStoreClosed indicates use after Close.
	ErrStoreClosed = errors.New("store closed")
)
