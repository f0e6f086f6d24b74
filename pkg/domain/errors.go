package domain

import "errors"

// ErrBinaryNotFound is returned when the reconstruction executable does not exist as a regular file.
var ErrBinaryNotFound = errors.New("reconstruction binary not found")

// ErrProcessFailed is returned in strict mode when the reconstruction executable exits with a non-zero status.
var ErrProcessFailed = errors.New("reconstruction process failed")

// ErrInvalidDataset is returned when no dataset name can be derived from the given path.
var ErrInvalidDataset = errors.New("invalid dataset path")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrForbidden is returned when a remote request tries to choose something the server pins.
var ErrForbidden = errors.New("request not allowed")
