package redis

import "errors"

var (
	// ErrConnectionFailed is returned when the initial connection cannot be established.
	ErrConnectionFailed = errors.New("redis connection failed")
	// ErrPingFailed is returned when the post-connect ping fails.
	ErrPingFailed = errors.New("redis ping failed")
)
