package remote

import "errors"

// Errors returned by the bridge. Use errors.Is to check for them.
var (
	// ErrInvalidTopic is returned for topics outside the set scheme.
	ErrInvalidTopic = errors.New("remote: invalid topic")

	// ErrNoBroker is returned when the bridge is started without a broker URL.
	ErrNoBroker = errors.New("remote: no broker configured")

	// ErrConnectionFailed is returned when the initial connection fails.
	ErrConnectionFailed = errors.New("remote: connection failed")

	// ErrSubscribeFailed is returned when the command subscription fails.
	ErrSubscribeFailed = errors.New("remote: subscribe failed")
)
