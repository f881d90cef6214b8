package transport

import "errors"

// Transport errors.
var (
	// ErrNoBus is returned when a transport is constructed without a Bus.
	ErrNoBus = errors.New("transport: no bus provided")

	// ErrUnknownBusKind is returned when a transport is requested for a bus
	// kind this package does not implement.
	ErrUnknownBusKind = errors.New("transport: unknown bus kind")

	// ErrTagMismatch is returned when a response carries a message tag that
	// does not match the request it is being correlated against.
	ErrTagMismatch = errors.New("transport: response tag mismatch")
)
