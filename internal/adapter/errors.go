package adapter

import "errors"

// Sentinel transport errors. mapHTTPError translates HTTP status codes into
// these values so callers can branch with errors.Is without knowing the
// protocol.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrVersionConflict     = errors.New("version conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrInternalServerError = errors.New("internal server error")

	// ErrServerUnavailable covers 502/503/504 and is the only status-derived
	// error the adapter retries internally.
	ErrServerUnavailable = errors.New("server unavailable")
)
