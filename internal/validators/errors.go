// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEntityType    = errors.New("invalid entity type")
	ErrInvalidEntityID      = errors.New("invalid entity id")
	ErrInvalidOperation     = errors.New("invalid operation kind")
	ErrEmptyPayload         = errors.New("payload is required")
	ErrMalformedPayload     = errors.New("payload does not decode as its entity type")
	ErrMissingName          = errors.New("entity name is required")
	ErrMissingValue         = errors.New("observation value is required")
	ErrInvalidVersion       = errors.New("invalid version")
	ErrInvalidCreateVersion = errors.New("base version must be zero for creates")
	ErrNoOperations         = errors.New("operations list cannot be empty")
	ErrDeleteCarriesPayload = errors.New("delete operations must not carry a payload")
)
