// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package service

import (
	"errors"
	"strings"

	"github.com/agrostack/fieldsync/internal/adapter"
	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. Status codes carry the broad category; the response body is
// matched against the server's shared message constants to recover the exact
// condition.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgEmptyPushBatch:
			return ErrEmptyBatch
		case app.MsgUnknownEntityType, app.MsgInvalidDataProvided:
			return ErrInvalidDataProvided
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpiredOrInvalid:
			return ErrTokenIsExpiredOrInvalid
		}
		return ErrNotAuthenticated

	case errors.Is(err, adapter.ErrNotFound):
		return store.ErrRecordNotFound

	case errors.Is(err, adapter.ErrVersionConflict):
		switch msg {
		case app.MsgLoginAlreadyExists:
			return store.ErrLoginAlreadyExists
		}
		return store.ErrVersionConflict
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
