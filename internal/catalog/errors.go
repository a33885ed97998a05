// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for the catalog. Callers detect them with errors.Is; the
// messages are safe to show to an end user.
var (
	ErrInvalidURL = errors.New("invalid URL")
	ErrDecoding   = errors.New("failed to decode data")
	ErrNoData     = errors.New("no data received")
)

// RequestError is any transport level failure: timeout, DNS, connection
// reset, cancellation or a non-2xx status. Cause is never nil.
type RequestError struct {
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// StatusError is the RequestError cause for a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return "unexpected status " + e.Status
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}
