// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	// DefaultURL is the superhero API catalog document.
	DefaultURL = "https://akabab.github.io/superhero-api/api/all.json"

	// DefaultTimeout bounds a single catalog request.
	DefaultTimeout = 30 * time.Second
)

// Doer is the part of *http.Client the catalog needs.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// options holds optional overrides for the Client.
type options struct {
	url     string
	timeout time.Duration
	doer    Doer
	rng     *rand.Rand
}

// Option customizes a Client.
type Option func(*options)

// WithURL overrides DefaultURL.
func WithURL(url string) Option {
	return func(o *options) { o.url = url }
}

// WithTimeout overrides DefaultTimeout. Zero or negative disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTPClient injects the transport. Defaults to a pooled cleanhttp client.
func WithHTTPClient(d Doer) Option {
	return func(o *options) { o.doer = d }
}

// WithRand injects the random source used by Random. Defaults to the
// math/rand/v2 global source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}
