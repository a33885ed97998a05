// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version holds build identification, overridden at link time with
// -ldflags "-X github.com/staranto/heroctl/internal/version.Version=...".
package version

var Version = "0.0.0-dev"

// UserAgent is sent on every catalog request.
func UserAgent() string {
	return "heroctl/" + Version
}
