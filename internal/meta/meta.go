// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/heroctl/internal/config"
	"github.com/staranto/heroctl/internal/session"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Tracker holds the views and favorites for this process.
	Tracker *session.Tracker
}
