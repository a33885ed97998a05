// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders heroes: the card shown for a single pick, and the
// sort and emit pipeline used for catalog and history listings.
package output
