// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package catalog fetches the superhero catalog over HTTP, caches it in memory
// for the life of the process and serves uniformly random picks from it.
package catalog
