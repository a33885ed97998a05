// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package session tracks what the user has seen and liked during one run:
// a bounded, de-duplicated view history and an independent favorites set.
// Nothing here is persisted.
package session

import (
	"slices"
	"sync"

	"github.com/staranto/heroctl/internal/hero"
)

// HistoryLimit is the maximum number of heroes kept in the view history.
const HistoryLimit = 20

// Tracker holds the view history and favorites. The zero value is not usable;
// call New.
type Tracker struct {
	mu        sync.RWMutex
	history   []hero.Record
	favorites map[int]struct{}
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{
		history:   make([]hero.Record, 0, HistoryLimit+1),
		favorites: make(map[int]struct{}),
	}
}

// RecordView appends r to the history unless a record with the same ID is
// already there. A re-viewed hero keeps its original position. Once the
// history grows past HistoryLimit the oldest entries are dropped.
func (t *Tracker) RecordView(r hero.Record) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if slices.ContainsFunc(t.history, func(h hero.Record) bool { return h.ID == r.ID }) {
		return
	}

	t.history = append(t.history, r)
	if over := len(t.history) - HistoryLimit; over > 0 {
		t.history = slices.Delete(t.history, 0, over)
	}
}

// ToggleFavorite flips id's membership in the favorites set and returns the
// new state.
func (t *Tracker) ToggleFavorite(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.favorites[id]; ok {
		delete(t.favorites, id)
		return false
	}
	t.favorites[id] = struct{}{}
	return true
}

// IsFavorite reports whether id is a favorite.
func (t *Tracker) IsFavorite(id int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.favorites[id]
	return ok
}

// HistoryNewestFirst returns a copy of the history, most recent first.
func (t *Tracker) HistoryNewestFirst() []hero.Record {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := slices.Clone(t.history)
	slices.Reverse(out)
	return out
}

// HistoryLen returns the number of heroes in the history.
func (t *Tracker) HistoryLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.history)
}

// FavoriteCount returns the size of the favorites set.
func (t *Tracker) FavoriteCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.favorites)
}

// Favorites returns the favorite ids in ascending order.
func (t *Tracker) Favorites() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int, 0, len(t.favorites))
	for id := range t.favorites {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
