// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package session

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/heroctl/internal/hero"
)

func rec(id int) hero.Record {
	return hero.Record{ID: id, Name: "Hero"}
}

func ids(records []hero.Record) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestRecordView_NewestFirst(t *testing.T) {
	tr := New()
	tr.RecordView(rec(1))
	tr.RecordView(rec(2))
	tr.RecordView(rec(3))

	assert.Equal(t, []int{3, 2, 1}, ids(tr.HistoryNewestFirst()))
	assert.Equal(t, 3, tr.HistoryLen())
}

func TestRecordView_ReviewKeepsPosition(t *testing.T) {
	tr := New()
	tr.RecordView(rec(1))
	tr.RecordView(rec(2))
	tr.RecordView(rec(1))

	assert.Equal(t, []int{2, 1}, ids(tr.HistoryNewestFirst()))
}

func TestRecordView_Bounded(t *testing.T) {
	tr := New()
	for id := 1; id <= 25; id++ {
		tr.RecordView(rec(id))
	}

	got := ids(tr.HistoryNewestFirst())
	require.Len(t, got, HistoryLimit)
	assert.Equal(t, 25, got[0])
	assert.Equal(t, 6, got[len(got)-1], "ids 1-5 should have been evicted oldest first")
}

func TestRecordView_EvictedHeroCanReturn(t *testing.T) {
	tr := New()
	for id := 1; id <= 21; id++ {
		tr.RecordView(rec(id))
	}
	tr.RecordView(rec(1))

	got := ids(tr.HistoryNewestFirst())
	assert.Len(t, got, HistoryLimit)
	assert.Equal(t, 1, got[0])
	assert.NotContains(t, got, 2)
}

func TestRecordView_Invariants(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	tr := New()

	for i := 0; i < 1000; i++ {
		tr.RecordView(rec(r.IntN(60)))

		got := ids(tr.HistoryNewestFirst())
		assert.LessOrEqual(t, len(got), HistoryLimit)

		seen := map[int]bool{}
		for _, id := range got {
			require.False(t, seen[id], "duplicate id %d after %d views", id, i)
			seen[id] = true
		}
	}
}

func TestRecordView_TwoHeroScenario(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	tr := New()
	catalog := []hero.Record{rec(1), rec(2)}

	var firstSeen []int
	for i := 0; i < 25; i++ {
		h := catalog[r.IntN(len(catalog))]
		if !containsInt(firstSeen, h.ID) {
			firstSeen = append(firstSeen, h.ID)
		}
		tr.RecordView(h)
		assert.LessOrEqual(t, tr.HistoryLen(), 2)
	}

	want := make([]int, 0, len(firstSeen))
	for i := len(firstSeen) - 1; i >= 0; i-- {
		want = append(want, firstSeen[i])
	}
	assert.Equal(t, want, ids(tr.HistoryNewestFirst()))
}

func TestRecordView_FixedSequence(t *testing.T) {
	tr := New()
	for _, id := range []int{2, 1, 2, 2, 1, 1, 2} {
		tr.RecordView(rec(id))
	}
	assert.Equal(t, []int{1, 2}, ids(tr.HistoryNewestFirst()))
}

func TestHistoryNewestFirst_DoesNotMutate(t *testing.T) {
	tr := New()
	tr.RecordView(rec(1))
	tr.RecordView(rec(2))

	got := tr.HistoryNewestFirst()
	got[0].Name = "changed"
	got[1] = rec(99)

	assert.Equal(t, []int{2, 1}, ids(tr.HistoryNewestFirst()))
	assert.Equal(t, "Hero", tr.HistoryNewestFirst()[0].Name)
}

func TestToggleFavorite(t *testing.T) {
	tr := New()

	assert.True(t, tr.ToggleFavorite(7))
	assert.True(t, tr.IsFavorite(7))
	assert.Equal(t, 1, tr.FavoriteCount())

	assert.False(t, tr.ToggleFavorite(7))
	assert.False(t, tr.IsFavorite(7))
	assert.Equal(t, 0, tr.FavoriteCount())
}

func TestToggleFavorite_Involution(t *testing.T) {
	tr := New()
	tr.ToggleFavorite(3)
	tr.ToggleFavorite(9)
	before := tr.Favorites()

	for _, id := range []int{3, 4, 9, 100} {
		tr.ToggleFavorite(id)
		tr.ToggleFavorite(id)
		assert.Equal(t, before, tr.Favorites(), "toggling %d twice", id)
	}
}

func TestFavorites_IndependentOfHistory(t *testing.T) {
	tr := New()
	tr.RecordView(rec(1))
	tr.ToggleFavorite(1)

	for id := 2; id <= 30; id++ {
		tr.RecordView(rec(id))
	}

	assert.NotContains(t, ids(tr.HistoryNewestFirst()), 1)
	assert.True(t, tr.IsFavorite(1))
	assert.Equal(t, []int{1}, tr.Favorites())
}

func TestTracker_ConcurrentUse(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tr.RecordView(rec(g*100 + i))
				tr.ToggleFavorite(i)
				_ = tr.HistoryNewestFirst()
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, HistoryLimit, tr.HistoryLen())
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
