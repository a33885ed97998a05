// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/apex/log"
)

// sortKey is one parsed entry of a --sort spec.
type sortKey struct {
	Key           string
	Descending    bool
	CaseSensitive bool
}

// parseSortSpec splits a comma delimited --sort spec. A leading - sorts
// descending and a leading ! compares strings case sensitively. The two may be
// combined in either order.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey

	for _, s := range strings.Split(spec, ",") {
		s = strings.TrimSpace(s)
		k := sortKey{}
		for len(s) > 0 && (s[0] == '-' || s[0] == '!') {
			if s[0] == '-' {
				k.Descending = true
			} else {
				k.CaseSensitive = true
			}
			s = s[1:]
		}
		if s == "" {
			continue
		}
		k.Key = s
		keys = append(keys, k)
	}

	return keys
}

// SortDataset sorts rows in place by the spec. An empty spec leaves the order
// unchanged. The sort is stable so equal rows keep their source order.
func SortDataset(dataset []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}
	log.Debugf("sorting %d rows by %v", len(dataset), keys)

	sort.SliceStable(dataset, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(dataset[i][k.Key], dataset[j][k.Key], k.CaseSensitive)
			if c == 0 {
				continue
			}
			if k.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareValues orders nil first, then numbers numerically, then everything
// else by its string form.
func compareValues(a, b interface{}, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	if !caseSensitive {
		sa, sb = strings.ToLower(sa), strings.ToLower(sb)
	}
	return strings.Compare(sa, sb)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
