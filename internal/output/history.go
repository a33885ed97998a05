// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"github.com/staranto/heroctl/internal/attrs"
	"github.com/staranto/heroctl/internal/hero"
)

// FavoriteMarker flags a favorite in lists.
const FavoriteMarker = "★"

// HistoryAttrs are the columns of the view history table.
func HistoryAttrs() attrs.AttrList {
	var list attrs.AttrList
	_ = list.Set("n:#,id,name,publisher,alignment,favorite:fav")
	return list
}

// HistoryDataset turns a newest first history into table rows.
func HistoryDataset(records []hero.Record, isFavorite func(id int) bool) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(records))
	for i, r := range records {
		fav := ""
		if isFavorite != nil && isFavorite(r.ID) {
			fav = FavoriteMarker
		}
		rows = append(rows, map[string]interface{}{
			"#":         i + 1,
			"id":        r.ID,
			"name":      r.Name,
			"publisher": r.Biography.PublisherOrUnknown(),
			"alignment": r.Alignment().String(),
			"fav":       fav,
		})
	}
	return rows
}
