package metrics

import "sort"

// StatusRow is an aggregated count for one HTTP status code.
type StatusRow struct {
	Code  int
	Count int64
}

// ErrorRow is an aggregated count for one transport failure kind.
type ErrorRow struct {
	Kind  string
	Count int64
}

// FlattenStatusCounts converts a status histogram into rows sorted by
// descending count, then by code for stability.
func FlattenStatusCounts(counts map[int]int64) []StatusRow {
	if len(counts) == 0 {
		return nil
	}
	rows := make([]StatusRow, 0, len(counts))
	for code, count := range counts {
		rows = append(rows, StatusRow{Code: code, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// FlattenErrorCounts converts an error-kind histogram into rows sorted by
// descending count, then by kind for stability.
func FlattenErrorCounts(counts map[string]int64) []ErrorRow {
	if len(counts) == 0 {
		return nil
	}
	rows := make([]ErrorRow, 0, len(counts))
	for kind, count := range counts {
		rows = append(rows, ErrorRow{Kind: kind, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Kind < rows[j].Kind
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}
