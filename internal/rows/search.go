package rows

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Rank filters records by query. Substring matches on the title, ID or
// badge come first in their original order; then titles whose words are
// within a small edit distance of the query, closest first. An empty query
// returns the records unchanged.
func Rank(records []Record, query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	type fuzzy struct {
		rec  Record
		dist int
		pos  int
	}
	var exact []Record
	var near []fuzzy

	for i, r := range records {
		if containsFold(r.Title, q) || containsFold(r.ID, q) || containsFold(r.Badge, q) {
			exact = append(exact, r)
			continue
		}
		if d, ok := closestWord(r.Title, q); ok {
			near = append(near, fuzzy{rec: r, dist: d, pos: i})
		}
	}

	sort.SliceStable(near, func(i, j int) bool { return near[i].dist < near[j].dist })

	out := make([]Record, 0, len(exact)+len(near))
	out = append(out, exact...)
	for _, f := range near {
		out = append(out, f.rec)
	}
	return out
}

func containsFold(s, lowerQuery string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lowerQuery)
}

// closestWord returns the smallest edit distance between q and any word of
// title, if it is within the limit for q's length.
func closestWord(title, q string) (int, bool) {
	limit := distanceLimit(len(q))
	if limit == 0 {
		return 0, false
	}
	best := -1
	for _, w := range strings.Fields(strings.ToLower(title)) {
		d := levenshtein.ComputeDistance(w, q)
		if best < 0 || d < best {
			best = d
		}
	}
	return best, best >= 0 && best <= limit
}

// distanceLimit allows one typo for short queries and two for longer ones;
// queries under three bytes only match as substrings.
func distanceLimit(n int) int {
	switch {
	case n < 3:
		return 0
	case n < 7:
		return 1
	default:
		return 2
	}
}
