package volby

import (
	"regexp"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSpace(name)
	return whitespaceRegex.ReplaceAllString(name, " ")
}

type LocalityMatch struct {
	Locality   Locality
	Similarity float64
}

// MatchLocalities ranks localities by Jaro-Winkler similarity of their name
// (or an exact code hit) to `query` and returns the best `limit` of them.
func MatchLocalities(localities []Locality, query string, limit int) []LocalityMatch {
	query = normalizeName(query)

	matches := make([]LocalityMatch, len(localities))
	for i, l := range localities {
		similarity := matchr.JaroWinkler(normalizeName(l.Name), query, false)
		if l.Code == query {
			similarity = 1
		}
		matches[i] = LocalityMatch{Locality: l, Similarity: similarity}
	}

	slices.SortStableFunc(matches, func(a, b LocalityMatch) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
