// Package search filters loaded records locally by display name.
package search

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/kindred/internal/domain"
)

// Match is one hit against a list of names
type Match struct {
	Index          int   // position in the searched list
	Score          int   // higher is better for Filter, lower for Rank
	MatchedIndexes []int // byte offsets into the original name, for highlighting
}

// Result pairs a matched record with its match data
type Result[T any] struct {
	Item T
	Match
}

// Index implements sahilm/fuzzy.Source over pre-lowered names
type Index struct {
	lower  []string
	origin [][]int // per name: lowered byte offset -> original byte offset
}

// NewIndex lowercases names once so repeated filtering does not allocate
func NewIndex(names []string) *Index {
	idx := &Index{lower: make([]string, len(names)), origin: make([][]int, len(names))}
	for i, n := range names {
		idx.lower[i], idx.origin[i] = fold(n)
	}
	return idx
}

// fold lowercases s one rune at a time, so every rune of s maps to exactly
// one rune of the result even where the byte length changes ("İ" -> "i").
func fold(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	origin := make([]int, 0, len(s))
	for i, r := range s {
		n, _ := b.WriteRune(unicode.ToLower(r))
		for range n {
			origin = append(origin, i)
		}
	}
	return b.String(), origin
}

func foldQuery(q string) string {
	lower, _ := fold(strings.TrimSpace(q))
	return lower
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lower[i] }

// Len returns the number of names (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.lower) }

// Filter does subsequence matching, best first, with the matched character
// positions for highlighting
func (idx *Index) Filter(query string) []Match {
	query = foldQuery(query)
	if query == "" {
		return nil
	}
	found := sfuzzy.FindFrom(query, idx)
	out := make([]Match, len(found))
	for i, m := range found {
		origin := idx.origin[m.Index]
		marks := make([]int, len(m.MatchedIndexes))
		for j, at := range m.MatchedIndexes {
			marks[j] = origin[at]
		}
		out[i] = Match{Index: m.Index, Score: m.Score, MatchedIndexes: marks}
	}
	return out
}

// Filter is Index.Filter over an ad-hoc list
func Filter(query string, names []string) []Match {
	return NewIndex(names).Filter(query)
}

// Rank orders names containing the query's characters by edit distance,
// closest first. Case and accents are ignored for matching; ties keep list
// order.
func Rank(query string, names []string) []Match {
	query = foldQuery(query)
	if query == "" {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(query, NewIndex(names).lower)
	out := make([]Match, len(ranks))
	for i, r := range ranks {
		out[i] = Match{Index: r.OriginalIndex, Score: r.Distance}
	}
	slices.SortStableFunc(out, func(a, b Match) int {
		if a.Score != b.Score {
			return a.Score - b.Score
		}
		return a.Index - b.Index
	})
	return out
}

// Find filters items by name. Subsequence hits come first; when there are
// none the normalized ranking is used so accents and case still match.
func Find[T any](query string, items []T, name func(T) string) []Result[T] {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = name(it)
	}
	matches := Filter(query, names)
	if len(matches) == 0 {
		matches = Rank(query, names)
	}
	out := make([]Result[T], len(matches))
	for i, m := range matches {
		out[i] = Result[T]{Item: items[m.Index], Match: m}
	}
	return out
}

// Contacts searches contacts by full name
func Contacts(query string, contacts []domain.Contact) []Result[domain.Contact] {
	return Find(query, contacts, domain.Contact.FullName)
}

// Accounts searches accounts by name
func Accounts(query string, accounts []domain.Account) []Result[domain.Account] {
	return Find(query, accounts, func(a domain.Account) string { return a.Name })
}
