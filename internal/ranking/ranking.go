package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/duna-ai/duna/internal/analyzer"
)

// SortKey selects the ordering of a candidate view.
type SortKey string

const (
	BySimilarity SortKey = "similarity"
	ByName       SortKey = "name"
	ByRank       SortKey = "rank"
)

// SortKeys lists the supported keys in menu order.
var SortKeys = []SortKey{BySimilarity, ByName, ByRank}

func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return BySimilarity, nil
	}
	if !slices.Contains(SortKeys, key) {
		return "", fmt.Errorf("unknown sort key %q, expected one of similarity, name, rank", s)
	}
	return key, nil
}

// Step describes how many candidates a view kept.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

func Describe(results, view []analyzer.Candidate) Step {
	return Step{Initial: len(results), Dropped: len(results) - len(view), Left: len(view)}
}

// View returns a new ordering of results under sortBy, keeping only the
// candidates whose similarity percentage is at least minThreshold. The input
// is never modified and ties keep their input order. An unknown key keeps
// the input order.
func View(results []analyzer.Candidate, sortBy SortKey, minThreshold float64) []analyzer.Candidate {
	sorted := slices.Clone(results)

	switch sortBy {
	case BySimilarity:
		slices.SortStableFunc(sorted, func(a, b analyzer.Candidate) int {
			return cmp.Compare(b.SimilarityPercentage, a.SimilarityPercentage)
		})
	case ByName:
		col := collate.New(language.Und)
		slices.SortStableFunc(sorted, func(a, b analyzer.Candidate) int {
			return col.CompareString(a.Filename, b.Filename)
		})
	case ByRank:
		slices.SortStableFunc(sorted, func(a, b analyzer.Candidate) int {
			return cmp.Compare(a.Rank, b.Rank)
		})
	}

	view := make([]analyzer.Candidate, 0, len(sorted))
	for _, c := range sorted {
		if c.SimilarityPercentage >= minThreshold {
			view = append(view, c)
		}
	}

	return view
}
