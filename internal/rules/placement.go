package rules

import (
	"sort"

	"github.com/lctp-br/lctp-api/internal/domain"
)

// Rank orders run results for one event+category and assigns placements.
// Trios with an average time rank first, fastest average wins, ties broken
// by the best single attempt. No-time trios follow the ranked block, then
// disqualified trios; both groups still receive placements, numbered on
// from the last timed trio so every entry holds a spot in the standings.
// Entries within each excluded group keep their incoming relative order.
//
// Rank is idempotent: ranking an already ranked slice yields the same
// placements. The input slice is not modified.
func Rank(results []domain.RunResult) []domain.RunResult {
	ranked := make([]domain.RunResult, 0, len(results))
	noTime := make([]domain.RunResult, 0)
	disqualified := make([]domain.RunResult, 0)

	for _, r := range results {
		r.AverageTime = r.ComputeAverage()
		switch {
		case r.Status == domain.TrioDisqualified:
			disqualified = append(disqualified, r)
		case r.Status == domain.TrioNoTime || r.AverageTime == nil:
			noTime = append(noTime, r)
		default:
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if *ranked[i].AverageTime != *ranked[j].AverageTime {
			return *ranked[i].AverageTime < *ranked[j].AverageTime
		}
		bi, bj := ranked[i].BestAttempt(), ranked[j].BestAttempt()
		if bi != nil && bj != nil && *bi != *bj {
			return *bi < *bj
		}
		return false
	})

	out := append(ranked, noTime...)
	out = append(out, disqualified...)
	for i := range out {
		place := i + 1
		out[i].Placement = &place
	}
	return out
}
