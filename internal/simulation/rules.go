package simulation

import "github.com/stemsi/marking-day/internal/model"

// ShouldSwap is the canonical Bubble Sort rule for one adjacent pair.
// Equal grades never swap.
func ShouldSwap(left, right int, order model.SortOrder) bool {
	if order == model.SortAscending {
		return left > right
	}
	return left < right
}

// IsSorted reports whether every adjacent pair of the roster satisfies the
// non-strict order relation. Ties always pass.
func IsSorted(roster model.Roster, order model.SortOrder) bool {
	for i := 0; i+1 < len(roster); i++ {
		a, b := roster[i].Grade, roster[i+1].Grade
		if order == model.SortAscending && a > b {
			return false
		}
		if order != model.SortAscending && a < b {
			return false
		}
	}
	return true
}

// Accuracy is the percentage of decisions that matched the rule, or 0 when
// no decision has been made.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// TotalComparisons is the number of Step calls a roster of n students takes
// to finish: every pass runs in full, even over an already sorted suffix.
func TotalComparisons(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
