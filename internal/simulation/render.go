package simulation

import (
	"fmt"
	"strings"

	"github.com/stemsi/marking-day/internal/model"
)

// Status lines shared by the engine operations.
const (
	StatusStarted         = "New random class generated.\nUse the controls below to decide each step."
	StatusNoSimulation    = "No active simulation."
	StatusAlreadyFinished = "Simulation already finished. Start again with a new class."
	StatusInconsistent    = "Simulation state is inconsistent. Start again with a new class."
	StatusChoseSwap       = "Teacher chose to SWAP these two students."
	StatusChoseNoSwap     = "Teacher chose NOT to swap these two students."
	StatusFinished        = "Simulation finished. Final list locked."
	StatusFinishedEarly   = "Teacher finished the list early."

	// RosterPrompt replaces the roster listing while no simulation exists.
	RosterPrompt = "Start a new class to generate a roster."
)

// FormatComparison renders the pair under comparison and the rule verdict.
func FormatComparison(c model.Comparison) string {
	verdict := "Do NOT swap"
	if c.RuleSaysSwap {
		verdict = "Swap"
	}
	return fmt.Sprintf("Pass %d – Compare %s and %s\nBubble Sort rule for this comparison: %s",
		c.Pass+1, c.Left, c.Right, verdict)
}

// FormatSummary renders the end-of-simulation report: sortedness verdict,
// swap count and decision accuracy.
func FormatSummary(state model.SimulationState) string {
	var b strings.Builder
	if IsSorted(state.Roster, state.SortOrder) {
		b.WriteString("The final list IS correctly sorted according to the chosen order.")
	} else {
		b.WriteString("The final list is NOT correctly sorted according to the chosen order.")
	}
	fmt.Fprintf(&b, "\nTotal swaps you performed: %d", state.SwapCount)
	fmt.Fprintf(&b, "\nYour decision accuracy: %.1f%% (%d out of %d decisions matched the Bubble Sort rule.)",
		Accuracy(state.CorrectDecisions, state.TotalDecisions),
		state.CorrectDecisions, state.TotalDecisions)
	return b.String()
}

func passEndNotice(completedPasses int) string {
	return fmt.Sprintf("End of pass %d. Moving to the next pass.", completedPasses)
}
