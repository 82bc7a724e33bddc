// Package simulation drives a Bubble Sort over a class roster one decision
// at a time. Every operation takes the prior state by value and returns a
// new state; the input is never modified.
package simulation

import (
	"fmt"
	"strings"

	"github.com/stemsi/marking-day/internal/model"
)

// Engine runs simulations. Its only dependency is the grade source used by
// Start, so a single Engine may serve any number of independent states.
type Engine struct {
	grades GradeSource
}

// NewEngine creates an Engine. A nil source draws unseeded random grades.
func NewEngine(grades GradeSource) *Engine {
	if grades == nil {
		grades = NewRandomGrades(0)
	}
	return &Engine{grades: grades}
}

// Start generates a new roster of classSize students and positions the
// cursor on the first pair. Sizes below MinClassSize are raised to it.
func (e *Engine) Start(classSize int, order model.SortOrder) (model.View, model.SimulationState) {
	if classSize < MinClassSize {
		classSize = MinClassSize
	}
	if order != model.SortAscending {
		order = model.SortDescending
	}

	grades := e.grades.Grades(classSize)
	roster := make(model.Roster, classSize)
	for i := range roster {
		roster[i] = model.Student{Name: fmt.Sprintf("Student %d", i+1)}
		if i < len(grades) {
			roster[i].Grade = clampGrade(grades[i])
		}
	}

	state := model.SimulationState{Roster: roster, SortOrder: order}
	cmp, _ := CurrentComparison(state)
	return model.View{
		RosterText:     roster.String(),
		ComparisonText: FormatComparison(cmp),
		StatusText:     StatusStarted,
		Comparison:     &cmp,
	}, state
}

// Step applies one decision to the pair under comparison, scores it
// against the rule, and advances the cursor. Calls without a roster or
// after the simulation finished return the state unchanged.
func (e *Engine) Step(decision model.Decision, state model.SimulationState) (model.View, model.SimulationState) {
	if !state.Active() {
		return inactiveView(), state
	}
	if state.Finished {
		return model.View{
			RosterText: state.Roster.String(),
			StatusText: StatusAlreadyFinished,
		}, state
	}
	if !consistent(state) {
		return model.View{
			RosterText: state.Roster.String(),
			StatusText: StatusInconsistent,
		}, state
	}

	next := state.Clone()
	n := len(next.Roster)
	j := next.PositionIndex

	ruleSaysSwap := ShouldSwap(next.Roster[j].Grade, next.Roster[j+1].Grade, next.SortOrder)
	choseSwap := decision.Swaps()

	next.TotalDecisions++
	if choseSwap == ruleSaysSwap {
		next.CorrectDecisions++
	}

	var status strings.Builder
	if choseSwap {
		next.Roster[j], next.Roster[j+1] = next.Roster[j+1], next.Roster[j]
		next.SwapCount++
		status.WriteString(StatusChoseSwap)
	} else {
		status.WriteString(StatusChoseNoSwap)
	}

	next.PositionIndex++
	if next.PositionIndex > n-2-next.PassIndex {
		next.PositionIndex = 0
		next.PassIndex++
		status.WriteString("\n" + passEndNotice(next.PassIndex))
	}

	if next.PassIndex >= n-1 {
		next.Finished = true
		status.WriteString("\n\n" + StatusFinished + "\n")
		status.WriteString(FormatSummary(next))
		return model.View{
			RosterText: next.Roster.String(),
			StatusText: status.String(),
		}, next
	}

	cmp, _ := CurrentComparison(next)
	return model.View{
		RosterText:     next.Roster.String(),
		ComparisonText: FormatComparison(cmp),
		StatusText:     status.String(),
		Comparison:     &cmp,
	}, next
}

// FinishEarly locks the simulation where it stands and reports the
// summary. It never moves the cursor or touches the counters, and repeats
// the summary if the simulation had already finished.
func (e *Engine) FinishEarly(state model.SimulationState) (model.View, model.SimulationState) {
	if !state.Active() {
		return inactiveView(), state
	}

	next := state.Clone()
	next.Finished = true
	return model.View{
		RosterText: next.Roster.String(),
		StatusText: StatusFinishedEarly + "\n" + FormatSummary(next),
	}, next
}

// CurrentComparison returns the pair at the cursor together with the rule
// verdict. ok is false when the state has no pair awaiting a decision.
func CurrentComparison(state model.SimulationState) (cmp model.Comparison, ok bool) {
	if !state.Active() || state.Finished || !consistent(state) {
		return model.Comparison{}, false
	}
	j := state.PositionIndex
	left, right := state.Roster[j], state.Roster[j+1]
	return model.Comparison{
		Pass:         state.PassIndex,
		Position:     j,
		Left:         left,
		Right:        right,
		RuleSaysSwap: ShouldSwap(left.Grade, right.Grade, state.SortOrder),
	}, true
}

// consistent checks the cursor invariants of an unfinished state.
func consistent(state model.SimulationState) bool {
	n := len(state.Roster)
	if n < MinClassSize {
		return false
	}
	if state.PassIndex < 0 || state.PassIndex > n-2 {
		return false
	}
	return state.PositionIndex >= 0 && state.PositionIndex <= n-2-state.PassIndex
}

func inactiveView() model.View {
	return model.View{
		RosterText: RosterPrompt,
		StatusText: StatusNoSimulation,
	}
}
