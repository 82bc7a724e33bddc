package simulation

import (
	"math/rand/v2"
	"sync"
)

const (
	MinGrade = 0
	MaxGrade = 100
)

// GradeSource supplies the grades of a freshly generated roster.
type GradeSource interface {
	Grades(n int) []int
}

// RandomGrades draws each grade uniformly from [MinGrade, MaxGrade].
// It is safe for concurrent use.
type RandomGrades struct {
	mu  sync.Mutex
	rng *rand.Rand // nil means the process-wide generator
}

// NewRandomGrades returns a source seeded with seed. A zero seed uses the
// unseeded process-wide generator.
func NewRandomGrades(seed uint64) *RandomGrades {
	if seed == 0 {
		return &RandomGrades{}
	}
	return &RandomGrades{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Grades returns n independent grades.
func (g *RandomGrades) Grades(n int) []int {
	out := make([]int, n)
	if g.rng == nil {
		for i := range out {
			out[i] = MinGrade + rand.IntN(MaxGrade-MinGrade+1)
		}
		return out
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range out {
		out[i] = MinGrade + g.rng.IntN(MaxGrade-MinGrade+1)
	}
	return out
}

// FixedGrades replays a preset grade list. Rosters longer than the list are
// topped up from Fallback; shorter rosters use a prefix of the list.
type FixedGrades struct {
	List     []int
	Fallback GradeSource
}

// Grades returns n grades, clamped to [MinGrade, MaxGrade].
func (f FixedGrades) Grades(n int) []int {
	out := make([]int, 0, n)
	for _, g := range f.List {
		if len(out) == n {
			break
		}
		out = append(out, clampGrade(g))
	}
	if missing := n - len(out); missing > 0 {
		fallback := f.Fallback
		if fallback == nil {
			fallback = NewRandomGrades(0)
		}
		out = append(out, fallback.Grades(missing)...)
	}
	return out
}

func clampGrade(g int) int {
	if g < MinGrade {
		return MinGrade
	}
	if g > MaxGrade {
		return MaxGrade
	}
	return g
}
