package model

import (
	"strconv"
	"strings"
)

// Student is one entry of a class roster. Name is fixed at roster creation;
// only the slot a student occupies changes while the roster is sorted.
type Student struct {
	Name  string `json:"name"`
	Grade int    `json:"grade"`
}

// String renders a student as "Name (grade)".
func (s Student) String() string {
	return s.Name + " (" + strconv.Itoa(s.Grade) + ")"
}

// Roster is the ordered class list being sorted in place.
type Roster []Student

// Clone returns an independent copy of the roster. A nil roster stays nil.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

// Grades returns the grade sequence in roster order.
func (r Roster) Grades() []int {
	grades := make([]int, len(r))
	for i, s := range r {
		grades[i] = s.Grade
	}
	return grades
}

// String renders the roster as "[Student 1 (78), Student 2 (92)]".
func (r Roster) String() string {
	parts := make([]string, len(r))
	for i, s := range r {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
