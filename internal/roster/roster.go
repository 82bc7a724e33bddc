// Package roster loads preset classes from YAML so a lesson can replay the
// same grades for every student in the room.
package roster

import (
	"errors"
	"fmt"
	"os"

	"github.com/stemsi/marking-day/internal/model"
	"github.com/stemsi/marking-day/internal/simulation"
	"gopkg.in/yaml.v3"
)

// ErrEmptyRoster is returned when a preset lists no grades.
var ErrEmptyRoster = errors.New("roster has no grades")

// Preset is a saved class.
//
//	sort_order: ascending
//	grades: [50, 30, 70, 10]
type Preset struct {
	SortOrder string `yaml:"sort_order"`
	Grades    []int  `yaml:"grades"`
}

// Load reads a preset from path.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a preset document.
func Parse(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(p.Grades) == 0 {
		return nil, ErrEmptyRoster
	}
	for i, g := range p.Grades {
		if g < simulation.MinGrade || g > simulation.MaxGrade {
			return nil, fmt.Errorf("grade %d at index %d outside [%d, %d]", g, i, simulation.MinGrade, simulation.MaxGrade)
		}
	}
	if p.SortOrder != "" {
		if _, ok := model.ParseSortOrder(p.SortOrder); !ok {
			return nil, fmt.Errorf("unknown sort_order %q", p.SortOrder)
		}
	}
	return &p, nil
}

// Order returns the preset's sort order, or fallback when none is set.
func (p *Preset) Order(fallback model.SortOrder) model.SortOrder {
	if order, ok := model.ParseSortOrder(p.SortOrder); ok {
		return order
	}
	return fallback
}

// Source replays the preset grades, topping up from fallback for larger classes.
func (p *Preset) Source(fallback simulation.GradeSource) simulation.GradeSource {
	return simulation.FixedGrades{List: p.Grades, Fallback: fallback}
}
