// Package project defines the persisted snapshot of a measuring session.
package project

import (
	"io"
	"math"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"plan-measure/measure"
)

// Snapshot is everything needed to resume editing a plan.
type Snapshot struct {
	ID           string                `yaml:"id" json:"id"`
	Image        string                `yaml:"image" json:"image"`
	Scale        float64               `yaml:"scale" json:"scale"`
	Measurements []measure.Measurement `yaml:"measurements" json:"measurements"`
	Suggestions  []measure.Suggestion  `yaml:"suggestions,omitempty" json:"suggestions,omitempty"`
	UpdatedAt    time.Time             `yaml:"updated_at" json:"updatedAt"`
}

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidID reports whether id can be used as a project key.
func ValidID(id string) bool {
	return validID.MatchString(id)
}

// New returns an empty snapshot with the default scale.
func New(id string) *Snapshot {
	return &Snapshot{ID: id, Scale: measure.DefaultScale}
}

// Normalize repairs a snapshot read from an external source: the scale falls
// back to the default when not a positive finite number, empty or repeated ids
// are replaced, and measurements or suggestions with non-finite coordinates or
// without a positive size are dropped. A stored area is kept as is, even when
// stale against the scale; only a missing or non-finite area is derived again.
func (s *Snapshot) Normalize() {
	if !finite(s.Scale) || !(s.Scale > 0) {
		s.Scale = measure.DefaultScale
	}

	seen := map[string]bool{}
	kept := make([]measure.Measurement, 0, len(s.Measurements))
	for _, m := range s.Measurements {
		if !validRect(m.X, m.Y, m.Width, m.Height) {
			continue
		}
		if m.ID == "" || seen[m.ID] {
			m.ID = measure.NewID()
		}
		seen[m.ID] = true
		if !finite(m.AreaM2) || !(m.AreaM2 > 0) {
			m.AreaM2 = measure.Area(m.Width, m.Height, s.Scale)
		}
		kept = append(kept, m)
	}
	s.Measurements = kept

	suggestions := s.Suggestions[:0]
	for _, sg := range s.Suggestions {
		if !validRect(sg.X, sg.Y, sg.Width, sg.Height) {
			continue
		}
		if sg.ID == "" {
			sg.ID = measure.NewID()
		}
		suggestions = append(suggestions, sg)
	}
	s.Suggestions = suggestions
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validRect(x, y, w, h float64) bool {
	return finite(x) && finite(y) && finite(w) && finite(h) && w > 0 && h > 0
}

// Encode writes the snapshot as YAML.
func Encode(w io.Writer, s *Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encode project")
	}
	return enc.Close()
}

// Decode reads a YAML snapshot and normalizes it.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode project")
	}
	s.Normalize()
	return &s, nil
}
