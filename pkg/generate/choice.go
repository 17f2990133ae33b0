// Package generate implements the weighted chooser, choice parser, mode
// generators, and recursive driver that turn a possibility library into a
// concrete tree of rectangle placements.
package generate

import (
	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/schema"
)

// Choice is a concrete rectangle produced from a PossibilityChild: a
// Position plus the metadata a caller needs to place or recurse into it.
type Choice struct {
	Title     string
	Type      schema.ChildType
	Position  geometry.Position
	Width     float64
	Height    float64
	Arguments map[string]any

	// Contents holds the recursively generated aggregate for Random
	// children. Known and Final children never populate this.
	Contents *Choice

	// Children holds the ordered list a mode generator produced, present
	// only on the aggregate Choice a mode generator/driver call returns.
	Children []Choice
}

// Bounds implements geometry.Extent for WrapExtremes.
func (c Choice) Bounds() geometry.Position { return c.Position }

// IsEmpty implements geometry.Extent, reproducing the source generator's
// tolerance for an accumulator entry with no fields set.
func (c Choice) IsEmpty() bool {
	return c.Title == "" && c.Type == "" && c.Position == (geometry.Position{}) && len(c.Arguments) == 0
}

// cloneArguments returns a shallow copy of m, or nil if m is nil. Choices
// never share an arguments map with the schema they were parsed from.
func cloneArguments(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
