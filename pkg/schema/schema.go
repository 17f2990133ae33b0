// Package schema models the possibility library: named recipes ("schemas")
// describing how a region of the plane may be filled with rectangles, and
// the container that resolves references between them by title.
package schema

import (
	"encoding/json"

	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/spacing"
	"github.com/worldseedr/worldseedr/pkg/wserrors"
)

// Mode determines how a schema's child list is interpreted.
type Mode string

const (
	ModeCertain  Mode = "Certain"
	ModeRepeat   Mode = "Repeat"
	ModeRandom   Mode = "Random"
	ModeMultiple Mode = "Multiple"
)

// Valid reports whether m is one of the four recognized modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeCertain, ModeRepeat, ModeRandom, ModeMultiple:
		return true
	default:
		return false
	}
}

// ChildType determines whether a PossibilityChild is a terminal placement,
// a schema to recurse into, or a dimension-only reference to another
// schema.
type ChildType string

const (
	TypeKnown  ChildType = "Known"
	TypeRandom ChildType = "Random"
	TypeFinal  ChildType = "Final"
)

// Valid reports whether t is one of the three recognized child types.
func (t ChildType) Valid() bool {
	switch t {
	case TypeKnown, TypeRandom, TypeFinal:
		return true
	default:
		return false
	}
}

// Sizing overrides a child's width/height independent of its schema's own
// declared dimensions.
type Sizing struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Stretch expands a child to fill its host on the named axis.
type Stretch struct {
	Width  bool `json:"width,omitempty"`
	Height bool `json:"height,omitempty"`
}

// Arguments is a closed sum type over the two forms PossibilityChild's
// arguments field may take: a fixed map, or a percent-weighted list of
// maps.
type Arguments struct {
	Weighted bool
	Fixed    map[string]any
	Options  []WeightedArguments
}

// WeightedArguments pairs a candidate argument map with its selection
// percentage.
type WeightedArguments struct {
	Values  map[string]any `json:"values"`
	Percent float64        `json:"percent"`
}

// UnmarshalJSON accepts either a plain object or an array of
// {values,percent} objects.
func (a *Arguments) UnmarshalJSON(data []byte) error {
	var fixed map[string]any
	if err := json.Unmarshal(data, &fixed); err == nil {
		*a = Arguments{Fixed: fixed}
		return nil
	}
	var weighted []WeightedArguments
	if err := json.Unmarshal(data, &weighted); err == nil {
		*a = Arguments{Weighted: true, Options: weighted}
		return nil
	}
	return wserrors.New(wserrors.CodeMalformedSchema, "unrecognized arguments form: %s", data)
}

// MarshalJSON round-trips Arguments to its natural JSON form.
func (a Arguments) MarshalJSON() ([]byte, error) {
	if a.Weighted {
		return json.Marshal(a.Options)
	}
	if a.Fixed == nil {
		return json.Marshal(map[string]any{})
	}
	return json.Marshal(a.Fixed)
}

// PossibilityChild references another schema from inside a schema's
// content list.
type PossibilityChild struct {
	Title     string     `json:"title"`
	Type      ChildType  `json:"type"`
	Percent   float64    `json:"percent,omitempty"`
	Sizing    *Sizing    `json:"sizing,omitempty"`
	Stretch   *Stretch   `json:"stretch,omitempty"`
	Arguments *Arguments `json:"arguments,omitempty"`

	// Source names the schema whose dimensions a Final child adopts.
	// Required when Type == TypeFinal.
	Source string `json:"source,omitempty"`
}

// Contents describes how a schema's children fill its region.
type Contents struct {
	Mode      Mode                `json:"mode"`
	Direction *geometry.Direction `json:"direction,omitempty"`
	Spacing   *spacing.Spacing    `json:"spacing,omitempty"`
	Snap      *geometry.Direction `json:"snap,omitempty"`
	Limit     *int                `json:"limit,omitempty"`
	Children  []PossibilityChild  `json:"children"`
}

// SpacingOrZero returns the schema's spacing, or a zero fixed spacing if
// none was declared.
func (c Contents) SpacingOrZero() spacing.Spacing {
	if c.Spacing == nil {
		return spacing.FixedSpacing(0)
	}
	return *c.Spacing
}

// Possibility is a named schema: a rectangle of known width/height whose
// interior is filled according to Contents.
type Possibility struct {
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Contents Contents `json:"contents"`
}

// Library is a possibility container: a title-keyed map of schemas,
// stable for the lifetime of one generation call. The zero value is an
// empty, usable Library.
type Library map[string]Possibility

// Get looks up a schema by title, returning a wrapped UnknownPossibility
// error if absent.
func (l Library) Get(title string) (Possibility, error) {
	p, ok := l[title]
	if !ok {
		return Possibility{}, wserrors.New(wserrors.CodeUnknownPossibility, "unknown possibility %q", title)
	}
	return p, nil
}

// ValidationIssue names one defect found while statically checking a
// Library, without attempting to generate from it.
type ValidationIssue struct {
	Schema  string
	Child   int // index into the offending schema's Contents.Children, or -1
	Message string
}

// Validate walks every schema's child list and reports, without
// generating, any reference to a title missing from the library, any
// mode outside the four recognized ones, any child type outside the
// three recognized ones, and any Final child missing Source. It never
// fails fast - it aggregates every issue found so an author sees the
// whole picture at once.
func (l Library) Validate() []ValidationIssue {
	var issues []ValidationIssue
	for title, p := range l {
		if !p.Contents.Mode.Valid() {
			issues = append(issues, ValidationIssue{
				Schema: title, Child: -1,
				Message: "unrecognized mode " + string(p.Contents.Mode),
			})
		}
		for i, child := range p.Contents.Children {
			if !child.Type.Valid() {
				issues = append(issues, ValidationIssue{
					Schema: title, Child: i,
					Message: "unrecognized child type " + string(child.Type),
				})
				continue
			}
			if child.Type == TypeFinal {
				if child.Source == "" {
					issues = append(issues, ValidationIssue{
						Schema: title, Child: i,
						Message: "Final child missing source",
					})
				} else if _, ok := l[child.Source]; !ok {
					issues = append(issues, ValidationIssue{
						Schema: title, Child: i,
						Message: "source " + child.Source + " not in library",
					})
				}
				continue
			}
			if _, ok := l[child.Title]; !ok {
				issues = append(issues, ValidationIssue{
					Schema: title, Child: i,
					Message: "title " + child.Title + " not in library",
				})
			}
		}
	}
	return issues
}
