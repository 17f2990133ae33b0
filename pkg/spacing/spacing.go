// Package spacing resolves a polymorphic spacing description - a plain
// number, a {min,max,units} range, or a weighted list of alternatives -
// to a single concrete, non-negative distance.
package spacing

import (
	"encoding/json"
	"fmt"

	"github.com/worldseedr/worldseedr/pkg/rng"
	"github.com/worldseedr/worldseedr/pkg/wserrors"
)

// Kind discriminates the variants a Spacing can hold.
type Kind int

const (
	// KindFixed is a deterministic plain number.
	KindFixed Kind = iota
	// KindRange is a {min,max,units} or [min,max] uniform-integer range.
	KindRange
	// KindWeighted is a percent-weighted list of nested Spacings.
	KindWeighted
)

// WeightedOption pairs a nested Spacing with its selection percentage.
type WeightedOption struct {
	Value   Spacing `json:"value"`
	Percent float64 `json:"percent"`
}

// Spacing is a closed sum type over the three recognized forms: a fixed
// number, a uniform range, and a weighted list of alternatives. Only the
// field matching Kind is populated.
type Spacing struct {
	Kind Kind

	// KindFixed
	Fixed float64

	// KindRange
	Min, Max float64
	Units    float64

	// KindWeighted
	Options []WeightedOption
}

// FixedSpacing constructs a deterministic Spacing.
func FixedSpacing(n float64) Spacing { return Spacing{Kind: KindFixed, Fixed: n} }

// RangeSpacing constructs a uniform-integer-range Spacing. units <= 0 means "no grid".
func RangeSpacing(min, max, units float64) Spacing {
	return Spacing{Kind: KindRange, Min: min, Max: max, Units: units}
}

// WeightedSpacing constructs a percent-weighted Spacing over nested options.
func WeightedSpacing(options []WeightedOption) Spacing {
	return Spacing{Kind: KindWeighted, Options: options}
}

// Calculate resolves the Spacing to one non-negative number, consulting
// src for any range or weighted form. KindFixed never touches src.
func (s Spacing) Calculate(src rng.Source) (float64, error) {
	switch s.Kind {
	case KindFixed:
		return s.Fixed, nil
	case KindRange:
		units := s.Units
		if units <= 0 {
			units = 1
		}
		lo := int(s.Min / units)
		hi := int(s.Max / units)
		return float64(rng.Between(src, lo, hi)) * units, nil
	case KindWeighted:
		chosen, ok := chooseWeighted(src, s.Options)
		if !ok {
			// A weighted spacing with no matching bucket resolves to zero
			// distance rather than failing generation outright - spacing
			// is additive, so "no spacing chosen" degrades gracefully.
			return 0, nil
		}
		return chosen.Calculate(src)
	default:
		return 0, wserrors.New(wserrors.CodeMalformedSchema, "unrecognized spacing kind %d", s.Kind)
	}
}

// chooseWeighted draws a percentage roll and walks options accumulating
// percent, mirroring the weighted chooser used for possibility children.
func chooseWeighted(src rng.Source, options []WeightedOption) (Spacing, bool) {
	if len(options) == 0 {
		return Spacing{}, false
	}
	if len(options) == 1 {
		return options[0].Value, true
	}
	roll := float64(rng.Percentage(src))
	var sum float64
	for _, opt := range options {
		sum += opt.Percent
		if sum >= roll {
			return opt.Value, true
		}
	}
	return Spacing{}, false
}

// jsonRange is the {min,max,units?} object form.
type jsonRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Units float64 `json:"units,omitempty"`
}

// jsonWeightedOption is the {value,percent} array-element form.
type jsonWeightedOption struct {
	Value   json.RawMessage `json:"value"`
	Percent float64         `json:"percent"`
}

// UnmarshalJSON accepts every recognized form: a bare number, a
// {min,max,units?} object, a [min,max] two-element array, or a
// [{value,percent}, ...] weighted array.
func (s *Spacing) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FixedSpacing(num)
		return nil
	}

	var obj jsonRange
	if err := json.Unmarshal(data, &obj); err == nil && looksLikeRangeObject(data) {
		*s = RangeSpacing(obj.Min, obj.Max, obj.Units)
		return nil
	}

	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) == 2 {
			*s = RangeSpacing(pair[0], pair[1], 0)
			return nil
		}
		return wserrors.New(wserrors.CodeMalformedSchema, "spacing array must have exactly 2 elements, got %d", len(pair))
	}

	var weighted []jsonWeightedOption
	if err := json.Unmarshal(data, &weighted); err == nil {
		opts := make([]WeightedOption, 0, len(weighted))
		for _, w := range weighted {
			var inner Spacing
			if err := json.Unmarshal(w.Value, &inner); err != nil {
				return wserrors.Wrap(wserrors.CodeMalformedSchema, err, "invalid nested spacing value")
			}
			opts = append(opts, WeightedOption{Value: inner, Percent: w.Percent})
		}
		*s = WeightedSpacing(opts)
		return nil
	}

	return wserrors.New(wserrors.CodeMalformedSchema, "unrecognized spacing form: %s", data)
}

// looksLikeRangeObject distinguishes a genuine {min,max} JSON object from
// a JSON array or scalar that Go's lenient struct decoding might not
// reject on its own.
func looksLikeRangeObject(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// MarshalJSON round-trips a Spacing back to its most natural JSON form.
func (s Spacing) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindFixed:
		return json.Marshal(s.Fixed)
	case KindRange:
		return json.Marshal(jsonRange{Min: s.Min, Max: s.Max, Units: s.Units})
	case KindWeighted:
		out := make([]jsonWeightedOption, 0, len(s.Options))
		for _, opt := range s.Options {
			raw, err := json.Marshal(opt.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, jsonWeightedOption{Value: raw, Percent: opt.Percent})
		}
		return json.Marshal(out)
	default:
		return nil, fmt.Errorf("spacing: unknown kind %d", s.Kind)
	}
}
