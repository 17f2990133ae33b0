package generate

import (
	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/rng"
	"github.com/worldseedr/worldseedr/pkg/schema"
	"github.com/worldseedr/worldseedr/pkg/wserrors"
)

// ParseChoice converts a possibility child, a host position, and the
// active layout direction into a concrete Choice rectangle.
//
// Known and Random children resolve in order: schema lookup, argument
// resolution, sizing, collapse-to-hug-opposite-edge, snap, then stretch.
// Final children take a shortcut: they adopt their source schema's
// dimensions but are emitted as Known, bounded by the host's full
// rectangle.
func ParseChoice(lib schema.Library, child schema.PossibilityChild, pos geometry.Position, dir geometry.Direction, src rng.Source) (Choice, error) {
	if child.Type == schema.TypeFinal {
		return parseFinal(lib, child, pos)
	}

	sch, err := lib.Get(child.Title)
	if err != nil {
		return Choice{}, err
	}

	args, err := resolveArguments(child.Arguments, src)
	if err != nil {
		return Choice{}, err
	}

	width, height := sch.Width, sch.Height
	if child.Sizing != nil {
		if child.Sizing.Width != nil {
			width = *child.Sizing.Width
		}
		if child.Sizing.Height != nil {
			height = *child.Sizing.Height
		}
	}

	out := Choice{
		Title:     child.Title,
		Type:      child.Type,
		Position:  pos,
		Width:     width,
		Height:    height,
		Arguments: args,
	}

	sizingDim, ok := geometry.Sizing(dir)
	if !ok {
		return Choice{}, wserrors.New(wserrors.CodeUnknownDirection, "unknown direction %q", dir)
	}
	out.Position = geometry.Collapse(out.Position, dir, extentFor(sizingDim, width, height))

	if sch.Contents.Snap != nil {
		snapDim, ok := geometry.Sizing(*sch.Contents.Snap)
		if !ok {
			return Choice{}, wserrors.New(wserrors.CodeUnknownDirection, "unknown snap direction %q", *sch.Contents.Snap)
		}
		snapOpposite, ok := geometry.Opposite(*sch.Contents.Snap)
		if !ok {
			return Choice{}, wserrors.New(wserrors.CodeUnknownDirection, "unknown snap direction %q", *sch.Contents.Snap)
		}
		out.Position = geometry.Collapse(out.Position, snapOpposite, extentFor(snapDim, width, height))
	}

	if child.Stretch != nil {
		if out.Arguments == nil {
			out.Arguments = map[string]any{}
		}
		if child.Stretch.Width {
			out.Position.Left = pos.Left
			out.Position.Right = pos.Right
			out.Width = out.Position.Width()
			out.Arguments["width"] = out.Width
		}
		if child.Stretch.Height {
			out.Position.Top = pos.Top
			out.Position.Bottom = pos.Bottom
			out.Height = out.Position.Height()
			out.Arguments["height"] = out.Height
		}
	}

	return out, nil
}

// extentFor picks width or height according to which dimension a
// collapsed direction is sized along.
func extentFor(sizingDim string, width, height float64) float64 {
	if sizingDim == "height" {
		return height
	}
	return width
}

// parseFinal handles a Final child: it adopts its source schema's
// declared dimensions, subject to the same Sizing override dimensionsFor
// applies when filtering candidates by fit, and is bounded by the host's
// full rectangle and emitted as a terminal Known choice.
func parseFinal(lib schema.Library, child schema.PossibilityChild, pos geometry.Position) (Choice, error) {
	if child.Source == "" {
		return Choice{}, wserrors.New(wserrors.CodeMalformedSchema, "Final child %q has no source", child.Title)
	}
	width, height, err := dimensionsFor(lib, child)
	if err != nil {
		return Choice{}, err
	}
	return Choice{
		Title:     child.Title,
		Type:      schema.TypeKnown,
		Position:  pos,
		Width:     width,
		Height:    height,
		Arguments: cloneArguments(argumentsFixedOrNil(child.Arguments)),
	}, nil
}

// argumentsFixedOrNil extracts the fixed-map form of a child's arguments
// field for the Final shortcut, which never runs weighted-argument
// selection - Final copies a fixed map as-is, and a weighted list yields
// nil.
func argumentsFixedOrNil(a *schema.Arguments) map[string]any {
	if a == nil {
		return nil
	}
	if a.Weighted {
		return nil
	}
	return a.Fixed
}

// resolveArguments picks a child's effective argument map: a weighted
// arguments list runs through ChooseAmong-style selection; a fixed map is
// copied as-is.
func resolveArguments(a *schema.Arguments, src rng.Source) (map[string]any, error) {
	if a == nil {
		return nil, nil
	}
	if !a.Weighted {
		return cloneArguments(a.Fixed), nil
	}

	chosen, ok := chooseWeightedArguments(src, a.Options)
	if !ok {
		return map[string]any{}, nil
	}
	return cloneArguments(chosen.Values), nil
}

func chooseWeightedArguments(src rng.Source, options []schema.WeightedArguments) (schema.WeightedArguments, bool) {
	switch len(options) {
	case 0:
		return schema.WeightedArguments{}, false
	case 1:
		return options[0], true
	}
	roll := float64(rng.Percentage(src))
	var sum float64
	for _, opt := range options {
		sum += opt.Percent
		if sum >= roll {
			return opt, true
		}
	}
	return schema.WeightedArguments{}, false
}
