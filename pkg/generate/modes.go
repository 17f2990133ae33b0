package generate

import (
	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/schema"
	"github.com/worldseedr/worldseedr/pkg/wserrors"
)

// runCertain implements Certain mode: iterate every child once, in order.
// Every entry contributes one Choice regardless of fit - the schema
// author accepts the consequence of overflow.
func (g *Generator) runCertain(contents schema.Contents, pos geometry.Position, dir geometry.Direction, depth int) ([]Choice, error) {
	var results []Choice
	for _, child := range contents.Children {
		parsed, err := ParseChoice(g.library, child, pos, dir, g.random)
		if err != nil {
			return nil, err
		}
		if err := g.recurseChild(&parsed, dir, depth); err != nil {
			return nil, err
		}
		results = append(results, parsed)

		sp, err := contents.SpacingOrZero().Calculate(g.random)
		if err != nil {
			return nil, err
		}
		pos = geometry.Shrink(pos, parsed.Position, dir, sp)
	}
	return results, nil
}

// runRepeat implements Repeat mode: cycle through children modulo their
// count until the host is exhausted or the next child no longer fits.
func (g *Generator) runRepeat(contents schema.Contents, pos geometry.Position, dir geometry.Direction, depth int) ([]Choice, error) {
	if len(contents.Children) == 0 {
		return nil, nil
	}

	var results []Choice
	i := 0
	for geometry.IsNotEmpty(pos, dir) {
		child := contents.Children[i%len(contents.Children)]
		parsed, err := ParseChoice(g.library, child, pos, dir, g.random)
		if err != nil {
			return nil, err
		}
		if !parsed.Position.FitsPosition(pos) {
			break
		}
		if err := g.recurseChild(&parsed, dir, depth); err != nil {
			return nil, err
		}
		results = append(results, parsed)

		sp, err := contents.SpacingOrZero().Calculate(g.random)
		if err != nil {
			return nil, err
		}
		pos = geometry.Shrink(pos, parsed.Position, dir, sp)
		i++
	}
	return results, nil
}

// runRandom implements Random mode: repeatedly draw a weighted, fit-
// filtered child until the chooser returns none or the host is
// exhausted. If contents.Limit is set and exceeded, the entire branch
// is discarded (nil, nil) - the caller treats an aborted Random branch
// as having produced nothing.
func (g *Generator) runRandom(contents schema.Contents, pos geometry.Position, dir geometry.Direction, depth int) ([]Choice, error) {
	var results []Choice
	for geometry.IsNotEmpty(pos, dir) {
		chosen, ok, err := ChooseAmongPosition(g.random, g.library, contents.Children, pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		parsed, err := ParseChoice(g.library, chosen, pos, dir, g.random)
		if err != nil {
			return nil, err
		}
		if err := g.recurseChild(&parsed, dir, depth); err != nil {
			return nil, err
		}
		results = append(results, parsed)

		if contents.Limit != nil && len(results) > *contents.Limit {
			return nil, nil
		}

		sp, err := contents.SpacingOrZero().Calculate(g.random)
		if err != nil {
			return nil, err
		}
		pos = geometry.Shrink(pos, parsed.Position, dir, sp)
	}
	return results, nil
}

// runMultiple implements Multiple mode: every child is parsed against an
// independent snapshot of the same starting region, and the region is
// translated (not shrunk) by spacing after each - producing fanned,
// overlapping sibling placements.
func (g *Generator) runMultiple(contents schema.Contents, pos geometry.Position, dir geometry.Direction, depth int) ([]Choice, error) {
	if _, ok := geometry.Opposite(dir); !ok {
		return nil, wserrors.New(wserrors.CodeUnknownDirection, "Multiple mode requires a direction")
	}

	var results []Choice
	current := pos
	for _, child := range contents.Children {
		parsed, err := ParseChoice(g.library, child, current, dir, g.random)
		if err != nil {
			return nil, err
		}
		if err := g.recurseChild(&parsed, dir, depth); err != nil {
			return nil, err
		}
		results = append(results, parsed)

		sp, err := contents.SpacingOrZero().Calculate(g.random)
		if err != nil {
			return nil, err
		}
		current = geometry.Move(current, dir, sp)
	}
	return results, nil
}
