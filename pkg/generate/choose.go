package generate

import (
	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/rng"
	"github.com/worldseedr/worldseedr/pkg/schema"
)

// ChooseAmong selects one PossibilityChild from items by its declared
// weight. An empty list selects nothing; a single-element list always
// selects that element. Otherwise a percentage roll in [1,100] is drawn
// and items are walked accumulating Percent; the first item whose
// running sum reaches the roll is returned.
//
// Percentages are author-declared and need not sum to 100: when they
// don't, a roll can fall past every bucket and ChooseAmong returns
// (zero, false) - the intentional "chance of nothing" mechanic.
func ChooseAmong(src rng.Source, items []schema.PossibilityChild) (schema.PossibilityChild, bool) {
	switch len(items) {
	case 0:
		return schema.PossibilityChild{}, false
	case 1:
		return items[0], true
	}

	roll := float64(rng.Percentage(src))
	var sum float64
	for _, item := range items {
		sum += item.Percent
		if sum >= roll {
			return item, true
		}
	}
	return schema.PossibilityChild{}, false
}

// dimensionsFor returns the width/height a child would occupy, honoring
// a Final child's source schema and any per-child sizing override.
func dimensionsFor(lib schema.Library, item schema.PossibilityChild) (float64, float64, error) {
	title := item.Title
	if item.Type == schema.TypeFinal {
		title = item.Source
	}
	sch, err := lib.Get(title)
	if err != nil {
		return 0, 0, err
	}
	w, h := sch.Width, sch.Height
	if item.Sizing != nil {
		if item.Sizing.Width != nil {
			w = *item.Sizing.Width
		}
		if item.Sizing.Height != nil {
			h = *item.Sizing.Height
		}
	}
	return w, h, nil
}

// ChooseAmongPosition filters items to those whose referenced schema fits
// inside pos - the remaining host region - then delegates to ChooseAmong.
func ChooseAmongPosition(src rng.Source, lib schema.Library, items []schema.PossibilityChild, pos geometry.Position) (schema.PossibilityChild, bool, error) {
	filtered := make([]schema.PossibilityChild, 0, len(items))
	for _, item := range items {
		w, h, err := dimensionsFor(lib, item)
		if err != nil {
			return schema.PossibilityChild{}, false, err
		}
		if w <= pos.Width() && h <= pos.Height() {
			filtered = append(filtered, item)
		}
	}
	chosen, ok := ChooseAmong(src, filtered)
	return chosen, ok, nil
}
