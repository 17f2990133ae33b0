package geometry

import "testing"

func TestFitsSize(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		w, h float64
		want bool
	}{
		{"exact fit", Position{Top: 10, Right: 10, Bottom: 0, Left: 0}, 10, 10, true},
		{"too wide", Position{Top: 10, Right: 20, Bottom: 0, Left: 0}, 10, 10, false},
		{"too tall", Position{Top: 20, Right: 10, Bottom: 0, Left: 0}, 10, 10, false},
		{"smaller than box", Position{Top: 5, Right: 5, Bottom: 0, Left: 0}, 10, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.FitsSize(tt.w, tt.h); got != tt.want {
				t.Errorf("FitsSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotEmpty(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		dir  Direction
		want bool
	}{
		{"horizontal room", Position{Left: 0, Right: 5}, Right, true},
		{"horizontal exhausted", Position{Left: 5, Right: 5}, Left, false},
		{"vertical room", Position{Top: 5, Bottom: 0}, Top, true},
		{"vertical exhausted", Position{Top: 0, Bottom: 0}, Bottom, false},
		{"unknown direction", Position{Top: 5, Bottom: 0}, Direction("diagonal"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotEmpty(tt.pos, tt.dir); got != tt.want {
				t.Errorf("IsNotEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShrink(t *testing.T) {
	host := Position{Top: 10, Right: 30, Bottom: 0, Left: 0}
	child := Position{Top: 10, Right: 10, Bottom: 0, Left: 0}

	tests := []struct {
		name string
		dir  Direction
		want Position
	}{
		{"right", Right, Position{Top: 10, Right: 30, Bottom: 0, Left: 12}},
		{"top", Top, Position{Top: 10, Right: 30, Bottom: 12, Left: 0}},
		{"left", Left, Position{Top: 10, Right: -2, Bottom: 0, Left: 0}},
		{"bottom", Bottom, Position{Top: -2, Right: 30, Bottom: 0, Left: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shrink(host, child, tt.dir, 2)
			if got != tt.want {
				t.Errorf("Shrink() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShrinkMonotonic(t *testing.T) {
	// Packing monotonicity: remaining extent along dir strictly decreases
	// by at least the child's extent along dir.
	host := Position{Top: 10, Right: 100, Bottom: 0, Left: 0}
	before := host.Width()
	child := Position{Top: 10, Right: 20, Bottom: 0, Left: 0}
	after := Shrink(host, child, Right, 5)
	decrease := before - after.Width()
	if decrease < child.Width() {
		t.Errorf("decrease = %v, want >= %v", decrease, child.Width())
	}
}

func TestMove(t *testing.T) {
	pos := Position{Top: 10, Right: 30, Bottom: 0, Left: 0}
	got := Move(pos, Right, 5)
	want := Position{Top: 10, Right: 35, Bottom: 0, Left: 5}
	if got != want {
		t.Errorf("Move() = %+v, want %+v", got, want)
	}
}

type boxExtent struct {
	pos   Position
	empty bool
}

func (b boxExtent) Bounds() Position { return b.pos }
func (b boxExtent) IsEmpty() bool    { return b.empty }

func TestWrapExtremesEmpty(t *testing.T) {
	if _, ok := WrapExtremes([]boxExtent{}); ok {
		t.Errorf("expected no box for empty input")
	}
}

func TestWrapExtremesSingleIdempotent(t *testing.T) {
	pos := Position{Top: 10, Right: 10, Bottom: 0, Left: 0}
	got, ok := WrapExtremes([]boxExtent{{pos: pos}})
	if !ok || got != pos {
		t.Errorf("WrapExtremes() = %+v, %v, want %+v, true", got, ok, pos)
	}
}

func TestWrapExtremesUnion(t *testing.T) {
	children := []boxExtent{
		{pos: Position{Top: 10, Right: 10, Bottom: 0, Left: 0}},
		{pos: Position{Top: 20, Right: 25, Bottom: 5, Left: 10}},
	}
	got, ok := WrapExtremes(children)
	want := Position{Top: 20, Right: 25, Bottom: 0, Left: 0}
	if !ok || got != want {
		t.Errorf("WrapExtremes() = %+v, %v, want %+v, true", got, ok, want)
	}
}

func TestWrapExtremesStopsAtEmptyChild(t *testing.T) {
	children := []boxExtent{
		{pos: Position{Top: 10, Right: 10, Bottom: 0, Left: 0}},
		{empty: true, pos: Position{Top: 999, Right: 999, Bottom: -999, Left: -999}},
		{pos: Position{Top: 50, Right: 50, Bottom: 0, Left: 0}},
	}
	got, ok := WrapExtremes(children)
	want := Position{Top: 10, Right: 10, Bottom: 0, Left: 0}
	if !ok || got != want {
		t.Errorf("WrapExtremes() = %+v, %v, want %+v, true", got, ok, want)
	}
}
