package generate

import (
	"testing"

	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/rng"
	"github.com/worldseedr/worldseedr/pkg/schema"
	"github.com/worldseedr/worldseedr/pkg/wserrors"
)

func testLibrary() schema.Library {
	return schema.Library{
		"room": {
			Width: 100, Height: 20,
			Contents: schema.Contents{
				Mode: schema.ModeCertain,
				Children: []schema.PossibilityChild{
					{Title: "wall", Type: schema.TypeKnown},
					{Title: "hall", Type: schema.TypeRandom},
				},
			},
		},
		"wall": {Width: 10, Height: 20, Contents: schema.Contents{Mode: schema.ModeCertain}},
		"hall": {
			Width: 10, Height: 20,
			Contents: schema.Contents{
				Mode: schema.ModeCertain,
				Children: []schema.PossibilityChild{
					{Title: "torch", Type: schema.TypeKnown},
				},
			},
		},
		"torch": {Width: 2, Height: 2, Contents: schema.Contents{Mode: schema.ModeCertain}},
	}
}

func TestGenerateFullFlattensRandomChildrenIntoCommands(t *testing.T) {
	g := NewGenerator(Config{Library: testLibrary(), Random: rng.New(1)})
	err := g.GenerateFull(Command{Title: "room", Position: rightHost(100, 20), Direction: geometry.Right})
	if err != nil {
		t.Fatalf("GenerateFull: %v", err)
	}
	commands := g.Commands()
	if len(commands) != 2 {
		t.Fatalf("len(commands) = %d, want 2 (wall, torch)", len(commands))
	}
	if commands[0].Title != "wall" {
		t.Fatalf("commands[0].Title = %q, want wall", commands[0].Title)
	}
	if commands[1].Title != "torch" {
		t.Fatalf("commands[1].Title = %q, want torch", commands[1].Title)
	}
}

func TestRunGeneratedCommandsInvokesCallbackAndClears(t *testing.T) {
	var seen []Choice
	g := NewGenerator(Config{
		Library:     testLibrary(),
		Random:      rng.New(1),
		OnPlacement: func(cs []Choice) { seen = cs },
	})
	if err := g.GenerateFull(Command{Title: "room", Position: rightHost(100, 20), Direction: geometry.Right}); err != nil {
		t.Fatalf("GenerateFull: %v", err)
	}
	g.RunGeneratedCommands()
	if len(seen) != 2 {
		t.Fatalf("len(seen) = %d, want 2", len(seen))
	}
	if len(g.Commands()) != 0 {
		t.Fatalf("commands not cleared after RunGeneratedCommands")
	}
}

func TestGenerateUnknownModeErrors(t *testing.T) {
	lib := schema.Library{
		"broken": {Width: 10, Height: 10, Contents: schema.Contents{Mode: "Bogus"}},
	}
	g := NewGenerator(Config{Library: lib, Random: fixedSource(0)})
	_, err := g.Generate(Command{Title: "broken", Position: rightHost(10, 10), Direction: geometry.Right})
	if !wserrors.Is(err, wserrors.CodeUnknownMode) {
		t.Fatalf("err = %v, want CodeUnknownMode", err)
	}
}

func TestGenerateMissingDirectionErrors(t *testing.T) {
	lib := schema.Library{
		"needs-dir": {
			Width: 10, Height: 10,
			Contents: schema.Contents{
				Mode:     schema.ModeCertain,
				Children: []schema.PossibilityChild{{Title: "leaf", Type: schema.TypeKnown}},
			},
		},
		"leaf": {Width: 1, Height: 1, Contents: schema.Contents{Mode: schema.ModeCertain}},
	}
	g := NewGenerator(Config{Library: lib, Random: fixedSource(0)})
	_, err := g.Generate(Command{Title: "needs-dir", Position: rightHost(10, 10)})
	if !wserrors.Is(err, wserrors.CodeUnknownDirection) {
		t.Fatalf("err = %v, want CodeUnknownDirection", err)
	}
}

// TestGenerateDeterministic verifies the same seed produces the same
// command buffer.
func TestGenerateDeterministic(t *testing.T) {
	cmd := Command{Title: "room", Position: rightHost(100, 20), Direction: geometry.Right}

	g1 := NewGenerator(Config{Library: testLibrary(), Random: rng.New(42)})
	if err := g1.GenerateFull(cmd); err != nil {
		t.Fatalf("GenerateFull (g1): %v", err)
	}
	g2 := NewGenerator(Config{Library: testLibrary(), Random: rng.New(42)})
	if err := g2.GenerateFull(cmd); err != nil {
		t.Fatalf("GenerateFull (g2): %v", err)
	}

	c1, c2 := g1.Commands(), g2.Commands()
	if len(c1) != len(c2) {
		t.Fatalf("len(c1)=%d, len(c2)=%d, want equal", len(c1), len(c2))
	}
	for i := range c1 {
		if c1[i].Title != c2[i].Title || c1[i].Position != c2[i].Position {
			t.Fatalf("command %d diverged: %+v vs %+v", i, c1[i], c2[i])
		}
	}
}

// TestDepthExceededAbortsOnlyItsBranch exercises a self-referencing
// schema: recursion is capped, and the offending branch contributes an
// empty Contents rather than failing the whole generation.
func TestDepthExceededAbortsOnlyItsBranch(t *testing.T) {
	lib := schema.Library{
		"loop": {
			Width: 5, Height: 5,
			Contents: schema.Contents{
				Mode:     schema.ModeCertain,
				Children: []schema.PossibilityChild{{Title: "loop", Type: schema.TypeRandom}},
			},
		},
	}
	g := NewGenerator(Config{Library: lib, Random: fixedSource(0), MaxDepth: 3})
	err := g.GenerateFull(Command{Title: "loop", Position: rightHost(5, 5), Direction: geometry.Right})
	if err != nil {
		t.Fatalf("GenerateFull: %v", err)
	}
	if len(g.Commands()) != 0 {
		t.Fatalf("len(commands) = %d, want 0 (self-reference has no Known leaves)", len(g.Commands()))
	}
}
