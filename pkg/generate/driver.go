package generate

import (
	stdlog "log"

	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/rng"
	"github.com/worldseedr/worldseedr/pkg/schema"
	"github.com/worldseedr/worldseedr/pkg/wserrors"
)

// defaultMaxDepth bounds Random-child recursion when a possibility library
// contains a self-referencing or mutually-recursive cycle. It is generous
// enough that no legitimate schema tree should ever approach it.
const defaultMaxDepth = 256

// Command is what a caller, or a mode generator recursing into a Random
// child, hands to Generate: the schema to expand, the host rectangle it
// must fit inside, and a fallback direction used only when the schema
// itself declares none.
type Command struct {
	Title     string
	Position  geometry.Position
	Direction geometry.Direction
}

// Config configures a Generator.
type Config struct {
	// Library is the possibility set schemas are resolved against.
	Library schema.Library

	// Random supplies every percentage roll and spacing draw. Required.
	Random rng.Source

	// OnPlacement receives the flushed command buffer of terminal Known
	// choices when RunGeneratedCommands is called. If nil, placements are
	// logged to the standard logger and otherwise discarded - callers
	// that care about output should always set this.
	OnPlacement func([]Choice)

	// MaxDepth caps Random-child recursion depth. Zero uses
	// defaultMaxDepth.
	MaxDepth int
}

// Generator drives recursive schema expansion: it resolves one named
// schema into a tree of Choices via the mode generators, and separately
// flattens that tree into an ordered command buffer of terminal
// placements.
type Generator struct {
	library     schema.Library
	random      rng.Source
	onPlacement func([]Choice)
	maxDepth    int

	commands []Choice
}

// NewGenerator builds a Generator from cfg. It panics if cfg.Random is
// nil, since every generation call needs a source of randomness.
func NewGenerator(cfg Config) *Generator {
	if cfg.Random == nil {
		panic("generate: Config.Random must not be nil")
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	onPlacement := cfg.OnPlacement
	if onPlacement == nil {
		onPlacement = logPlacements
	}
	return &Generator{
		library:     cfg.Library,
		random:      cfg.Random,
		onPlacement: onPlacement,
		maxDepth:    maxDepth,
	}
}

func logPlacements(commands []Choice) {
	for _, c := range commands {
		stdlog.Printf("worldseedr: placed %s at %+v", c.Title, c.Position)
	}
}

// Generate resolves cmd's schema into an aggregate Choice: it merges the
// host rectangle from cmd with the schema's own dimensions, resolves the
// layout direction (the schema's own Contents.Direction overrides cmd's
// fallback), dispatches to the matching mode generator, and wraps the
// results into a single bounding Position via WrapExtremes.
func (g *Generator) Generate(cmd Command) (Choice, error) {
	return g.generate(cmd, 0)
}

func (g *Generator) generate(cmd Command, depth int) (Choice, error) {
	if depth > g.maxDepth {
		return Choice{}, wserrors.New(wserrors.CodeDepthExceeded, "recursion depth exceeded generating %q", cmd.Title)
	}

	sch, err := g.library.Get(cmd.Title)
	if err != nil {
		return Choice{}, err
	}
	if !sch.Contents.Mode.Valid() {
		return Choice{}, wserrors.New(wserrors.CodeUnknownMode, "unknown mode %q in schema %q", sch.Contents.Mode, cmd.Title)
	}

	dir := cmd.Direction
	if sch.Contents.Direction != nil {
		dir = *sch.Contents.Direction
	}
	if len(sch.Contents.Children) > 0 {
		if _, ok := geometry.Opposite(dir); !ok {
			return Choice{}, wserrors.New(wserrors.CodeUnknownDirection, "schema %q has children but no resolvable direction", cmd.Title)
		}
	}

	var (
		children []Choice
		genErr   error
	)
	switch sch.Contents.Mode {
	case schema.ModeCertain:
		children, genErr = g.runCertain(sch.Contents, cmd.Position, dir, depth)
	case schema.ModeRepeat:
		children, genErr = g.runRepeat(sch.Contents, cmd.Position, dir, depth)
	case schema.ModeRandom:
		children, genErr = g.runRandom(sch.Contents, cmd.Position, dir, depth)
	case schema.ModeMultiple:
		children, genErr = g.runMultiple(sch.Contents, cmd.Position, dir, depth)
	}
	if genErr != nil {
		return Choice{}, genErr
	}

	agg := Choice{
		Title:    cmd.Title,
		Type:     schema.TypeRandom,
		Position: cmd.Position,
		Width:    sch.Width,
		Height:   sch.Height,
		Children: children,
	}
	if bounds, ok := geometry.WrapExtremes(children); ok {
		agg.Position = bounds
	}
	return agg, nil
}

// recurseChild fills in parsed.Contents for any child that isn't a
// terminal Known placement. A depth-exceeded error aborts only this one
// branch - parsed keeps its already-computed Position but contributes no
// further descendants - rather than failing the whole generation.
func (g *Generator) recurseChild(parsed *Choice, dir geometry.Direction, depth int) error {
	if parsed.Type == schema.TypeKnown {
		return nil
	}

	agg, err := g.generate(Command{Title: parsed.Title, Position: parsed.Position, Direction: dir}, depth+1)
	if err != nil {
		if wserrors.Is(err, wserrors.CodeDepthExceeded) {
			empty := Choice{Title: parsed.Title, Type: schema.TypeRandom}
			parsed.Contents = &empty
			return nil
		}
		return err
	}
	parsed.Contents = &agg
	return nil
}

// GenerateFull calls Generate and flattens the resulting tree into the
// command buffer: Known children are appended as terminal placements,
// Random children are flushed via their already-populated Contents, and
// any other child type is a malformed-tree error that should never occur
// given Generate's own invariants.
func (g *Generator) GenerateFull(cmd Command) error {
	agg, err := g.generate(cmd, 0)
	if err != nil {
		return err
	}
	return g.flush(agg)
}

func (g *Generator) flush(agg Choice) error {
	for _, child := range agg.Children {
		switch child.Type {
		case schema.TypeKnown:
			g.commands = append(g.commands, child)
		case schema.TypeRandom:
			if child.Contents == nil {
				return wserrors.New(wserrors.CodeMalformedSchema, "Random child %q has no generated contents", child.Title)
			}
			if err := g.flush(*child.Contents); err != nil {
				return err
			}
		default:
			return wserrors.New(wserrors.CodeUnknownChildType, "unexpected child type %q in generated tree", child.Type)
		}
	}
	return nil
}

// Commands returns the command buffer accumulated so far.
func (g *Generator) Commands() []Choice {
	return g.commands
}

// ClearGeneratedCommands empties the command buffer without invoking
// OnPlacement.
func (g *Generator) ClearGeneratedCommands() {
	g.commands = nil
}

// RunGeneratedCommands invokes OnPlacement with the current command
// buffer, then clears it.
func (g *Generator) RunGeneratedCommands() {
	g.onPlacement(g.commands)
	g.ClearGeneratedCommands()
}
