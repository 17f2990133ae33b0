package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/worldseedr/worldseedr/pkg/cache"
	"github.com/worldseedr/worldseedr/pkg/generate"
	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/render/svg"
	"github.com/worldseedr/worldseedr/pkg/rng"
	"github.com/worldseedr/worldseedr/pkg/schema"
	"github.com/worldseedr/worldseedr/pkg/store"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		startTitle string
		seed       int64
		direction  string
		width      float64
		height     float64
		outPath    string
		noCache    bool
		cacheDir   string
	)

	cmd := &cobra.Command{
		Use:   "generate <library.json>",
		Short: "Expand a possibility library into a placement tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runGenerate(ctx, generateOptions{
				libraryPath: args[0],
				startTitle:  startTitle,
				seed:        seed,
				direction:   geometry.Direction(direction),
				width:       width,
				height:      height,
				outPath:     outPath,
				noCache:     noCache,
				cacheDir:    cacheDir,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&startTitle, "start", "", "title of the schema to begin generation from (required)")
	flags.Int64Var(&seed, "seed", 1, "PCG seed for reproducible generation")
	flags.StringVar(&direction, "direction", "right", "fallback packing direction (top, right, bottom, left)")
	flags.Float64Var(&width, "width", 800, "width of the starting host rectangle")
	flags.Float64Var(&height, "height", 600, "height of the starting host rectangle")
	flags.StringVar(&outPath, "out", "", "write an SVG rendering of the placements to this path")
	flags.BoolVar(&noCache, "no-cache", false, "bypass the run cache")
	flags.StringVar(&cacheDir, "cache-dir", "", "override the cache directory")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

type generateOptions struct {
	libraryPath string
	startTitle  string
	seed        int64
	direction   geometry.Direction
	width       float64
	height      float64
	outPath     string
	noCache     bool
	cacheDir    string
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	raw, err := os.ReadFile(opts.libraryPath)
	if err != nil {
		return fmt.Errorf("read library: %w", err)
	}
	var lib schema.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return fmt.Errorf("parse library: %w", err)
	}
	if issues := lib.Validate(); len(issues) > 0 {
		return fmt.Errorf("library %s has %d validation issue(s); run `worldseedr validate` for details", opts.libraryPath, len(issues))
	}

	ck, err := newCache(opts.noCache, opts.cacheDir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer ck.Close()

	keyer := cache.NewDefaultKeyer()
	key := keyer.RunKey(cache.Hash(raw), opts.startTitle, uint64(opts.seed))

	if cached, ok, err := ck.Get(ctx, key); err == nil && ok {
		logger.Infof("cache hit for %s/%s (seed %d)", opts.libraryPath, opts.startTitle, opts.seed)
		return writeCommands(cached, opts.outPath)
	}

	var placements []svg.Placement
	source := rng.New(uint64(opts.seed))
	gen := generate.NewGenerator(generate.Config{
		Library: lib,
		Random:  source,
		OnPlacement: func(commands []generate.Choice) {
			for _, choice := range commands {
				placements = append(placements, svg.Placement{Title: choice.Title, Position: choice.Position})
			}
		},
	})

	host := geometry.Position{Top: opts.height, Right: opts.width, Bottom: 0, Left: 0}
	if err := gen.GenerateFull(generate.Command{Title: opts.startTitle, Position: host, Direction: opts.direction}); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	gen.RunGeneratedCommands()

	encoded, err := json.MarshalIndent(commandsToJSON(placements), "", "  ")
	if err != nil {
		return fmt.Errorf("encode commands: %w", err)
	}
	if err := ck.Set(ctx, key, encoded, time.Hour); err != nil {
		logger.Warnf("cache write failed: %v", err)
	}

	if err := writeCommands(encoded, opts.outPath); err != nil {
		return err
	}
	run := store.NewRun(cache.Hash(raw), opts.startTitle, uint64(opts.seed), len(placements), time.Since(prog.start))
	if err := c.Runs.Set(ctx, run); err != nil {
		logger.Warnf("run history write failed: %v", err)
	}

	prog.done(fmt.Sprintf("generated %d placements (run %s)", len(placements), run.ID))
	return nil
}

type commandOut struct {
	Title    string            `json:"title"`
	Position geometry.Position `json:"position"`
}

func commandsToJSON(placements []svg.Placement) []commandOut {
	out := make([]commandOut, len(placements))
	for i, p := range placements {
		out[i] = commandOut{Title: p.Title, Position: p.Position}
	}
	return out
}

// writeCommands prints the JSON command buffer to stdout, or - when
// outPath is set - decodes it back into placements and writes an SVG
// rendering there instead.
func writeCommands(data []byte, outPath string) error {
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}

	var placements []svg.Placement
	var decoded []commandOut
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode cached commands: %w", err)
	}
	for _, d := range decoded {
		placements = append(placements, svg.Placement{Title: d.Title, Position: d.Position})
	}

	rendered := svg.Render(placements, svg.WithLabels())
	return os.WriteFile(outPath, rendered, 0644)
}
