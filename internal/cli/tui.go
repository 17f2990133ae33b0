package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/worldseedr/worldseedr/pkg/generate"
	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/rng"
	"github.com/worldseedr/worldseedr/pkg/schema"
)

func (c *CLI) watchCommand() *cobra.Command {
	var (
		startTitle string
		seed       int64
		direction  string
		width      float64
		height     float64
		tick       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <library.json>",
		Short: "Generate a library interactively, revealing placements as they occur",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read library: %w", err)
			}
			var lib schema.Library
			if err := json.Unmarshal(raw, &lib); err != nil {
				return fmt.Errorf("parse library: %w", err)
			}

			placements, err := runToCompletion(lib, startTitle, uint64(seed), geometry.Direction(direction), width, height)
			if err != nil {
				return err
			}

			program := tea.NewProgram(newWatchModel(placements, tick))
			_, err = program.Run()
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&startTitle, "start", "", "title of the schema to begin generation from (required)")
	flags.Int64Var(&seed, "seed", 1, "PCG seed for reproducible generation")
	flags.StringVar(&direction, "direction", "right", "fallback packing direction (top, right, bottom, left)")
	flags.Float64Var(&width, "width", 800, "width of the starting host rectangle")
	flags.Float64Var(&height, "height", 600, "height of the starting host rectangle")
	flags.DurationVar(&tick, "tick", 120*time.Millisecond, "delay between revealed placements")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// runToCompletion generates once, up front, and hands the resulting
// command buffer to the TUI to replay - GenerateFull's OnPlacement fires a
// single time with the whole buffer, so "watching" placements happen is a
// presentation-layer replay rather than a truly incremental feed.
func runToCompletion(lib schema.Library, startTitle string, seed uint64, dir geometry.Direction, width, height float64) ([]generate.Choice, error) {
	var placements []generate.Choice
	gen := generate.NewGenerator(generate.Config{
		Library: lib,
		Random:  rng.New(seed),
		OnPlacement: func(commands []generate.Choice) {
			placements = commands
		},
	})
	host := geometry.Position{Top: height, Right: width, Bottom: 0, Left: 0}
	if err := gen.GenerateFull(generate.Command{Title: startTitle, Position: host, Direction: dir}); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	gen.RunGeneratedCommands()
	return placements, nil
}

type revealMsg struct{}

// watchModel steps through a pre-computed placement list one entry per
// tick, so a user watching the terminal sees the generation "happen" even
// though the underlying kernel run already finished.
type watchModel struct {
	placements []generate.Choice
	shown      int
	tick       time.Duration
	quitting   bool
}

func newWatchModel(placements []generate.Choice, tick time.Duration) watchModel {
	return watchModel{placements: placements, tick: tick}
}

func (m watchModel) Init() tea.Cmd {
	return m.scheduleReveal()
}

func (m watchModel) scheduleReveal() tea.Cmd {
	if m.shown >= len(m.placements) {
		return nil
	}
	return tea.Tick(m.tick, func(time.Time) tea.Msg { return revealMsg{} })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case revealMsg:
		if m.shown < len(m.placements) {
			m.shown++
		}
		if m.shown >= len(m.placements) {
			return m, nil
		}
		return m, m.scheduleReveal()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("worldseedr watch"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d placements", m.shown, len(m.placements))))
	b.WriteString("\n\n")

	for _, choice := range m.placements[:m.shown] {
		pos := choice.Position
		b.WriteString(StyleHighlight.Render(choice.Title))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(fmt.Sprintf("[%.0f,%.0f]-[%.0f,%.0f]", pos.Left, pos.Bottom, pos.Right, pos.Top)))
		b.WriteString("\n")
	}

	if m.shown >= len(m.placements) {
		b.WriteString("\n")
		if len(m.placements) == 0 {
			b.WriteString(StyleWarning.Render("no placements generated"))
		} else {
			b.WriteString(StyleSuccess.Render(fmt.Sprintf("done - %d placements", len(m.placements))))
		}
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("\nq to quit"))
	return b.String()
}
