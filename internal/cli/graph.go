package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worldseedr/worldseedr/pkg/render/dot"
	"github.com/worldseedr/worldseedr/pkg/schema"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		outPath string
		svgOut  bool
	)

	cmd := &cobra.Command{
		Use:   "graph <library.json>",
		Short: "Render a library's schema-reference graph as Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(args[0], outPath, svgOut)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write output to this path instead of stdout")
	cmd.Flags().BoolVar(&svgOut, "svg", false, "rasterize to SVG instead of emitting raw DOT")
	return cmd
}

func (c *CLI) runGraph(path, outPath string, svgOut bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read library: %w", err)
	}
	var lib schema.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return fmt.Errorf("parse library: %w", err)
	}

	src := dot.ToDOT(lib)
	if !svgOut {
		return writeOutput([]byte(src), outPath)
	}

	rendered, err := dot.RenderSVG(src)
	if err != nil {
		return fmt.Errorf("render SVG: %w", err)
	}
	return writeOutput(rendered, outPath)
}

func writeOutput(data []byte, outPath string) error {
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outPath, data, 0644)
}
