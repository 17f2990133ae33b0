package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worldseedr/worldseedr/pkg/schema"
)

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <library.json>",
		Short: "Check a possibility library for dangling references and bad modes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

func (c *CLI) runValidate(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read library: %w", err)
	}
	var lib schema.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return fmt.Errorf("parse library: %w", err)
	}

	issues := lib.Validate()
	if len(issues) == 0 {
		c.Logger.Infof("%s: no issues found across %d schema(s)", path, len(lib))
		return nil
	}

	for _, issue := range issues {
		if issue.Child < 0 {
			c.Logger.Errorf("%s: %s", issue.Schema, issue.Message)
		} else {
			c.Logger.Errorf("%s[%d]: %s", issue.Schema, issue.Child, issue.Message)
		}
	}
	return fmt.Errorf("%s: %d validation issue(s)", path, len(issues))
}
