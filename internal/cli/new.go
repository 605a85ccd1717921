package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fontgarden/fontgarden/pkg/garden"
)

// newNewCmd creates the "new" command, which writes an empty repository.
func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <path>",
		Short: "Create an empty fontgarden repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := garden.New().Save(path); err != nil {
				return fmt.Errorf("create repository: %w", err)
			}
			printSuccess("Created empty fontgarden at %s", path)
			return nil
		},
	}
}
