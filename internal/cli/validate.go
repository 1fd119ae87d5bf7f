package cli

import (
	"github.com/spf13/cobra"

	"github.com/bleviet/ipcraft/pkg/errors"
	"github.com/bleviet/ipcraft/pkg/pipeline"
)

// validateCommand creates the validate command for checking layout invariants.
func (c *CLI) validateCommand() *cobra.Command {
	var mapIndex int

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a document against the layout invariants",
		Long: `Validate every collection in a document: offsets must be non-negative
and sibling occupied ranges must not overlap; bit fields must also fit
their register's declared width. The command exits non-zero when any
violation is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := loadMap(args[0], mapIndex)
			if err != nil {
				return err
			}

			violations := pipeline.Validate(cmd.Context(), m)
			if len(violations) == 0 {
				printSuccess("%s is valid", args[0])
				return nil
			}

			for _, v := range violations {
				printError("%s", errors.UserMessage(v))
			}
			return errors.New(errors.ErrCodeInvalidInput, "%d layout violations in %s", len(violations), args[0])
		},
	}

	cmd.Flags().IntVar(&mapIndex, "map", 0, "memory map index")
	return cmd
}
