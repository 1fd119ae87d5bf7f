package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bleviet/ipcraft/pkg/errors"
	"github.com/bleviet/ipcraft/pkg/export"
)

// exportCommand creates the export command for producing register map documents.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		format   string
		mapIndex int
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Produce XLSX and PDF register map documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := loadMap(args[0], mapIndex)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + format
			}

			spinner := newSpinnerWithContext(cmd.Context(), "exporting "+filepath.Base(args[0]))
			spinner.Start()
			switch format {
			case "xlsx":
				err = export.ExportXLSX(path, m)
			case "pdf":
				err = export.ExportPDF(path, m)
			default:
				err = errors.New(errors.ErrCodeUnsupported, "unknown export format %q (must be xlsx or pdf)", format)
			}
			spinner.Stop()
			if err != nil {
				return err
			}

			printSuccess("exported %s", fmt.Sprintf("%s register map", strings.ToUpper(format)))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: document name with format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "export format: xlsx or pdf")
	cmd.Flags().IntVar(&mapIndex, "map", 0, "memory map index")
	return cmd
}
