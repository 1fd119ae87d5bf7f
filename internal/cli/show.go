package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/document"
)

// showCommand creates the show command for printing a document's hierarchy.
func (c *CLI) showCommand() *cobra.Command {
	var (
		blockName string
		fields    bool
	)

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a document's address-map hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}

			for _, m := range doc.Maps {
				fmt.Println(StyleTitle.Render(m.Name))
				for _, blk := range m.Blocks {
					if blockName != "" && blk.Name != blockName {
						continue
					}
					showBlock(blk, fields)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&blockName, "block", "", "show only the named address block")
	cmd.Flags().BoolVar(&fields, "fields", false, "include bit fields in the register table")
	return cmd
}

func showBlock(blk amap.AddressBlock, withFields bool) {
	header := fmt.Sprintf("%s  base 0x%X  size 0x%X", blk.Name, blk.Base, blk.Footprint())
	fmt.Println("  " + StyleHighlight.Render(header))

	if len(blk.Registers) == 0 {
		printDetail("no registers")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})

	if withFields {
		t.Headers("Register", "Offset", "Bits", "Field", "Range", "Access")
		for _, reg := range blk.Registers {
			t.Row(reg.Name, fmt.Sprintf("0x%02X", reg.Offset), fmt.Sprintf("%d", reg.BitWidth()), "", "", reg.Access)
			for _, f := range reg.Fields {
				t.Row("", "", "", f.Name, fmt.Sprintf("[%d:%d]", f.MSB(), f.Offset), f.Access)
			}
		}
	} else {
		t.Headers("Register", "Offset", "Bits", "Access", "Fields")
		for _, reg := range blk.Registers {
			name := reg.Name
			if reg.IsArray() {
				name = fmt.Sprintf("%s[%d]", reg.Name, reg.Count)
			}
			t.Row(name, fmt.Sprintf("0x%02X", reg.Offset), fmt.Sprintf("%d", reg.BitWidth()),
				reg.Access, fmt.Sprintf("%d", len(reg.Fields)))
		}
	}

	fmt.Println(t.Render())
}
