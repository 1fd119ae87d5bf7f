package cli

import (
	"github.com/spf13/cobra"

	"github.com/bleviet/ipcraft/pkg/amap/layout"
	"github.com/bleviet/ipcraft/pkg/errors"
)

// repackOpts holds the command-line flags for the repack command.
type repackOpts struct {
	mapIndex int
	block    string
	register string
	from     string
	backward bool
	dryRun   bool
}

// repackCommand creates the repack command for closing layout gaps.
func (c *CLI) repackCommand() *cobra.Command {
	var opts repackOpts

	cmd := &cobra.Command{
		Use:   "repack <file>",
		Short: "Close gaps in a collection's layout",
		Long: `Repack a collection so items sit back to back.

Without --register the registers of --block are repacked; with --register
that register's bit fields are. Forward repacking (the default) packs the
item named by --from and everything after it against the preceding items.
With --backward the prefix ending at --from is packed against the items
that follow, never moving anything below offset zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadMap(args[0], opts.mapIndex)
			if err != nil {
				return err
			}
			bi, blk, err := requireBlock(m, opts.block)
			if err != nil {
				return err
			}

			if opts.register != "" {
				ri, reg, err := requireRegister(blk, opts.register)
				if err != nil {
					return err
				}
				from := fieldIndex(reg.Fields, opts.from)
				if opts.from != "" && from < 0 {
					return errors.New(errors.ErrCodeNotFound, "field %q not found in register %q", opts.from, reg.Name)
				}
				if opts.from == "" {
					from = 0
				}
				fields := repackItems(layout.Fields, reg.Fields, from, opts.backward)
				printSuccess("repacked %d fields in %s", len(fields), StyleHighlight.Render(reg.Name))
				if opts.dryRun {
					printDetail("dry run, document not modified")
					return nil
				}
				if err := doc.SetFields(opts.mapIndex, bi, ri, fields); err != nil {
					return err
				}
				return saveDoc(doc, args[0])
			}

			from := registerIndex(blk.Registers, opts.from)
			if opts.from != "" && from < 0 {
				return errors.New(errors.ErrCodeNotFound, "register %q not found in block %q", opts.from, blk.Name)
			}
			if opts.from == "" {
				from = 0
			}
			regs := repackItems(layout.Registers, blk.Registers, from, opts.backward)
			printSuccess("repacked %d registers in %s", len(regs), StyleHighlight.Render(blk.Name))
			if opts.dryRun {
				printDetail("dry run, document not modified")
				return nil
			}
			if err := doc.SetRegisters(opts.mapIndex, bi, regs); err != nil {
				return err
			}
			return saveDoc(doc, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.mapIndex, "map", 0, "memory map index")
	cmd.Flags().StringVar(&opts.block, "block", "", "address block to repack (required)")
	cmd.Flags().StringVar(&opts.register, "register", "", "repack this register's bit fields instead")
	cmd.Flags().StringVar(&opts.from, "from", "", "item name to start repacking at (default: first item)")
	cmd.Flags().BoolVar(&opts.backward, "backward", false, "pack the prefix against the following items")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report the result without writing the file")
	_ = cmd.MarkFlagRequired("block")
	return cmd
}

func repackItems[T any](acc layout.Accessor[T], items []T, from int, backward bool) []T {
	if backward {
		return layout.Normalize(acc, layout.RepackBackward(acc, items, from))
	}
	return layout.Normalize(acc, layout.RepackForward(acc, items, from))
}

// moveCommand creates the move command for reordering siblings.
func (c *CLI) moveCommand() *cobra.Command {
	var opts repackOpts

	cmd := &cobra.Command{
		Use:       "move up|down <file>",
		Short:     "Swap an item with its neighbor and repack",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			up := args[0] == "up"
			if !up && args[0] != "down" {
				return errors.New(errors.ErrCodeInvalidInput, "direction must be \"up\" or \"down\", got %q", args[0])
			}

			doc, m, err := loadMap(args[1], opts.mapIndex)
			if err != nil {
				return err
			}
			bi, blk, err := requireBlock(m, opts.block)
			if err != nil {
				return err
			}
			i, reg, err := requireRegister(blk, opts.register)
			if err != nil {
				return err
			}

			regs, pos := moveItem(layout.Registers, blk.Registers, i, up)
			if pos == i {
				printInfo("register %s is already at the %s", reg.Name, edgeName(up))
				return nil
			}

			printSuccess("moved register %s %s, now at offset 0x%02X", StyleHighlight.Render(reg.Name), args[0], regs[pos].Offset)
			if opts.dryRun {
				printDetail("dry run, document not modified")
				return nil
			}
			if err := doc.SetRegisters(opts.mapIndex, bi, regs); err != nil {
				return err
			}
			return saveDoc(doc, args[1])
		},
	}

	cmd.Flags().IntVar(&opts.mapIndex, "map", 0, "memory map index")
	cmd.Flags().StringVar(&opts.block, "block", "", "address block containing the register (required)")
	cmd.Flags().StringVar(&opts.register, "register", "", "register to move (required)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report the result without writing the file")
	_ = cmd.MarkFlagRequired("block")
	_ = cmd.MarkFlagRequired("register")
	return cmd
}

func moveItem[T any](acc layout.Accessor[T], items []T, i int, up bool) ([]T, int) {
	if up {
		return layout.MoveUp(acc, items, i)
	}
	return layout.MoveDown(acc, items, i)
}

func edgeName(up bool) string {
	if up {
		return "top"
	}
	return "bottom"
}
