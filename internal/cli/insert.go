package cli

import (
	"github.com/spf13/cobra"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/amap/layout"
	"github.com/bleviet/ipcraft/pkg/document"
	"github.com/bleviet/ipcraft/pkg/errors"
)

// insertOpts holds the command-line flags shared by the insert subcommands.
type insertOpts struct {
	mapIndex int
	block    string
	register string
	anchor   string
	before   bool
	dryRun   bool
}

func (o *insertOpts) direction() layout.Direction {
	if o.before {
		return layout.Before
	}
	return layout.After
}

// insertCommand creates the insert command with field/register/block subcommands.
func (c *CLI) insertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert a field, register, or block next to an anchor",
		Long: `Insert a new item into a document next to an existing anchor item.

The new item gets a generated name and the minimum footprint, placed
directly after (or before, with --before) the anchor. Siblings on the
insertion side are repacked to close the gaps the insertion opens; an
insertion that would overlap a packed neighbor is rejected.`,
	}

	cmd.AddCommand(c.insertFieldCommand())
	cmd.AddCommand(c.insertRegisterCommand())
	cmd.AddCommand(c.insertBlockCommand())
	return cmd
}

func (c *CLI) insertFieldCommand() *cobra.Command {
	var opts insertOpts

	cmd := &cobra.Command{
		Use:   "field <file>",
		Short: "Insert a bit field into a register",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadMap(args[0], opts.mapIndex)
			if err != nil {
				return err
			}
			bi, blk, err := requireBlock(m, opts.block)
			if err != nil {
				return err
			}
			ri, reg, err := requireRegister(blk, opts.register)
			if err != nil {
				return err
			}

			anchor := len(reg.Fields) - 1
			if opts.anchor != "" {
				if anchor = fieldIndex(reg.Fields, opts.anchor); anchor < 0 {
					return errors.New(errors.ErrCodeNotFound, "anchor field %q not found in register %q", opts.anchor, reg.Name)
				}
			}

			fields, pos, err := layout.InsertField(reg.Fields, anchor, opts.direction(), reg.BitWidth())
			if err != nil {
				return err
			}

			added := fields[pos]
			printSuccess("inserted field %s at bits [%d:%d]", StyleHighlight.Render(added.Name), added.MSB(), added.Offset)
			if opts.dryRun {
				printDetail("dry run, document not modified")
				return nil
			}

			if err := doc.SetFields(opts.mapIndex, bi, ri, fields); err != nil {
				return err
			}
			return saveDoc(doc, args[0])
		},
	}

	addInsertFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.register, "register", "", "register to insert into (required)")
	_ = cmd.MarkFlagRequired("block")
	_ = cmd.MarkFlagRequired("register")
	return cmd
}

func (c *CLI) insertRegisterCommand() *cobra.Command {
	var opts insertOpts

	cmd := &cobra.Command{
		Use:   "register <file>",
		Short: "Insert a register into an address block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadMap(args[0], opts.mapIndex)
			if err != nil {
				return err
			}
			bi, blk, err := requireBlock(m, opts.block)
			if err != nil {
				return err
			}

			anchor := len(blk.Registers) - 1
			if opts.anchor != "" {
				if anchor = registerIndex(blk.Registers, opts.anchor); anchor < 0 {
					return errors.New(errors.ErrCodeNotFound, "anchor register %q not found in block %q", opts.anchor, blk.Name)
				}
			}

			regs, pos, err := layout.InsertRegister(blk.Registers, anchor, opts.direction())
			if err != nil {
				return err
			}

			added := regs[pos]
			printSuccess("inserted register %s at offset 0x%02X", StyleHighlight.Render(added.Name), added.Offset)
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

	addInsertFlags(cmd, &opts)
	_ = cmd.MarkFlagRequired("block")
	return cmd
}

func (c *CLI) insertBlockCommand() *cobra.Command {
	var opts insertOpts

	cmd := &cobra.Command{
		Use:   "block <file>",
		Short: "Insert an address block into a memory map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadMap(args[0], opts.mapIndex)
			if err != nil {
				return err
			}

			anchor := len(m.Blocks) - 1
			if opts.anchor != "" {
				if anchor = blockIndex(m.Blocks, opts.anchor); anchor < 0 {
					return errors.New(errors.ErrCodeNotFound, "anchor block %q not found in map %q", opts.anchor, m.Name)
				}
			}

			blocks, pos, err := layout.InsertBlock(m.Blocks, anchor, opts.direction())
			if err != nil {
				return err
			}

			added := blocks[pos]
			printSuccess("inserted block %s at base 0x%X", StyleHighlight.Render(added.Name), added.Base)
			if opts.dryRun {
				printDetail("dry run, document not modified")
				return nil
			}

			if err := doc.SetBlocks(opts.mapIndex, blocks); err != nil {
				return err
			}
			return saveDoc(doc, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.mapIndex, "map", 0, "memory map index")
	cmd.Flags().StringVar(&opts.anchor, "anchor", "", "anchor block name (default: last block)")
	cmd.Flags().BoolVar(&opts.before, "before", false, "insert before the anchor instead of after")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report the result without writing the file")
	return cmd
}

// addInsertFlags registers the flags common to field and register insertion.
func addInsertFlags(cmd *cobra.Command, opts *insertOpts) {
	cmd.Flags().IntVar(&opts.mapIndex, "map", 0, "memory map index")
	cmd.Flags().StringVar(&opts.block, "block", "", "address block to insert into (required)")
	cmd.Flags().StringVar(&opts.anchor, "anchor", "", "anchor item name (default: last item)")
	cmd.Flags().BoolVar(&opts.before, "before", false, "insert before the anchor instead of after")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report the result without writing the file")
}

// =============================================================================
// Document Helpers
// =============================================================================

func loadMap(path string, mapIndex int) (*document.Document, amap.MemoryMap, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, amap.MemoryMap{}, err
	}
	m, ok := doc.Map(mapIndex)
	if !ok {
		return nil, amap.MemoryMap{}, errors.New(errors.ErrCodeNotFound, "document has no memory map at index %d", mapIndex)
	}
	return doc, m, nil
}

func saveDoc(doc *document.Document, path string) error {
	if err := doc.Save(path); err != nil {
		return err
	}
	printFile(path)
	return nil
}

func requireBlock(m amap.MemoryMap, name string) (int, amap.AddressBlock, error) {
	i := blockIndex(m.Blocks, name)
	if i < 0 {
		return 0, amap.AddressBlock{}, errors.New(errors.ErrCodeNotFound, "address block %q not found in map %q", name, m.Name)
	}
	return i, m.Blocks[i], nil
}

func requireRegister(blk amap.AddressBlock, name string) (int, amap.Register, error) {
	i := registerIndex(blk.Registers, name)
	if i < 0 {
		return 0, amap.Register{}, errors.New(errors.ErrCodeNotFound, "register %q not found in block %q", name, blk.Name)
	}
	return i, blk.Registers[i], nil
}

func blockIndex(blocks []amap.AddressBlock, name string) int {
	for i, b := range blocks {
		if b.Name == name {
			return i
		}
	}
	return -1
}

func registerIndex(regs []amap.Register, name string) int {
	for i, r := range regs {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func fieldIndex(fields []amap.BitField, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
