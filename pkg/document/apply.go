package document

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/errors"
)

// Apply writes value at a gjson-style path in the document text, e.g.
// "memoryMaps.0.addressBlocks.1.registers.2.offset". This is the single
// write primitive every commit goes through; the rest of the text is
// preserved byte-for-byte. Only JSON documents support path edits.
func (d *Document) Apply(path string, value any) error {
	if d.Format != FormatJSON {
		return errors.New(errors.ErrCodeUnsupported, "path edits require a JSON document")
	}

	updated, err := sjson.SetBytes(d.raw, path, value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "apply %s", path)
	}
	d.raw = updated
	return nil
}

// Lookup reads the raw document value at a gjson-style path.
func (d *Document) Lookup(path string) (gjson.Result, bool) {
	if d.Format != FormatJSON {
		return gjson.Result{}, false
	}
	r := gjson.GetBytes(d.raw, path)
	return r, r.Exists()
}

// BlocksPath returns the document path of a map's block collection.
func BlocksPath(mapIdx int) string {
	return fmt.Sprintf("memoryMaps.%d.addressBlocks", mapIdx)
}

// RegistersPath returns the document path of a block's register collection.
func RegistersPath(mapIdx, blockIdx int) string {
	return fmt.Sprintf("memoryMaps.%d.addressBlocks.%d.registers", mapIdx, blockIdx)
}

// FieldsPath returns the document path of a register's field collection.
func FieldsPath(mapIdx, blockIdx, regIdx int) string {
	return fmt.Sprintf("memoryMaps.%d.addressBlocks.%d.registers.%d.fields", mapIdx, blockIdx, regIdx)
}

// SetBlocks commits a new block collection for the map at mapIdx, updating
// both the decoded model and (for JSON documents) the document text.
func (d *Document) SetBlocks(mapIdx int, blocks []amap.AddressBlock) error {
	if mapIdx < 0 || mapIdx >= len(d.Maps) {
		return errors.New(errors.ErrCodeNotFound, "memory map %d does not exist", mapIdx)
	}
	d.Maps[mapIdx].Blocks = blocks
	if d.Format == FormatJSON {
		return d.Apply(BlocksPath(mapIdx), encodeBlocks(blocks))
	}
	return nil
}

// SetRegisters commits a new register collection for the block at
// mapIdx/blockIdx.
func (d *Document) SetRegisters(mapIdx, blockIdx int, regs []amap.Register) error {
	if mapIdx < 0 || mapIdx >= len(d.Maps) {
		return errors.New(errors.ErrCodeNotFound, "memory map %d does not exist", mapIdx)
	}
	blocks := d.Maps[mapIdx].Blocks
	if blockIdx < 0 || blockIdx >= len(blocks) {
		return errors.New(errors.ErrCodeNotFound, "address block %d does not exist", blockIdx)
	}
	blocks[blockIdx].Registers = regs
	if d.Format == FormatJSON {
		return d.Apply(RegistersPath(mapIdx, blockIdx), encodeRegisters(regs))
	}
	return nil
}

// SetFields commits a new field collection for the register at
// mapIdx/blockIdx/regIdx.
func (d *Document) SetFields(mapIdx, blockIdx, regIdx int, fields []amap.BitField) error {
	if mapIdx < 0 || mapIdx >= len(d.Maps) {
		return errors.New(errors.ErrCodeNotFound, "memory map %d does not exist", mapIdx)
	}
	blocks := d.Maps[mapIdx].Blocks
	if blockIdx < 0 || blockIdx >= len(blocks) {
		return errors.New(errors.ErrCodeNotFound, "address block %d does not exist", blockIdx)
	}
	regs := blocks[blockIdx].Registers
	if regIdx < 0 || regIdx >= len(regs) {
		return errors.New(errors.ErrCodeNotFound, "register %d does not exist", regIdx)
	}
	regs[regIdx].Fields = fields
	if d.Format == FormatJSON {
		return d.Apply(FieldsPath(mapIdx, blockIdx, regIdx), encodeFields(fields))
	}
	return nil
}
