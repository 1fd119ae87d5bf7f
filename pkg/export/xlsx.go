// Package export generates register map documents in spreadsheet and PDF
// form, the formats hardware teams actually pass around.
package export

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/bleviet/ipcraft/pkg/amap"
)

// Spreadsheet column headers for register rows.
var registerHeaders = []string{"Register", "Offset", "Bits", "Access", "Array", "Field", "Bit Range", "Field Access", "Reset"}

// WriteXLSX renders a memory map as an Excel workbook, one sheet per
// address block. Registers appear as bold rows with their fields indented
// below them.
func WriteXLSX(m amap.MemoryMap) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	monoStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: "Courier New"}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	for i, blk := range m.Blocks {
		sheet := sheetName(blk.Name)
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
			}
		}

		if err := writeBlockSheet(f, sheet, blk, boldStyle, monoStyle); err != nil {
			return nil, err
		}
	}

	if len(m.Blocks) == 0 {
		f.SetCellValue("Sheet1", "A1", fmt.Sprintf("memory map %q has no address blocks", m.Name))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes the workbook to a file.
func ExportXLSX(path string, m amap.MemoryMap) error {
	data, err := WriteXLSX(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writeBlockSheet(f *excelize.File, sheet string, blk amap.AddressBlock, boldStyle, monoStyle int) error {
	// Block summary on top.
	f.SetCellValue(sheet, "A1", blk.Name)
	f.SetCellValue(sheet, "B1", fmt.Sprintf("base 0x%X", blk.Base))
	f.SetCellValue(sheet, "C1", fmt.Sprintf("size 0x%X", blk.Footprint()))
	if blk.Usage != "" {
		f.SetCellValue(sheet, "D1", blk.Usage)
	}
	f.SetCellStyle(sheet, "A1", "A1", boldStyle)

	// Header row.
	for col, h := range registerHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 3)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(registerHeaders), 3)
	f.SetCellStyle(sheet, "A3", endHeader, boldStyle)

	row := 4
	for _, reg := range blk.Registers {
		f.SetCellValue(sheet, cellAt(1, row), reg.Name)
		f.SetCellValue(sheet, cellAt(2, row), fmt.Sprintf("0x%02X", reg.Offset))
		f.SetCellValue(sheet, cellAt(3, row), reg.BitWidth())
		f.SetCellValue(sheet, cellAt(4, row), reg.Access)
		if reg.IsArray() {
			f.SetCellValue(sheet, cellAt(5, row), fmt.Sprintf("%d x %d", reg.Count, reg.Stride))
		}
		f.SetCellStyle(sheet, cellAt(1, row), cellAt(1, row), boldStyle)
		f.SetCellStyle(sheet, cellAt(2, row), cellAt(2, row), monoStyle)
		row++

		for _, fld := range reg.Fields {
			f.SetCellValue(sheet, cellAt(6, row), fld.Name)
			f.SetCellValue(sheet, cellAt(7, row), fmt.Sprintf("[%d:%d]", fld.MSB(), fld.Offset))
			f.SetCellValue(sheet, cellAt(8, row), fld.Access)
			f.SetCellValue(sheet, cellAt(9, row), fld.Reset)
			f.SetCellStyle(sheet, cellAt(7, row), cellAt(7, row), monoStyle)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "E", 12)
	f.SetColWidth(sheet, "F", "F", 20)
	f.SetColWidth(sheet, "G", "I", 12)
	return nil
}

func cellAt(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

// sheetName truncates a block name to Excel's 31-character sheet limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	if name == "" {
		return "block"
	}
	return name
}
