package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/bleviet/ipcraft/pkg/amap"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// Register table column widths in mm. Name, Offset, Bits, Access.
var regColWidths = []float64{60, 35, 25, 30}

// Field table column widths in mm. Name, Bit range, Access, Reset.
var fieldColWidths = []float64{60, 35, 30, 30}

// WritePDF renders a memory map as a datasheet-style PDF. Each address
// block gets its own page: a register summary table followed by a field
// table per register.
func WritePDF(m amap.MemoryMap) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)

	pdf.AddPage()
	renderTitlePage(pdf, m)

	for _, blk := range m.Blocks {
		pdf.AddPage()
		renderBlockPage(pdf, blk)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPDF writes the datasheet to a file.
func ExportPDF(path string, m amap.MemoryMap) error {
	data, err := WritePDF(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func renderTitlePage(pdf *fpdf.Fpdf, m amap.MemoryMap) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(marginLeft, marginTop+20)
	pdf.CellFormat(contentWidth, 12, m.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 8, "Register Map", "", 1, "C", false, 0, "")

	// Block index table.
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(marginLeft)
	pdf.CellFormat(70, rowHeight, "Address Block", "B", 0, "L", false, 0, "")
	pdf.CellFormat(45, rowHeight, "Base", "B", 0, "L", false, 0, "")
	pdf.CellFormat(45, rowHeight, "Size", "B", 1, "L", false, 0, "")

	pdf.SetFont("Courier", "", 10)
	for _, blk := range m.Blocks {
		pdf.SetX(marginLeft)
		pdf.CellFormat(70, rowHeight, blk.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(45, rowHeight, fmt.Sprintf("0x%08X", blk.Base), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, rowHeight, fmt.Sprintf("0x%X", blk.Footprint()), "", 1, "L", false, 0, "")
	}
}

func renderBlockPage(pdf *fpdf.Fpdf, blk amap.AddressBlock) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, blk.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginLeft)
	info := fmt.Sprintf("Base: 0x%08X    Size: 0x%X", blk.Base, blk.Footprint())
	if blk.Usage != "" {
		info += "    Usage: " + blk.Usage
	}
	pdf.CellFormat(contentWidth, 6, info, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Register summary table.
	headerRow(pdf, regColWidths, []string{"Register", "Offset", "Bits", "Access"})
	pdf.SetFont("Courier", "", 9)
	for _, reg := range blk.Registers {
		name := reg.Name
		if reg.IsArray() {
			name = fmt.Sprintf("%s[%d]", reg.Name, reg.Count)
		}
		pdf.SetX(marginLeft)
		pdf.CellFormat(regColWidths[0], rowHeight, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(regColWidths[1], rowHeight, fmt.Sprintf("0x%02X", reg.Offset), "", 0, "L", false, 0, "")
		pdf.CellFormat(regColWidths[2], rowHeight, fmt.Sprintf("%d", reg.BitWidth()), "", 0, "L", false, 0, "")
		pdf.CellFormat(regColWidths[3], rowHeight, reg.Access, "", 1, "L", false, 0, "")
	}

	// Field tables.
	for _, reg := range blk.Registers {
		if len(reg.Fields) == 0 {
			continue
		}
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetX(marginLeft)
		pdf.CellFormat(contentWidth, 8, reg.Name, "", 1, "L", false, 0, "")

		headerRow(pdf, fieldColWidths, []string{"Field", "Bits", "Access", "Reset"})
		pdf.SetFont("Courier", "", 9)
		for _, fld := range reg.Fields {
			pdf.SetX(marginLeft)
			pdf.CellFormat(fieldColWidths[0], rowHeight, fld.Name, "", 0, "L", false, 0, "")
			pdf.CellFormat(fieldColWidths[1], rowHeight, fmt.Sprintf("[%d:%d]", fld.MSB(), fld.Offset), "", 0, "L", false, 0, "")
			pdf.CellFormat(fieldColWidths[2], rowHeight, fld.Access, "", 0, "L", false, 0, "")
			pdf.CellFormat(fieldColWidths[3], rowHeight, fld.Reset, "", 1, "L", false, 0, "")
		}
	}
}

func headerRow(pdf *fpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(marginLeft)
	for i, label := range labels {
		align := "L"
		border := "B"
		last := 0
		if i == len(labels)-1 {
			last = 1
		}
		pdf.CellFormat(widths[i], rowHeight, label, border, last, align, false, 0, "")
	}
}
