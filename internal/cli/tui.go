package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/amap/layout"
	"github.com/bleviet/ipcraft/pkg/document"
	"github.com/bleviet/ipcraft/pkg/errors"
	"github.com/bleviet/ipcraft/pkg/session"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	statusErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	statusOKStyle     = lipgloss.NewStyle().Foreground(colorGreen)
)

// editLevel is the hierarchy level the cursor is on.
type editLevel int

const (
	levelBlocks editLevel = iota
	levelRegisters
	levelFields
)

// editorModel is the bubbletea model for the interactive address-map editor.
type editorModel struct {
	doc      *document.Document
	mapIndex int
	m        amap.MemoryMap

	level    editLevel
	blockIdx int
	regIdx   int
	fieldIdx int

	undo []amap.MemoryMap

	status    string
	statusErr bool
	dirty     bool
	saved     bool

	height int
	offset int
}

// newEditorModel creates an editor over a working copy of the map.
func newEditorModel(doc *document.Document, m amap.MemoryMap, mapIndex int) editorModel {
	return editorModel{
		doc:      doc,
		mapIndex: mapIndex,
		m:        m,
		height:   15,
	}
}

// restoreCursor moves the cursor to a previous session's position, as far
// as the names still resolve.
func (m *editorModel) restoreCursor(cur session.Cursor) {
	if cur.Block == "" {
		return
	}
	bi := blockIndex(m.m.Blocks, cur.Block)
	if bi < 0 {
		return
	}
	m.blockIdx = bi
	if cur.Register == "" {
		return
	}
	ri := registerIndex(m.m.Blocks[bi].Registers, cur.Register)
	if ri < 0 {
		return
	}
	m.level = levelRegisters
	m.regIdx = ri
	if cur.Field == "" {
		return
	}
	fi := fieldIndex(m.m.Blocks[bi].Registers[ri].Fields, cur.Field)
	if fi < 0 {
		return
	}
	m.level = levelFields
	m.fieldIdx = fi
}

// cursorPosition reports the current selection for session persistence.
func (m editorModel) cursorPosition() session.Cursor {
	cur := session.Cursor{Map: m.m.Name}
	if m.blockIdx < len(m.m.Blocks) {
		cur.Block = m.m.Blocks[m.blockIdx].Name
		if m.level >= levelRegisters {
			blk := m.m.Blocks[m.blockIdx]
			if m.regIdx < len(blk.Registers) {
				cur.Register = blk.Registers[m.regIdx].Name
				if m.level == levelFields && m.fieldIdx < len(blk.Registers[m.regIdx].Fields) {
					cur.Field = blk.Registers[m.regIdx].Fields[m.fieldIdx].Name
				}
			}
		}
	}
	return cur
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "right", "l", "enter":
			m.descend()
		case "left", "h", "esc":
			m.ascend()
		case "a":
			m.insert(layout.After)
		case "A":
			m.insert(layout.Before)
		case "K":
			m.moveItem(true)
		case "J":
			m.moveItem(false)
		case "u":
			m.undoLast()
		case "s":
			m.save()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	m.clampCursor()
	return m, nil
}

// =============================================================================
// Navigation
// =============================================================================

func (m *editorModel) listLen() int {
	switch m.level {
	case levelBlocks:
		return len(m.m.Blocks)
	case levelRegisters:
		return len(m.currentBlock().Registers)
	default:
		return len(m.currentRegister().Fields)
	}
}

func (m *editorModel) cursor() *int {
	switch m.level {
	case levelBlocks:
		return &m.blockIdx
	case levelRegisters:
		return &m.regIdx
	default:
		return &m.fieldIdx
	}
}

func (m *editorModel) currentBlock() amap.AddressBlock {
	if m.blockIdx < len(m.m.Blocks) {
		return m.m.Blocks[m.blockIdx]
	}
	return amap.AddressBlock{}
}

func (m *editorModel) currentRegister() amap.Register {
	blk := m.currentBlock()
	if m.regIdx < len(blk.Registers) {
		return blk.Registers[m.regIdx]
	}
	return amap.Register{}
}

func (m *editorModel) moveCursor(delta int) {
	c := m.cursor()
	next := *c + delta
	if next >= 0 && next < m.listLen() {
		*c = next
	}
}

func (m *editorModel) descend() {
	switch m.level {
	case levelBlocks:
		if len(m.currentBlock().Registers) > 0 {
			m.level = levelRegisters
			m.regIdx = 0
		}
	case levelRegisters:
		if len(m.currentRegister().Fields) > 0 {
			m.level = levelFields
			m.fieldIdx = 0
		}
	}
	m.offset = 0
}

func (m *editorModel) ascend() {
	switch m.level {
	case levelFields:
		m.level = levelRegisters
	case levelRegisters:
		m.level = levelBlocks
	}
	m.offset = 0
}

func (m *editorModel) clampCursor() {
	n := m.listLen()
	c := m.cursor()
	if *c >= n {
		*c = n - 1
	}
	if *c < 0 {
		*c = 0
	}
	if *c < m.offset {
		m.offset = *c
	}
	if *c >= m.offset+m.height {
		m.offset = *c - m.height + 1
	}
}

// =============================================================================
// Editing
// =============================================================================

// snapshot pushes the current map onto the undo stack.
func (m *editorModel) snapshot() {
	m.undo = append(m.undo, m.m)
}

func (m *editorModel) undoLast() {
	if len(m.undo) == 0 {
		m.setStatus("nothing to undo", false)
		return
	}
	m.m = m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.dirty = true
	m.setStatus("undid last change", false)
}

func (m *editorModel) insert(dir layout.Direction) {
	m.snapshot()

	var err error
	var name string
	switch m.level {
	case levelBlocks:
		var blocks []amap.AddressBlock
		var pos int
		blocks, pos, err = layout.InsertBlock(m.m.Blocks, m.blockIdx, dir)
		if err == nil {
			m.m.Blocks = blocks
			m.blockIdx = pos
			name = blocks[pos].Name
		}
	case levelRegisters:
		var regs []amap.Register
		var pos int
		regs, pos, err = layout.InsertRegister(m.currentBlock().Registers, m.regIdx, dir)
		if err == nil {
			m.m.Blocks[m.blockIdx].Registers = regs
			m.regIdx = pos
			name = regs[pos].Name
		}
	case levelFields:
		reg := m.currentRegister()
		var fields []amap.BitField
		var pos int
		fields, pos, err = layout.InsertField(reg.Fields, m.fieldIdx, dir, reg.BitWidth())
		if err == nil {
			m.m.Blocks[m.blockIdx].Registers[m.regIdx].Fields = fields
			m.fieldIdx = pos
			name = fields[pos].Name
		}
	}

	if err != nil {
		m.undo = m.undo[:len(m.undo)-1]
		m.setStatus(errors.UserMessage(err), true)
		return
	}
	m.dirty = true
	m.setStatus(fmt.Sprintf("inserted %s %s", dir, name), false)
}

func (m *editorModel) moveItem(up bool) {
	m.snapshot()

	var pos, old int
	switch m.level {
	case levelBlocks:
		old = m.blockIdx
		m.m.Blocks, pos = moveItem(layout.Blocks, m.m.Blocks, m.blockIdx, up)
		m.blockIdx = pos
	case levelRegisters:
		old = m.regIdx
		m.m.Blocks[m.blockIdx].Registers, pos = moveItem(layout.Registers, m.currentBlock().Registers, m.regIdx, up)
		m.regIdx = pos
	case levelFields:
		old = m.fieldIdx
		m.m.Blocks[m.blockIdx].Registers[m.regIdx].Fields, pos = moveItem(layout.Fields, m.currentRegister().Fields, m.fieldIdx, up)
		m.fieldIdx = pos
	}

	if pos == old {
		m.undo = m.undo[:len(m.undo)-1]
		m.setStatus("already at the "+edgeName(up), false)
		return
	}
	m.dirty = true
	m.setStatus("moved item", false)
}

func (m *editorModel) save() {
	if err := m.doc.SetBlocks(m.mapIndex, m.m.Blocks); err != nil {
		m.setStatus(errors.UserMessage(err), true)
		return
	}
	if err := m.doc.Save(m.doc.Path); err != nil {
		m.setStatus(errors.UserMessage(err), true)
		return
	}
	m.dirty = false
	m.saved = true
	m.setStatus("saved", false)
}

func (m *editorModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) View() string {
	var b strings.Builder

	title := m.m.Name
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.breadcrumb()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ level  a/A insert after/before  J/K move  u undo  s save  q quit"))
	b.WriteString("\n\n")

	lines := m.listLines()
	end := m.offset + m.height
	if end > len(lines) {
		end = len(lines)
	}
	for i := m.offset; i < end; i++ {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursorValue() {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(lines[i]) + "\n")
	}
	if len(lines) == 0 {
		b.WriteString(listDimStyle.Render("  (empty, press a to insert)") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(statusErrorStyle.Render(iconError + " " + m.status))
		} else {
			b.WriteString(statusOKStyle.Render(iconSuccess + " " + m.status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m editorModel) cursorValue() int {
	switch m.level {
	case levelBlocks:
		return m.blockIdx
	case levelRegisters:
		return m.regIdx
	default:
		return m.fieldIdx
	}
}

func (m editorModel) breadcrumb() string {
	switch m.level {
	case levelBlocks:
		return "blocks"
	case levelRegisters:
		return "blocks / " + m.currentBlock().Name
	default:
		return "blocks / " + m.currentBlock().Name + " / " + m.currentRegister().Name
	}
}

func (m editorModel) listLines() []string {
	switch m.level {
	case levelBlocks:
		lines := make([]string, len(m.m.Blocks))
		for i, blk := range m.m.Blocks {
			lines[i] = fmt.Sprintf("%-20s base 0x%08X  size 0x%X  %d registers",
				blk.Name, blk.Base, blk.Footprint(), len(blk.Registers))
		}
		return lines
	case levelRegisters:
		regs := m.currentBlock().Registers
		lines := make([]string, len(regs))
		for i, reg := range regs {
			name := reg.Name
			if reg.IsArray() {
				name = fmt.Sprintf("%s[%d]", reg.Name, reg.Count)
			}
			lines[i] = fmt.Sprintf("%-20s offset 0x%02X  %d bits  %d fields",
				name, reg.Offset, reg.BitWidth(), len(reg.Fields))
		}
		return lines
	default:
		fields := m.currentRegister().Fields
		lines := make([]string, len(fields))
		for i, f := range fields {
			lines[i] = fmt.Sprintf("%-20s bits [%d:%d]  %s", f.Name, f.MSB(), f.Offset, f.Access)
		}
		return lines
	}
}
