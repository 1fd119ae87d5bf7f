// Package strip renders registers and address blocks as horizontal strip
// diagrams in SVG. A register strip lays fields out MSB to LSB across the
// register's bit width; a block strip lays registers out by byte offset.
// Gaps between items render as hatched reserved cells.
package strip

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/bleviet/ipcraft/pkg/amap"
)

const (
	defaultWidth = 800.0
	stripHeight  = 56.0
	labelHeight  = 22.0
	tickHeight   = 16.0
	marginX      = 10.0
	marginY      = 8.0
)

// Option configures a strip renderer.
type Option func(*renderer)

type renderer struct {
	width    float64
	title    string
	showHex  bool
	reserved bool
}

// WithWidth sets the drawing width in pixels.
func WithWidth(w float64) Option {
	return func(r *renderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// WithTitle draws a title above the strip.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

// WithoutReserved hides hatched cells for unoccupied ranges.
func WithoutReserved() Option { return func(r *renderer) { r.reserved = false } }

func newRenderer(opts ...Option) renderer {
	r := renderer{width: defaultWidth, showHex: true, reserved: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// cell is one drawn span of the strip in model units (bits or bytes).
type cell struct {
	lo, hi   int64 // inclusive bounds
	label    string
	sublabel string
	reserved bool
}

// RenderRegister renders a register's bit fields as an SVG strip. The strip
// runs MSB on the left to bit 0 on the right, the usual datasheet layout.
func RenderRegister(reg amap.Register, opts ...Option) []byte {
	r := newRenderer(opts...)
	if r.title == "" {
		r.title = reg.Name
	}

	bits := reg.BitWidth()
	fields := slices.Clone(reg.Fields)
	slices.SortFunc(fields, func(a, b amap.BitField) int {
		return cmp.Compare(b.Offset, a.Offset) // MSB first
	})

	cells := make([]cell, 0, len(fields)*2)
	next := bits - 1
	for _, f := range fields {
		msb := f.MSB()
		if msb < next {
			cells = append(cells, cell{lo: msb + 1, hi: next, reserved: true})
		}
		cells = append(cells, cell{
			lo:       f.Offset,
			hi:       msb,
			label:    f.Name,
			sublabel: f.Access,
		})
		next = f.Offset - 1
	}
	if next >= 0 {
		cells = append(cells, cell{lo: 0, hi: next, reserved: true})
	}

	return r.draw(cells, bits, true)
}

// RenderBlock renders an address block's registers as an SVG strip ordered
// by byte offset.
func RenderBlock(blk amap.AddressBlock, opts ...Option) []byte {
	r := newRenderer(opts...)
	if r.title == "" {
		r.title = blk.Name
	}

	regs := slices.Clone(blk.Registers)
	slices.SortStableFunc(regs, func(a, b amap.Register) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	span := blk.Footprint()
	cells := make([]cell, 0, len(regs)*2)
	var next int64
	for _, reg := range regs {
		if reg.Offset > next {
			cells = append(cells, cell{lo: next, hi: reg.Offset - 1, reserved: true})
		}
		sub := fmt.Sprintf("0x%02X", reg.Offset)
		if reg.IsArray() {
			sub = fmt.Sprintf("0x%02X [%d]", reg.Offset, reg.Count)
		}
		cells = append(cells, cell{
			lo:       reg.Offset,
			hi:       reg.Offset + reg.Footprint() - 1,
			label:    reg.Name,
			sublabel: sub,
		})
		next = reg.Offset + reg.Footprint()
	}
	if next < span {
		cells = append(cells, cell{lo: next, hi: span - 1, reserved: true})
	}

	return r.draw(cells, span, false)
}

// draw emits the SVG. Cells arrive in display order, left to right. For bit
// strips higher units sit on the left, for byte strips lower offsets do.
func (r renderer) draw(cells []cell, span int64, bitOrder bool) []byte {
	if span <= 0 {
		span = 1
	}
	innerW := r.width - 2*marginX
	unit := innerW / float64(span)
	top := marginY
	if r.title != "" {
		top += labelHeight
	}
	totalH := top + stripHeight + tickHeight + marginY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, totalH, r.width, totalH)
	buf.WriteString(stripDefs)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" class="title">%s</text>`+"\n",
			marginX, marginY+14, escape(r.title))
	}

	for _, c := range cells {
		if c.reserved && !r.reserved {
			continue
		}
		x, w := r.cellGeom(c, span, unit, bitOrder)
		cls := "cell"
		if c.reserved {
			cls = "cell reserved"
		}
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" class="%s"/>`+"\n",
			x, top, w, stripHeight, cls)
		if !c.reserved {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" class="label">%s</text>`+"\n",
				x+w/2, top+stripHeight/2-2, escape(c.label))
			if c.sublabel != "" {
				fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" class="sublabel">%s</text>`+"\n",
					x+w/2, top+stripHeight/2+14, escape(c.sublabel))
			}
		}

		// Boundary ticks under each cell edge.
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" class="tick">%d</text>`+"\n",
			x+2, top+stripHeight+12, tickValue(c, bitOrder, true))
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" class="tick" text-anchor="end">%d</text>`+"\n",
			x+w-2, top+stripHeight+12, tickValue(c, bitOrder, false))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// cellGeom maps a cell's model range onto pixel coordinates. Bit strips
// mirror the axis so the MSB lands on the left.
func (r renderer) cellGeom(c cell, span int64, unit float64, bitOrder bool) (x, w float64) {
	w = float64(c.hi-c.lo+1) * unit
	if bitOrder {
		x = marginX + float64(span-1-c.hi)*unit
	} else {
		x = marginX + float64(c.lo)*unit
	}
	return x, w
}

func tickValue(c cell, bitOrder, left bool) int64 {
	if bitOrder == left {
		return c.hi
	}
	return c.lo
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

const stripDefs = `  <defs>
    <pattern id="hatch" width="6" height="6" patternUnits="userSpaceOnUse" patternTransform="rotate(45)">
      <line x1="0" y1="0" x2="0" y2="6" stroke="#c0c0c0" stroke-width="1"/>
    </pattern>
  </defs>
  <style>
    .title { font: bold 14px sans-serif; fill: #333; }
    .cell { fill: #e8f0fe; stroke: #333; stroke-width: 1; }
    .cell.reserved { fill: url(#hatch); }
    .label { font: 12px sans-serif; fill: #111; text-anchor: middle; }
    .sublabel { font: 10px monospace; fill: #666; text-anchor: middle; }
    .tick { font: 9px monospace; fill: #666; }
  </style>
`
