// Package hierarchy renders the map → block → register containment tree as
// a node-link diagram via Graphviz.
package hierarchy

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/bleviet/ipcraft/pkg/amap"
)

// Options configures hierarchy rendering.
type Options struct {
	// Detailed includes offsets and footprints in node labels.
	// When false, only names are shown.
	Detailed bool

	// Registers includes register nodes under each block. Large maps are
	// easier to read with blocks only.
	Registers bool
}

// ToDOT converts a memory map to Graphviz DOT format. The resulting DOT
// string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(m amap.MemoryMap, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	mapID := "map/" + m.Name
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightyellow];\n", mapID, m.Name)

	for _, blk := range m.Blocks {
		blkID := mapID + "/" + blk.Name
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", blkID, blockLabel(blk, opts.Detailed))
		fmt.Fprintf(&buf, "  %q -> %q;\n", mapID, blkID)

		if !opts.Registers {
			continue
		}
		for _, reg := range blk.Registers {
			regID := blkID + "/" + reg.Name
			fmt.Fprintf(&buf, "  %q [label=%q];\n", regID, registerLabel(reg, opts.Detailed))
			fmt.Fprintf(&buf, "  %q -> %q;\n", blkID, regID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func blockLabel(b amap.AddressBlock, detailed bool) string {
	if !detailed {
		return b.Name
	}
	return fmt.Sprintf("%s\nbase: 0x%X\nsize: 0x%X", b.Name, b.Base, b.Footprint())
}

func registerLabel(r amap.Register, detailed bool) string {
	if !detailed {
		return r.Name
	}
	label := fmt.Sprintf("%s\noffset: 0x%X", r.Name, r.Offset)
	if r.IsArray() {
		label += fmt.Sprintf("\narray: %d x %d", r.Count, r.Stride)
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG, nil)
}

func render(ctx context.Context, dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg element so the viewBox starts at
// the origin and width/height are plain pixel values.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
