package pipeline

import (
	"context"
	"fmt"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/errors"
	"github.com/bleviet/ipcraft/pkg/export"
	"github.com/bleviet/ipcraft/pkg/render/hierarchy"
	"github.com/bleviet/ipcraft/pkg/render/strip"
)

// renderArtifacts produces every requested format for the selected target.
func renderArtifacts(ctx context.Context, m amap.MemoryMap, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderArtifact(ctx, m, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}

func renderArtifact(ctx context.Context, m amap.MemoryMap, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return export.WriteXLSX(m)
	case FormatPDF:
		return export.WritePDF(m)
	}

	switch opts.View {
	case ViewStrip:
		return renderStrip(m, opts)
	case ViewHierarchy:
		return renderHierarchy(ctx, m, format, opts)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "no renderer for view %q format %q", opts.View, format)
}

func renderStrip(m amap.MemoryMap, opts Options) ([]byte, error) {
	blk, ok := findBlock(m, opts.Block)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "address block %q not found in map %q", opts.Block, m.Name)
	}

	if opts.Register == "" {
		return strip.RenderBlock(blk, strip.WithWidth(opts.Width)), nil
	}

	for _, reg := range blk.Registers {
		if reg.Name == opts.Register {
			return strip.RenderRegister(reg, strip.WithWidth(opts.Width)), nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "register %q not found in block %q", opts.Register, blk.Name)
}

func renderHierarchy(ctx context.Context, m amap.MemoryMap, format string, opts Options) ([]byte, error) {
	dot := hierarchy.ToDOT(m, hierarchy.Options{
		Detailed:  opts.Detailed,
		Registers: true,
	})

	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return hierarchy.RenderSVG(ctx, dot)
	case FormatPNG:
		return hierarchy.RenderPNG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "hierarchy view cannot render %q", format)
}

func findBlock(m amap.MemoryMap, name string) (amap.AddressBlock, bool) {
	for _, blk := range m.Blocks {
		if blk.Name == name {
			return blk, true
		}
	}
	return amap.AddressBlock{}, false
}
