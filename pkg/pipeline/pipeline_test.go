package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/cache"
)

const testDoc = `{
  "name": "soc",
  "memoryMaps": [
    {
      "name": "main",
      "addressBlocks": [
        {
          "name": "uart0",
          "baseAddress": "0x40001000",
          "registers": [
            {
              "name": "ctrl",
              "offset": 0,
              "size": 32,
              "fields": [
                {"name": "enable", "bitOffset": 0, "bitWidth": 1},
                {"name": "mode", "bitOffset": 4, "bitWidth": 4}
              ]
            },
            {"name": "data", "offset": 4, "size": 32}
          ]
        },
        {"name": "gpio", "baseAddress": "0x40002000", "size": 256}
      ]
    }
  ]
}`

func writeTestDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "soc.json")
	if err := os.WriteFile(path, []byte(testDoc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestExecuteStrip(t *testing.T) {
	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Path:  writeTestDoc(t),
		Block: "uart0",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.HasPrefix(string(svg), "<svg") {
		t.Fatal("expected an SVG artifact")
	}
	if result.DocHash == "" {
		t.Error("DocHash should be set")
	}
	if result.Stats.BlockCount != 2 || result.Stats.RegisterCount != 2 {
		t.Errorf("Stats = %+v, want 2 blocks and 2 registers", result.Stats)
	}
	if len(result.Violations) != 0 {
		t.Errorf("valid document should have no violations, got %v", result.Violations)
	}
}

func TestExecuteRegisterStrip(t *testing.T) {
	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Path:     writeTestDoc(t),
		Block:    "uart0",
		Register: "ctrl",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "enable") {
		t.Error("register strip should include field names")
	}
}

func TestExecuteHierarchyDOT(t *testing.T) {
	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Path:    writeTestDoc(t),
		View:    ViewHierarchy,
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	dot := string(result.Artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "digraph") || !strings.Contains(dot, "uart0") {
		t.Errorf("unexpected DOT output: %.80s", dot)
	}
}

func TestExecuteExports(t *testing.T) {
	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Path:    writeTestDoc(t),
		Block:   "uart0",
		Formats: []string{FormatXLSX, FormatPDF},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(result.Artifacts[FormatXLSX]) == 0 {
		t.Error("missing xlsx artifact")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatPDF]), "%PDF-") {
		t.Error("missing or malformed pdf artifact")
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, quietLogger())
	defer runner.Close()

	opts := Options{Path: writeTestDoc(t), Block: "uart0"}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), Options{Path: opts.Path, Block: opts.Block})
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the rendered one")
	}
}

func TestExecuteUnknownBlock(t *testing.T) {
	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Path:  writeTestDoc(t),
		Block: "missing",
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestValidateReportsOverlaps(t *testing.T) {
	m := amap.MemoryMap{
		Name: "broken",
		Blocks: []amap.AddressBlock{
			{
				Name: "blk",
				Registers: []amap.Register{
					{Name: "a", Offset: 0, BitSize: 32},
					{Name: "b", Offset: 2, BitSize: 32}, // overlaps a
				},
			},
		},
	}
	violations := Validate(context.Background(), m)
	if len(violations) == 0 {
		t.Fatal("expected overlap violation")
	}
	if !strings.Contains(violations[0].Error(), "overlaps") {
		t.Errorf("unexpected violation: %v", violations[0])
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"missing path", Options{}, "path is required"},
		{"bad format", Options{Path: "x.json", Formats: []string{"gif"}}, "invalid format"},
		{"bad view", Options{Path: "x.json", View: "spiral"}, "invalid view"},
		{"strip needs block", Options{Path: "x.json"}, "block is required"},
		{"png needs hierarchy", Options{Path: "x.json", Block: "b", Formats: []string{"png"}}, "not available"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
