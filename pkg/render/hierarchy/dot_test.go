package hierarchy

import (
	"strings"
	"testing"

	"github.com/bleviet/ipcraft/pkg/amap"
)

func testMap() amap.MemoryMap {
	return amap.MemoryMap{
		Name: "soc",
		Blocks: []amap.AddressBlock{
			{
				Name: "uart0",
				Base: 0x1000,
				Registers: []amap.Register{
					{Name: "data", Offset: 0x00, BitSize: 32},
					{Name: "ctrl", Offset: 0x04, BitSize: 32},
				},
			},
			{Name: "gpio", Base: 0x2000, Size: 0x100},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testMap(), Options{Registers: true})

	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Fatal("output is not a complete digraph")
	}
	for _, want := range []string{
		`"map/soc"`,
		`"map/soc" -> "map/soc/uart0"`,
		`"map/soc/uart0" -> "map/soc/uart0/data"`,
		`"map/soc" -> "map/soc/gpio"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

func TestToDOTBlocksOnly(t *testing.T) {
	dot := ToDOT(testMap(), Options{})
	if strings.Contains(dot, "data") || strings.Contains(dot, "ctrl") {
		t.Error("register nodes should be omitted without Options.Registers")
	}
	if !strings.Contains(dot, "uart0") {
		t.Error("block nodes should still be present")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testMap(), Options{Detailed: true, Registers: true})
	for _, want := range []string{"base: 0x1000", "offset: 0x4", "size: 0x100"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("dimensions not converted to pixels: %s", out)
	}
}
