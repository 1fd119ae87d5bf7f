package amap

import "testing"

func TestNextName(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		existing []string
		want     string
	}{
		{"empty collection", "field", nil, "field1"},
		{"no matching names", "field", []string{"ctrl", "status"}, "field1"},
		{"continues after max suffix", "field", []string{"field1", "field3"}, "field4"},
		{"ignores gaps", "reg", []string{"reg7"}, "reg8"},
		{"mixed names", "reg", []string{"ctrl", "reg2", "reg10", "regX"}, "reg11"},
		{"prefix is not a suffix match", "block", []string{"myblock5"}, "block1"},
		{"suffix must be all digits", "block", []string{"block5a"}, "block1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextName(tt.prefix, tt.existing); got != tt.want {
				t.Errorf("NextName(%q, %v) = %q, want %q", tt.prefix, tt.existing, got, tt.want)
			}
		})
	}
}

func TestNameAccessors(t *testing.T) {
	fields := []BitField{{Name: "en"}, {Name: "irq"}}
	if got := FieldNames(fields); got[0] != "en" || got[1] != "irq" {
		t.Errorf("FieldNames() = %v", got)
	}

	regs := []Register{{Name: "ctrl"}}
	if got := RegisterNames(regs); len(got) != 1 || got[0] != "ctrl" {
		t.Errorf("RegisterNames() = %v", got)
	}

	blocks := []AddressBlock{{Name: "uart0"}, {Name: "uart1"}}
	if got := BlockNames(blocks); len(got) != 2 || got[1] != "uart1" {
		t.Errorf("BlockNames() = %v", got)
	}
}
