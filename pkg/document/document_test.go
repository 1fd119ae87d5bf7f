package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bleviet/ipcraft/pkg/amap"
)

const sampleJSON = `{
  "name": "soc",
  "vendor": "acme",
  "memoryMaps": [
    {
      "name": "apb",
      "addressBlocks": [
        {
          "name": "uart0",
          "baseAddress": "0x0",
          "size": "0x1000",
          "description": "UART controller",
          "registers": [
            {
              "name": "ctrl",
              "offset": 0,
              "size": 32,
              "fields": [
                {"name": "en", "bitOffset": 0, "bitWidth": 1},
                {"name": "mode", "bitOffset": 4, "bitWidth": "garbage"}
              ]
            },
            {"name": "buf", "offset": 4, "count": 4, "stride": 4}
          ]
        },
        {"name": "ram", "baseAddress": 4096, "range": "0x2000"}
      ]
    }
  ]
}`

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "soc", doc.Name)
	require.Len(t, doc.Maps, 1)

	m := doc.Maps[0]
	assert.Equal(t, "apb", m.Name)
	require.Len(t, m.Blocks, 2)

	uart := m.Blocks[0]
	assert.Equal(t, int64(0), uart.Base)
	assert.Equal(t, int64(0x1000), uart.Size, "hex string size decodes")
	require.Len(t, uart.Registers, 2)

	ctrl := uart.Registers[0]
	assert.Equal(t, int64(32), ctrl.BitSize)
	require.Len(t, ctrl.Fields, 2)
	assert.Equal(t, int64(1), ctrl.Fields[0].Footprint())
	// Malformed bitWidth resolves to the default, never an error.
	assert.Equal(t, int64(1), ctrl.Fields[1].Footprint())

	buf := uart.Registers[1]
	assert.True(t, buf.IsArray())
	assert.Equal(t, int64(16), buf.Footprint())

	ram := m.Blocks[1]
	assert.Equal(t, int64(4096), ram.Base)
	assert.Equal(t, int64(0x2000), ram.Size, "range is an alias for size")
	assert.Equal(t, "range", ram.SizeKey)
}

func TestParseJSONMalformedSizesUseDefaults(t *testing.T) {
	data := `{
	  "memoryMaps": [{
	    "name": "m",
	    "addressBlocks": [{
	      "name": "b",
	      "baseAddress": {"nested": true},
	      "registers": [{"name": "r", "offset": [], "size": null}]
	    }]
	  }]
	}`

	doc, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err, "lenient decoding must not fail on malformed records")

	b := doc.Maps[0].Blocks[0]
	assert.Equal(t, int64(0), b.Base)
	r := b.Registers[0]
	assert.Equal(t, int64(0), r.Offset)
	assert.Equal(t, int64(4), r.Footprint(), "unspecified register size defaults to 32 bits")
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{nope"), FormatJSON)
	require.Error(t, err)
}

func TestSetRegistersPreservesOtherProperties(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	regs := doc.Maps[0].Blocks[0].Registers
	regs[1].Offset = 0x40
	require.NoError(t, doc.SetRegisters(0, 0, regs))

	// Re-parse the committed text: the layout edit landed and untouched
	// properties survived.
	data, err := doc.Bytes()
	require.NoError(t, err)
	again, err := Parse(data, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, int64(0x40), again.Maps[0].Blocks[0].Registers[1].Offset)
	assert.Equal(t, "UART controller", again.Maps[0].Blocks[0].Attrs["description"])
	assert.Equal(t, int64(0x1000), again.Maps[0].Blocks[0].Size)

	v, ok := again.Lookup("vendor")
	require.True(t, ok)
	assert.Equal(t, "acme", v.String())
}

func TestSetBlocksKeepsSizeKeySpelling(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	blocks := doc.Maps[0].Blocks
	blocks[1].Base = 0x3000
	require.NoError(t, doc.SetBlocks(0, blocks))

	// "ram" declared its size with the "range" key; a re-encode keeps
	// that spelling instead of renaming it to "size".
	v, ok := doc.Lookup("memoryMaps.0.addressBlocks.1.range")
	require.True(t, ok)
	assert.Equal(t, int64(0x2000), v.Int())
	_, ok = doc.Lookup("memoryMaps.0.addressBlocks.1.size")
	assert.False(t, ok)
}

func TestSetFields(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	fields := append(doc.Maps[0].Blocks[0].Registers[0].Fields, amap.BitField{
		Name: "field1", Offset: 8, Width: 2,
	})
	require.NoError(t, doc.SetFields(0, 0, 0, fields))

	r, ok := doc.Lookup("memoryMaps.0.addressBlocks.0.registers.0.fields.2.name")
	require.True(t, ok)
	assert.Equal(t, "field1", r.String())
}

func TestSetCollectionsOutOfRange(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	assert.Error(t, doc.SetBlocks(3, nil))
	assert.Error(t, doc.SetRegisters(0, 7, nil))
	assert.Error(t, doc.SetFields(0, 0, 9, nil))
}

func TestApplyAndLookup(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	require.NoError(t, doc.Apply("memoryMaps.0.addressBlocks.1.baseAddress", 0x2000))

	v, ok := doc.Lookup("memoryMaps.0.addressBlocks.1.baseAddress")
	require.True(t, ok)
	assert.Equal(t, int64(0x2000), v.Int())
}

const sampleTOML = `name = "soc"

[[memoryMaps]]
name = "apb"

[[memoryMaps.addressBlocks]]
name = "uart0"
baseAddress = 0
size = 4096
`

func TestParseTOML(t *testing.T) {
	doc, err := Parse([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "soc", doc.Name)
	require.Len(t, doc.Maps, 1)
	require.Len(t, doc.Maps[0].Blocks, 1)
	assert.Equal(t, int64(4096), doc.Maps[0].Blocks[0].Size)
}

func TestTOMLRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)

	data, err := doc.Bytes()
	require.NoError(t, err)

	again, err := Parse(data, FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, again.Name)
	require.Len(t, again.Maps, 1)
	assert.Equal(t, int64(4096), again.Maps[0].Blocks[0].Size)
}

func TestTOMLRejectsPathEdits(t *testing.T) {
	doc, err := Parse([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)

	assert.Error(t, doc.Apply("name", "x"))
	_, ok := doc.Lookup("name")
	assert.False(t, ok)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soc.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format)
	assert.Equal(t, path, doc.Path)

	require.NoError(t, doc.Apply("name", "soc2"))
	require.NoError(t, doc.Save(""))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "soc2", again.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatForPath("soc.toml"))
	assert.Equal(t, FormatTOML, FormatForPath("SOC.TOML"))
	assert.Equal(t, FormatJSON, FormatForPath("soc.json"))
	assert.Equal(t, FormatJSON, FormatForPath("soc"))
}
