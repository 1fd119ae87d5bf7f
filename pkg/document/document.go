package document

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/errors"
)

// Format identifies the on-disk encoding of a document.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
)

// String returns "json" or "toml".
func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "json"
}

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Document is a loaded address-map document: the decoded model plus, for
// JSON documents, the original text that path-based edits are applied to.
type Document struct {
	Path   string
	Format Format
	Name   string
	Maps   []amap.MemoryMap

	attrs map[string]any // top-level properties outside the canonical keys
	raw   []byte         // original JSON text; nil for TOML documents
}

// Load reads and decodes the document at path. The format is chosen from
// the file extension (.toml decodes as TOML, everything else as JSON).
func Load(path string) (*Document, error) {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	doc, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes document text in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	var root map[string]any
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &root); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse TOML document")
		}
	default:
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse JSON document")
		}
	}

	doc := decodeDocument(root)
	doc.Format = format
	if format == FormatJSON {
		doc.raw = bytes.Clone(data)
	}
	return doc, nil
}

// Bytes returns the current document text. For JSON documents this is the
// original text with all committed edits applied; for TOML documents the
// model is re-encoded.
func (d *Document) Bytes() ([]byte, error) {
	if d.Format == FormatJSON {
		return bytes.Clone(d.raw), nil
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(d.encode()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode TOML document")
	}
	return buf.Bytes(), nil
}

// Save writes the document back to its path (or the override, when given).
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.Path
	}
	if path == "" {
		return errors.New(errors.ErrCodeInvalidPath, "document has no path")
	}

	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// Map returns the memory map at index, guarding against out-of-range access.
func (d *Document) Map(i int) (amap.MemoryMap, bool) {
	if i < 0 || i >= len(d.Maps) {
		return amap.MemoryMap{}, false
	}
	return d.Maps[i], true
}
