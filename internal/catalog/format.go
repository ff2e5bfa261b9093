package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatYAML
)

// FileFormat is the encoding of a catalog or level file, derived from its name:
// .json, .yaml or .yml, optionally followed by .zst for zstd compression.
type FileFormat struct {
	Format     Format
	Compressed bool
}

func DetectFormat(path string) (FileFormat, error) {
	name := strings.ToLower(filepath.Base(path))
	var ff FileFormat
	if trimmed, ok := strings.CutSuffix(name, ".zst"); ok {
		ff.Compressed = true
		name = trimmed
	}
	switch filepath.Ext(name) {
	case ".json":
		ff.Format = FormatJSON
	case ".yaml", ".yml":
		ff.Format = FormatYAML
	default:
		return FileFormat{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return ff, nil
}

// readFile decodes the document at path into v according to its format.
func readFile(path string, v any) (FileFormat, error) {
	ff, err := DetectFormat(path)
	if err != nil {
		return ff, err
	}
	f, err := os.Open(path)
	if err != nil {
		return ff, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if ff.Compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return ff, fmt.Errorf("open zstd stream %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	switch ff.Format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(v)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(v)
	}
	if err != nil {
		return ff, fmt.Errorf("%w: %s: %w", ErrMalformedFile, path, err)
	}
	return ff, nil
}

// writeFile encodes v to path according to its format.
func writeFile(path string, v any) (err error) {
	ff, err := DetectFormat(path)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	if ff.Compressed {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		defer func() {
			if cerr := enc.Close(); err == nil {
				err = cerr
			}
		}()
		w = enc
	}

	switch ff.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}
