// Package source loads record collections from files and standard input.
package source

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bytedance/sonic"
	"github.com/go-faster/errors"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/util"
)

// Format of a record file.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatTOML  Format = "toml"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, bool) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "json":
		return FormatJSON, true
	case "jsonl", "ndjson":
		return FormatJSONL, true
	case "toml":
		return FormatTOML, true
	}
	return "", false
}

// wrapperKeys are the envelope keys list endpoints put their items under,
// in lookup order.
var wrapperKeys = []string{"results", "data", "items", "records"}

// LoadFile reads records from path, picking the decoder from the extension.
// "-" reads JSON from standard input.
func LoadFile(path string) ([]record.Record, error) {
	if path == "-" {
		return Load(os.Stdin, FormatJSON)
	}
	format, ok := ParseFormat(filepath.Ext(path))
	if !ok {
		return nil, util.UnsupportedFormatError(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open record file")
	}
	defer f.Close()

	records, err := Load(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return records, nil
}

// Load decodes records in the given format. Input that is not valid UTF-8
// is read as Latin-1.
func Load(r io.Reader, format Format) ([]record.Record, error) {
	switch format {
	case FormatJSONL:
		return loadJSONLines(r)
	case FormatJSON, FormatTOML:
	default:
		return nil, util.UnsupportedFormatError(string(format))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	data = util.ToValidUTF8Bytes(data)
	if format == FormatTOML {
		return decodeTOML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) ([]record.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []record.Record{}, nil
	}
	var v any
	if err := sonic.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	return unwrap(v)
}

func decodeTOML(data []byte) ([]record.Record, error) {
	var v map[string]any
	if _, err := toml.Decode(string(data), &v); err != nil {
		return nil, errors.Wrap(err, "decode toml")
	}
	if len(v) == 0 {
		return []record.Record{}, nil
	}
	return unwrap(v)
}

// unwrap accepts a bare list or an envelope object holding one.
func unwrap(v any) ([]record.Record, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		if _, isList := v.([]any); !isList {
			return nil, util.ErrNoRecords
		}
		return record.Collection(v), nil
	}
	for _, key := range wrapperKeys {
		if list, found := obj[key]; found {
			return record.Collection(list), nil
		}
	}
	return nil, util.ErrNoRecords
}

func loadJSONLines(r io.Reader) ([]record.Record, error) {
	records := []record.Record{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var m map[string]any
		if err := sonic.Unmarshal(util.ToValidUTF8Bytes(text), &m); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if m != nil {
			records = append(records, record.Record(m))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read")
	}
	return records, nil
}
