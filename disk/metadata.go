package disk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-mbutil/mb"
)

const (
	MetadataFile = "metadata.json"
	LayerFile    = "layer.json"
)

var ErrMissingMetadata = errors.New("mbutil: metadata.json not found")

// readMetadata loads the metadata descriptor of the tile tree at dirPath.
// String values are kept verbatim, other values are kept as compact JSON text.
func readMetadata(dirPath string) (map[string]string, error) {
	filePath := filepath.Join(dirPath, MetadataFile)
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingMetadata, filePath)
	}
	if err != nil {
		return nil, err
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	metadata := make(map[string]string, len(values))
	for name, raw := range values {
		var value string
		if err := json.Unmarshal(raw, &value); err == nil {
			metadata[name] = value
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", filePath, name, err)
		}
		metadata[name] = compact.String()
	}

	return metadata, nil
}

func encodeJSON(w io.Writer, value any, indent string) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	return encoder.Encode(value)
}

func writeJSON(filePath string, value any, indent string) error {
	var buffer bytes.Buffer
	if err := encodeJSON(&buffer, value, indent); err != nil {
		return err
	}
	return os.WriteFile(filePath, buffer.Bytes(), 0644)
}

// writeMetadata writes metadata.json and, if a formatter is set, layer.json.
func writeMetadata(dirPath string, metadata map[string]string) error {
	if err := writeJSON(filepath.Join(dirPath, MetadataFile), metadata, "    "); err != nil {
		return err
	}

	formatter := metadata["formatter"]
	if formatter == "" {
		return nil
	}
	return writeJSON(filepath.Join(dirPath, LayerFile), map[string]string{"formatter": formatter}, "")
}

// DumpMetadata writes the metadata of the MBTiles file as indented JSON to w.
func DumpMetadata(archivePath string, w io.Writer, opts ...Option) error {
	config := newConfig(opts)

	config.Logger.Debug("exporting MBTiles metadata", "src", archivePath)
	reader, err := mb.NewReader(archivePath, mb.WithLogger(config.Logger))
	if err != nil {
		return err
	}
	defer reader.Close()

	metadata, err := reader.ReadMetadata()
	if err != nil {
		return err
	}

	return encodeJSON(w, metadata, "  ")
}
