package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/phoneinv/internal/model"
)

// DefaultFileName is the workbook written when no output path is given.
const DefaultFileName = "serials_and_macs.xlsx"

// DefaultPath returns DefaultFileName inside the directory of the running
// executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: failed to locate executable: %w", ErrExport, err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultFileName), nil
}

// Export writes inv to path in the given format, replacing any existing file.
// An empty inventory still produces a file with only the header.
func Export(inv *model.Inventory, path string, format Format) error {
	if inv == nil {
		inv = model.NewInventory()
	}
	entries := inv.Entries()

	var err error
	switch format {
	case FormatXLSX:
		err = writeEncoded(path, entries, encodeXLSX)
	case FormatCSV:
		err = writeEncoded(path, entries, encodeCSV)
	case FormatJSON:
		err = writeEncoded(path, entries, encodeJSON)
	case FormatMarkdown:
		err = writeEncoded(path, entries, encodeMarkdown)
	case FormatSQLite:
		err = writeSQLite(path, entries)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExport, path, err)
	}
	return nil
}

// Load reads an inventory previously written by Export. Markdown files
// cannot be loaded.
func Load(path string, format Format) (*model.Inventory, error) {
	var (
		entries []model.Entry
		err     error
	)

	switch format {
	case FormatXLSX:
		entries, err = loadXLSX(path)
	case FormatCSV:
		entries, err = readFile(path, decodeCSV)
	case FormatJSON:
		entries, err = readFile(path, decodeJSON)
	case FormatSQLite:
		entries, err = loadSQLite(path)
	default:
		err = fmt.Errorf("%w: cannot load %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExport, path, err)
	}

	inv := model.NewInventory()
	for _, e := range entries {
		inv.Put(model.DeviceRecord{Host: e.Host, MAC: e.MAC, Serial: e.Serial})
	}
	return inv, nil
}

// writeEncoded encodes entries in memory and writes them atomically.
func writeEncoded(path string, entries []model.Entry, encode func([]model.Entry) ([]byte, error)) error {
	data, err := encode(entries)
	if err != nil {
		return err
	}
	return WriteAtomic(path, data)
}

// readFile reads path and decodes it.
func readFile(path string, decode func([]byte) ([]model.Entry, error)) ([]model.Entry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is chosen by the user
	if err != nil {
		return nil, err
	}
	return decode(data)
}
