package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an inventory file format.
type Format string

const (
	// FormatXLSX is an Excel workbook.
	FormatXLSX Format = "xlsx"
	// FormatCSV is comma separated values.
	FormatCSV Format = "csv"
	// FormatJSON is a JSON document with a devices array.
	FormatJSON Format = "json"
	// FormatMarkdown is a Markdown table. It cannot be loaded back.
	FormatMarkdown Format = "md"
	// FormatSQLite is a single-file SQLite database.
	FormatSQLite Format = "sqlite"
)

// Formats lists every supported format name.
var Formats = []Format{FormatXLSX, FormatCSV, FormatJSON, FormatMarkdown, FormatSQLite}

// ParseFormat converts a format name such as "xlsx" or "markdown" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: xlsx, csv, json, md, sqlite)", ErrUnsupportedFormat, name)
	}
}

// ResolveFormat returns the format named by explicit, or the one implied by
// the extension of path when explicit is empty. A path without an extension
// is written as xlsx.
func ResolveFormat(path, explicit string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}

	ext := filepath.Ext(path)
	if ext == "" {
		return FormatXLSX, nil
	}
	return ParseFormat(ext)
}
