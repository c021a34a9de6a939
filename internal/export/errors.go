package export

import "errors"

var (
	// ErrExport is wrapped by every failure to write or read an inventory file.
	ErrExport = errors.New("export failed")

	// ErrUnsupportedFormat is returned for an unknown format name or extension.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
