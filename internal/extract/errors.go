package extract

import "errors"

// Extraction errors.
// Both indicate that a page was received but did not have the expected
// structure; the probe reports them as a parse failure.
var (
	// ErrTableNotFound is returned when the layout cannot locate the device
	// table or the table has no rows.
	ErrTableNotFound = errors.New("device table not found")

	// ErrMACNotFound is returned when the table has no row labeled MAC or
	// the MAC value is empty. The MAC is the inventory key, so such a page
	// cannot produce a record.
	ErrMACNotFound = errors.New("MAC row not found")

	// ErrUnknownLayout is returned by ParseLayout for an unrecognized name.
	ErrUnknownLayout = errors.New("unknown page layout")
)
