// Package export writes an inventory to disk and reads it back.
//
// The default destination is an Excel workbook with one MAC/Serial row per
// device. CSV, JSON, Markdown and SQLite are also supported; the format is
// taken from an explicit name or from the file extension. Every write goes
// to a temporary file in the destination directory that is renamed into
// place, so a failed export leaves any previous file untouched.
package export
