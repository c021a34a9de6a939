// Package extract pulls named fields out of the row-labeled device
// information table found on an embedded web management page.
//
// Device firmware versions lay the page out differently, so the table is
// located by a Layout strategy. Once located, every row with exactly three
// cells (name, separator, value) is inspected and rows whose trimmed name
// starts with "MAC" or "Serial" fill the corresponding field.
//
// # Layouts
//
//   - centered-div: the first <div align="center"> inside the first table of
//     the body. This is the layout of the stock device status page.
//   - table-index: the N-th table of the document, counted from zero.
//   - auto: centered-div first, then every table in document order.
package extract
