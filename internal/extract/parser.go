package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Row labels are matched case-sensitively against the start of the trimmed
// name cell, so "MAC Address:" and "Serial Number" both match.
const (
	macLabel    = "MAC"
	serialLabel = "Serial"
)

// cellsPerRow is the number of cells in a device table row:
// name, separator and value.
const cellsPerRow = 3

// Fields holds the values read from the device table.
type Fields struct {
	// MAC is the value of the last row labeled MAC.
	MAC string

	// Serial is the value of the last row labeled Serial. It is empty when
	// the page has no such row.
	Serial string
}

// Parse decodes body using the charset declared by contentType or the
// document itself, parses it as HTML, and extracts the fields with layout.
func Parse(body []byte, contentType string, layout Layout) (Fields, error) {
	if layout == nil {
		layout = CenteredDivLayout{}
	}

	enc, _, _ := charset.DetermineEncoding(body, contentType)
	doc, err := html.Parse(transform.NewReader(bytes.NewReader(body), enc.NewDecoder()))
	if err != nil {
		return Fields{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return layout.Extract(doc)
}

// fieldsFromRows scans table rows for the MAC and Serial labels.
// Rows that do not have exactly three cells are skipped.
func fieldsFromRows(rows []*html.Node) (Fields, error) {
	if len(rows) == 0 {
		return Fields{}, fmt.Errorf("%w: table has no rows", ErrTableNotFound)
	}

	var f Fields
	for _, tr := range rows {
		cells := cellChildren(tr)
		if len(cells) != cellsPerRow {
			continue
		}

		name := textContent(cells[0])
		value := textContent(cells[2])
		switch {
		case strings.HasPrefix(name, macLabel):
			f.MAC = value
		case strings.HasPrefix(name, serialLabel):
			f.Serial = value
		}
	}

	if f.MAC == "" {
		return f, ErrMACNotFound
	}
	return f, nil
}

// cellChildren returns the direct td/th children of a row.
func cellChildren(tr *html.Node) []*html.Node {
	cells := make([]*html.Node, 0, cellsPerRow)
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, c)
		}
	}
	return cells
}

// textContent returns the trimmed concatenation of all text below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// isElement returns a matcher for element nodes of the given type.
func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

// findFirst returns the first descendant of n, in document order, that
// matches. n itself is not considered.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant of n, in document order, that matches.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
