package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Layout names accepted by ParseLayout.
const (
	LayoutCenteredDiv = "centered-div"
	LayoutTableIndex  = "table-index"
	LayoutAuto        = "auto"
)

// Layouts lists every layout name in the order they are documented.
var Layouts = []string{LayoutCenteredDiv, LayoutTableIndex, LayoutAuto}

// Layout locates the device table in a parsed document and reads its fields.
type Layout interface {
	// Extract returns the fields found in doc, or ErrTableNotFound /
	// ErrMACNotFound when the page does not match the layout.
	Extract(doc *html.Node) (Fields, error)

	// Name returns the layout name for logging.
	Name() string
}

// ParseLayout returns the layout registered under name. tableIndex is only
// used by the table-index layout.
func ParseLayout(name string, tableIndex int) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LayoutCenteredDiv, "":
		return CenteredDivLayout{}, nil
	case LayoutTableIndex:
		if tableIndex < 0 {
			return nil, fmt.Errorf("%w: negative table index %d", ErrUnknownLayout, tableIndex)
		}
		return TableIndexLayout{Index: tableIndex}, nil
	case LayoutAuto:
		return AutoLayout{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownLayout, name, strings.Join(Layouts, ", "))
	}
}

// CenteredDivLayout reads the rows of the first <div align="center"> nested
// in the first table of the document body.
type CenteredDivLayout struct{}

// Name returns "centered-div".
func (CenteredDivLayout) Name() string { return LayoutCenteredDiv }

// Extract implements Layout.
func (CenteredDivLayout) Extract(doc *html.Node) (Fields, error) {
	container := centeredDiv(doc)
	if container == nil {
		return Fields{}, fmt.Errorf("%w: no centered div inside the first body table", ErrTableNotFound)
	}
	return fieldsFromRows(findAll(container, isElement(atom.Tr)))
}

// centeredDiv returns the container used by CenteredDivLayout, or nil.
func centeredDiv(doc *html.Node) *html.Node {
	body := findFirst(doc, isElement(atom.Body))
	if body == nil {
		return nil
	}
	table := findFirst(body, isElement(atom.Table))
	if table == nil {
		return nil
	}
	return findFirst(table, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Div &&
			strings.EqualFold(strings.TrimSpace(getAttr(n, "align")), "center")
	})
}

// TableIndexLayout reads the rows of the Index-th table in document order.
type TableIndexLayout struct {
	// Index is the zero-based position among all <table> elements.
	Index int
}

// Name returns "table-index".
func (TableIndexLayout) Name() string { return LayoutTableIndex }

// Extract implements Layout.
func (l TableIndexLayout) Extract(doc *html.Node) (Fields, error) {
	tables := findAll(doc, isElement(atom.Table))
	if l.Index < 0 || l.Index >= len(tables) {
		return Fields{}, fmt.Errorf("%w: table index %d out of range (page has %d tables)",
			ErrTableNotFound, l.Index, len(tables))
	}
	return fieldsFromRows(findAll(tables[l.Index], isElement(atom.Tr)))
}

// AutoLayout tries CenteredDivLayout and then each table in document order,
// returning the first candidate that yields a MAC.
type AutoLayout struct{}

// Name returns "auto".
func (AutoLayout) Name() string { return LayoutAuto }

// Extract implements Layout.
func (AutoLayout) Extract(doc *html.Node) (Fields, error) {
	if f, err := (CenteredDivLayout{}).Extract(doc); err == nil {
		return f, nil
	}

	tables := findAll(doc, isElement(atom.Table))
	if len(tables) == 0 {
		return Fields{}, fmt.Errorf("%w: page has no tables", ErrTableNotFound)
	}
	for _, table := range tables {
		if f, err := fieldsFromRows(findAll(table, isElement(atom.Tr))); err == nil {
			return f, nil
		}
	}
	return Fields{}, fmt.Errorf("%w: none of %d tables has a MAC row", ErrMACNotFound, len(tables))
}
