package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/phoneinv/internal/model"
)

// WriteMarkdown renders inv as a Markdown document with a MAC/Serial table.
func WriteMarkdown(w io.Writer, inv *model.Inventory) error {
	return renderMarkdown(w, inv.Entries())
}

func encodeMarkdown(entries []model.Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderMarkdown(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderMarkdown(w io.Writer, entries []model.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		host := ""
		if e.Host.IsValid() {
			host = e.Host.String()
		}
		rows = append(rows, []string{"`" + e.MAC + "`", e.Serial, host})
	}

	md := markdown.NewMarkdown(w)
	md.H1("Phone Inventory")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("%d devices", len(entries)))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{headerMAC, headerSerial, "Host"},
		Rows:   rows,
	})

	return md.Build()
}
