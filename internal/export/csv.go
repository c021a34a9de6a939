package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/nao1215/phoneinv/internal/model"
)

func encodeCSV(entries []model.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{headerMAC, headerSerial}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.MAC, e.Serial}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeCSV(data []byte) ([]model.Entry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	return entriesFromRows(rows), nil
}
