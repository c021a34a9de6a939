package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/phoneinv/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName    = "Sheet1"
	headerMAC    = "MAC"
	headerSerial = "Serial"
	columnWidth  = 22
)

func encodeXLSX(entries []model.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetRow(sheetName, "A1", &[]any{headerMAC, headerSerial}); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "B1", bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "B", columnWidth); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &[]any{e.MAC, e.Serial}); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func loadXLSX(path string) ([]model.Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return entriesFromRows(rows), nil
}

// entriesFromRows converts MAC/Serial rows, skipping a leading header row and
// rows without a MAC. Trailing empty cells may be missing from a row.
func entriesFromRows(rows [][]string) []model.Entry {
	entries := make([]model.Entry, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), headerMAC) {
			continue
		}
		e := model.Entry{MAC: row[0]}
		if len(row) > 1 {
			e.Serial = row[1]
		}
		if e.MAC == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
