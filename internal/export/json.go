package export

import (
	"encoding/json"
	"fmt"

	"github.com/nao1215/phoneinv/internal/model"
)

// document is the top-level JSON shape.
type document struct {
	Devices []model.Entry `json:"devices"`
}

func encodeJSON(entries []model.Entry) ([]byte, error) {
	data, err := json.MarshalIndent(document{Devices: entries}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeJSON(data []byte) ([]model.Entry, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return doc.Devices, nil
}
