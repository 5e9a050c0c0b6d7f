package intake

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"payermatch/internal/core"
	"payermatch/internal/utils"
)

// ParseCSVRecords reads a statement export into records. The first row names
// the fields; header cells are folded to snake_case, so "Payer Name" becomes
// the field "payer_name". Rows may be ragged; cells beyond the header are
// dropped and missing cells leave their field absent.
func ParseCSVRecords(r io.Reader, text *utils.TextProcessor) ([]core.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	fields := make([]string, len(header))
	for i, cell := range header {
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\uFEFF")
		}
		fields[i] = headerField(cell)
	}

	var records []core.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, fmt.Errorf("failed to read row: %w", err)
		}

		record := make(core.Record, len(fields))
		for i, value := range row {
			if i >= len(fields) || fields[i] == "" {
				continue
			}
			record[fields[i]] = strings.TrimSpace(text.SanitizeUTF8(value))
		}
		if name, ok := record[core.FieldName]; ok {
			record[core.FieldName] = text.NormalizeSpace(name)
		}
		records = append(records, record)
	}

	return records, nil
}

// headerField folds a header cell into a record field name.
func headerField(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.Join(strings.Fields(cell), "_")
	return strings.ReplaceAll(cell, "-", "_")
}
