package lexrain

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportFile loads a wordlist into the store. The format is chosen by
// extension: .csv or .xlsx. Expected columns, in order: spelling, phonetic,
// definition, translation, tags (space-separated). Only spelling is
// required; a header row is skipped when its first cell reads "spelling".
// Duplicate spellings are skipped, not overwritten.
func (c *Client) ImportFile(path string) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		return nil, &ValidationError{Field: "file", Message: "unsupported format, expected .csv or .xlsx"}
	}
	if err != nil {
		return nil, err
	}

	return c.importRows(rows)
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // column count varies across exports

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read wordlist: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("read wordlist: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return rows, nil
}

func (c *Client) importRows(rows [][]string) (*ImportResult, error) {
	result := &ImportResult{}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		first := strings.TrimSpace(row[0])
		if i == 0 && strings.EqualFold(first, "spelling") {
			continue
		}
		result.Total++

		if first == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: empty spelling", i+1))
			continue
		}

		w := Word{Spelling: first}
		if len(row) > 1 {
			w.Phonetic = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			w.Definition = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			w.Translation = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			w.Tags = strings.Join(strings.Fields(row[4]), " ")
		}

		created, err := c.store.AddWord(&w)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}
