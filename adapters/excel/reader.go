// Package excel adapts xlsx and csv files to the core's table types
// using excelize.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"anonsurvey/domain/survey"
	"anonsurvey/internal"
	"anonsurvey/internal/errors"
)

// Reader reads survey wave files. Both xlsx and csv inputs are
// supported; the extension decides.
type Reader struct {
	log *internal.Logger
}

// NewReader creates a survey file reader.
func NewReader() *Reader {
	return &Reader{log: internal.DefaultLogger}
}

// Read loads one survey file into a raw table. All cells come back as
// trimmed text; empty cells are blank. The first row is the header.
func (r *Reader) Read(path string) (*survey.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.IOError(fmt.Sprintf("survey file not found: %s", path), err)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = r.readCSV(path)
	default:
		rows, err = r.readExcel(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s has no header row", path))
	}

	table := buildTable(rows)
	r.log.Debug("read %s: %d columns, %d rows", filepath.Base(path), len(table.Columns), table.Len())
	return table, nil
}

func (r *Reader) readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	// Survey exports carry their data on the first sheet.
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read sheet %q of %s", sheet, path), err)
	}
	return rows, nil
}

func (r *Reader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read %s", path), err)
	}
	return rows, nil
}

func buildTable(rows [][]string) *survey.Table {
	header := rows[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	table := survey.NewTable(columns...)
	for _, raw := range rows[1:] {
		row := make(survey.Row, len(columns))
		for j, col := range columns {
			if j < len(raw) {
				row[col] = survey.Text(strings.TrimSpace(raw[j]))
			} else {
				row[col] = survey.Blank()
			}
		}
		table.Append(row)
	}
	return table
}
