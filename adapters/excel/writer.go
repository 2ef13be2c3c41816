package excel

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"anonsurvey/domain/survey"
	"anonsurvey/internal"
	"anonsurvey/internal/errors"
)

// Fill colors for respondent membership tints.
var tintColors = map[survey.Tint]string{
	survey.TintCommon:     "C6EFCE", // green: paired in both waves
	survey.TintBeforeOnly: "FFEB9C", // yellow: dropped after the pre-survey
	survey.TintAfterOnly:  "FFC7CE", // red: new in the post-survey
}

// Writer writes result workbooks with excelize.
type Writer struct {
	log *internal.Logger
}

// NewWriter creates a workbook writer.
func NewWriter() *Writer {
	return &Writer{log: internal.DefaultLogger}
}

// Write renders the sheets into one xlsx workbook at path, one
// worksheet per sheet in slice order.
func (w *Writer) Write(path string, sheets []survey.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := tintStyles(f)
	if err != nil {
		return errors.IOError("failed to register cell styles", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return errors.IOError(fmt.Sprintf("failed to name sheet %q", sheet.Name), err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return errors.IOError(fmt.Sprintf("failed to add sheet %q", sheet.Name), err)
		}
		if err := w.writeSheet(f, sheet, styles); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.IOError(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	w.log.Info("wrote %s (%d sheets)", path, len(sheets))
	return nil
}

func (w *Writer) writeSheet(f *excelize.File, sheet survey.Sheet, styles map[survey.Tint]int) error {
	for col, name := range sheet.Table.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.IOError("invalid cell coordinates", err)
		}
		if err := f.SetCellValue(sheet.Name, cell, name); err != nil {
			return errors.IOError(fmt.Sprintf("failed to write header of %q", sheet.Name), err)
		}
	}

	tintCol := sheet.Table.ColumnIndex(sheet.TintColumn)
	for rowIx, row := range sheet.Table.Rows {
		for colIx, name := range sheet.Table.Columns {
			cell, err := excelize.CoordinatesToCellName(colIx+1, rowIx+2)
			if err != nil {
				return errors.IOError("invalid cell coordinates", err)
			}
			if err := setCell(f, sheet.Name, cell, row[name]); err != nil {
				return err
			}
			if colIx == tintCol && rowIx < len(sheet.Tints) {
				if style, ok := styles[sheet.Tints[rowIx]]; ok {
					if err := f.SetCellStyle(sheet.Name, cell, cell, style); err != nil {
						return errors.IOError("failed to apply cell style", err)
					}
				}
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet, cell string, value survey.Cell) error {
	switch value.Kind {
	case survey.CellBlank:
		return nil
	case survey.CellRank:
		// NaN and Inf are not representable as xlsx numbers; render
		// them as their text form so nothing is silently lost.
		if math.IsNaN(value.Value) {
			return nil
		}
		if math.IsInf(value.Value, 0) {
			return f.SetCellStr(sheet, cell, value.String())
		}
		return f.SetCellFloat(sheet, cell, value.Value, -1, 64)
	default:
		return f.SetCellStr(sheet, cell, value.Text)
	}
}

func tintStyles(f *excelize.File) (map[survey.Tint]int, error) {
	styles := make(map[survey.Tint]int, len(tintColors))
	for tint, color := range tintColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, err
		}
		styles[tint] = id
	}
	return styles, nil
}
