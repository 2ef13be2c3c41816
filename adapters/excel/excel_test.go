package excel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
)

const (
	posQ = "I trust others in this course"
	negQ = "I feel reluctant to speak openly"
)

// writeScoringFixture builds a minimal scoring workbook on disk.
func writeScoringFixture(t *testing.T, folder string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), "Scoring"); err != nil {
		t.Fatal(err)
	}
	header := append([]string{"question"}, survey.CategoryLabels...)
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellStr("Scoring", cell, h); err != nil {
			t.Fatal(err)
		}
	}
	rows := [][]interface{}{
		{posQ, 4, 3, 2, 1, 0},
		{negQ, 0, 1, 2, 3, 4},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue("Scoring", cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(folder, "Scoring.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScoringLoaderMissingFile(t *testing.T) {
	_, err := NewScoringLoader().Load(filepath.Join(t.TempDir(), "Scoring.xlsx"), "Scoring")
	if !errors.Is(err, core.ErrScoringUnavailable) {
		t.Errorf("expected ErrScoringUnavailable, got %v", err)
	}
}

func TestScoringLoaderLoad(t *testing.T) {
	folder := t.TempDir()
	path := writeScoringFixture(t, folder)

	scoring, err := NewScoringLoader().Load(path, "Scoring")
	if err != nil {
		t.Fatal(err)
	}

	if scoring.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", scoring.Len())
	}
	// Declaration order is preserved.
	if scoring.Questions[0] != posQ || scoring.Questions[1] != negQ {
		t.Errorf("question order changed: %v", scoring.Questions)
	}
	if r, ok := scoring.Resolve(posQ, survey.LabelStronglyAgree); !ok || r != 4 {
		t.Errorf("positive SA should resolve to 4, got %d (%v)", r, ok)
	}
	if r, ok := scoring.Resolve(negQ, survey.LabelStronglyAgree); !ok || r != 0 {
		t.Errorf("negative SA should resolve to 0, got %d (%v)", r, ok)
	}
	if _, ok := scoring.Resolve(posQ, "nonsense"); ok {
		t.Error("unknown category must not resolve")
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	folder := t.TempDir()
	path := filepath.Join(folder, "cleaned_data_survey_01.xlsx")

	table := survey.NewTable("student_anon", posQ)
	table.Append(survey.Row{
		"student_anon": survey.Text("0a1b2c3d4e5f6789"),
		posQ:           survey.Rank(4),
	})
	table.Append(survey.Row{
		"student_anon": survey.Text("fedcba9876543210"),
		posQ:           survey.Blank(),
	})

	sheets := []survey.Sheet{{
		Name:       "Clean pre-survey",
		Table:      table,
		Tints:      []survey.Tint{survey.TintCommon, survey.TintBeforeOnly},
		TintColumn: "student_anon",
	}}
	if err := NewWriter().Write(path, sheets); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}

	got, err := NewReader().Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows back, got %d", got.Len())
	}
	if got.Columns[0] != "student_anon" || got.Columns[1] != posQ {
		t.Errorf("unexpected columns %v", got.Columns)
	}
	if got.Cell(0, posQ).Text != "4" {
		t.Errorf("rank cell should read back as 4, got %+v", got.Cell(0, posQ))
	}
	if !got.Cell(1, posQ).IsBlank() {
		t.Errorf("blank cell should stay blank, got %+v", got.Cell(1, posQ))
	}
}

func TestReaderCSV(t *testing.T) {
	folder := t.TempDir()
	path := filepath.Join(folder, "Pre_survey.csv")
	csv := "Your student number," + posQ + "\ns1234567,Agree (A)\ns7654321,\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewReader().Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	if got.Cell(0, posQ).Text != "Agree (A)" {
		t.Errorf("unexpected cell %+v", got.Cell(0, posQ))
	}
	if !got.Cell(1, posQ).IsBlank() {
		t.Error("empty csv field should be a blank cell")
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader().Read(filepath.Join(t.TempDir(), "Pre_gone.xlsx")); err == nil {
		t.Error("expected an error for a missing survey file")
	}
}
