package anonymize

import (
	"testing"

	"anonsurvey/domain/survey"
)

func sampleTable() *survey.Table {
	t := survey.NewTable("Start time", "Your student number", "q1")
	t.Append(survey.Row{
		"Start time":          survey.Text("2024-01-05"),
		"Your student number": survey.Text("s1234567"),
		"q1":                  survey.Text("Agree (A)"),
	})
	t.Append(survey.Row{
		"Start time":          survey.Text("2024-01-06"),
		"Your student number": survey.Text("s7654321"),
		"q1":                  survey.Text("Disagree (D)"),
	})
	return t
}

// TestTransformPassthrough tests the identity contract when the
// identifier column is absent
func TestTransformPassthrough(t *testing.T) {
	in := sampleTable()
	out := Transform(in, "No such column", "student_anon")

	if out != in {
		t.Error("expected the same table back when the column is absent")
	}
	if out.HasColumn("student_anon") {
		t.Error("no token column should be added on passthrough")
	}
}

// TestTransformAddsTokenColumn tests token column position and content
func TestTransformAddsTokenColumn(t *testing.T) {
	in := sampleTable()
	out := Transform(in, "Your student number", "student_anon")

	ix := out.ColumnIndex("student_anon")
	if ix != 1 {
		t.Errorf("token column should sit immediately before the raw column, got index %d", ix)
	}
	if out.ColumnIndex("Your student number") != 2 {
		t.Errorf("raw column should follow the token column")
	}

	tok1 := out.Cell(0, "student_anon")
	tok2 := out.Cell(1, "student_anon")
	if tok1.Kind != survey.CellText || len(tok1.Text) != 16 {
		t.Errorf("expected a 16-char token, got %+v", tok1)
	}
	if tok1.Text == tok2.Text {
		t.Error("distinct identifiers must not share a token")
	}
}

// TestTransformStableAcrossTables tests that the same identifier maps
// to the same token in two independently transformed tables
func TestTransformStableAcrossTables(t *testing.T) {
	pre := Transform(sampleTable(), "Your student number", "student_anon")
	post := Transform(sampleTable(), "Your student number", "student_anon")

	if pre.Cell(0, "student_anon") != post.Cell(0, "student_anon") {
		t.Error("tokens must match across waves for the same respondent")
	}
}

// TestTransformNonDestructive tests that the caller's table is untouched
func TestTransformNonDestructive(t *testing.T) {
	in := sampleTable()
	_ = Transform(in, "Your student number", "student_anon")

	if in.HasColumn("student_anon") {
		t.Error("input table gained a column")
	}
	if got := in.Cell(0, "Your student number").Text; got != "s1234567" {
		t.Errorf("input cell changed: %q", got)
	}
}

// TestTransformBlankIdentifier tests that blank identifiers yield blank
// tokens rather than a hash of the empty string
func TestTransformBlankIdentifier(t *testing.T) {
	in := survey.NewTable("Your student number")
	in.Append(survey.Row{"Your student number": survey.Blank()})

	out := Transform(in, "Your student number", "student_anon")
	if !out.Cell(0, "student_anon").IsBlank() {
		t.Error("blank identifier should produce a blank token cell")
	}
}
