package survey

import "testing"

func twoRows() *Table {
	t := NewTable("id", "q")
	t.Append(Row{"id": Text("b"), "q": Rank(1)})
	t.Append(Row{"id": Text("a"), "q": Rank(2)})
	return t
}

func TestCloneIsDeep(t *testing.T) {
	orig := twoRows()
	clone := orig.Clone()
	clone.Rows[0]["id"] = Text("mutated")
	clone.Columns[0] = "renamed"

	if orig.Rows[0]["id"].Text != "b" {
		t.Error("clone mutation leaked into the original rows")
	}
	if orig.Columns[0] != "id" {
		t.Error("clone mutation leaked into the original columns")
	}
}

func TestInsertColumnBefore(t *testing.T) {
	tbl := NewTable("a", "b", "c")
	tbl.InsertColumnBefore("x", "b")
	want := []string{"a", "x", "b", "c"}
	for i, c := range tbl.Columns {
		if c != want[i] {
			t.Fatalf("columns = %v, want %v", tbl.Columns, want)
		}
	}

	tbl.InsertColumnBefore("y", "missing")
	if tbl.Columns[len(tbl.Columns)-1] != "y" {
		t.Error("insert before a missing anchor should append")
	}
}

func TestSortByColumnStableAndNonDestructive(t *testing.T) {
	orig := twoRows()
	sorted := orig.SortByColumn("id")

	if sorted.Rows[0]["id"].Text != "a" || sorted.Rows[1]["id"].Text != "b" {
		t.Errorf("unexpected sort order: %v, %v", sorted.Rows[0]["id"], sorted.Rows[1]["id"])
	}
	if orig.Rows[0]["id"].Text != "b" {
		t.Error("sort must not reorder the original table")
	}
}

func TestSelectAndRename(t *testing.T) {
	orig := twoRows()
	sel := orig.Select("q")
	if len(sel.Columns) != 1 || sel.Columns[0] != "q" {
		t.Fatalf("unexpected selection %v", sel.Columns)
	}

	renamed := orig.RenameColumns(map[string]string{"q": "before_01"})
	if !renamed.HasColumn("before_01") || renamed.HasColumn("q") {
		t.Errorf("rename failed: %v", renamed.Columns)
	}
	if v, ok := renamed.Rows[0]["before_01"].Rank(); !ok || v != 1 {
		t.Errorf("renamed cell lost its value: %+v", renamed.Rows[0]["before_01"])
	}
	if !orig.HasColumn("q") {
		t.Error("rename must not touch the original")
	}
}

func TestCellRank(t *testing.T) {
	if _, ok := Text("4").Rank(); ok {
		t.Error("text cells must not read as ranks")
	}
	if _, ok := Blank().Rank(); ok {
		t.Error("blank cells must not read as ranks")
	}
	if v, ok := Rank(3).Rank(); !ok || v != 3 {
		t.Errorf("rank cell lost its value: %v %v", v, ok)
	}
	if Text("").Kind != CellBlank {
		t.Error("empty text collapses to blank")
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Strongly  agree (SA)", "Strongly agree (SA)"},
		{"  Agree (A)\t", "Agree (A)"},
		{"Neutral\n(N)", "Neutral (N)"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeCategory(c.in); got != c.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestScoringTableValidate(t *testing.T) {
	s := NewScoringTable()
	s.Add("q", PositiveRank())
	if err := s.Validate(); err != nil {
		t.Errorf("complete rank map should validate: %v", err)
	}

	partial := RankMap{LabelAgree: 1}
	s.Add("broken", partial)
	if err := s.Validate(); err == nil {
		t.Error("expected a validation error for a partial rank map")
	}
}
