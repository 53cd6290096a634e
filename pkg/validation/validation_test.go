package validation

import "testing"

func TestReportStartsValid(t *testing.T) {
	r := NewReport()
	if !r.Valid {
		t.Error("new report should be valid")
	}
}

func TestAddErrorInvalidates(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelGeometry, Message: "bad ring"})
	if r.Valid {
		t.Error("error should invalidate the report")
	}
	if r.Errors[0].Severity != SeverityError {
		t.Error("AddError should stamp the severity")
	}
	if r.Summary != "1 errors, 0 warnings, 0 info" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
}

func TestWarningsKeepValid(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelAttribute, Message: "missing height"})
	r.AddInfo(Result{Level: LevelFormat, Message: "loaded 3 features"})
	if !r.Valid {
		t.Error("warnings and info must not invalidate the report")
	}
}

func TestMerge(t *testing.T) {
	a := NewReport()
	a.AddWarning(Result{Message: "w"})

	b := NewReport()
	b.AddError(Result{Message: "e"})

	a.Merge(b)
	if a.Valid {
		t.Error("merging an invalid report must invalidate")
	}
	if len(a.Errors) != 1 || len(a.Warnings) != 1 {
		t.Errorf("merge lost results: %s", a.Summary)
	}

	a.Merge(nil) // no-op
	if len(a.Errors) != 1 {
		t.Error("nil merge should change nothing")
	}
}
