package diffdetect

import "testing"

func TestDiffLinesIdenticalYieldsNoChanges(t *testing.T) {
	text := "alpha\nbeta\ngamma\n"
	got := DiffLines(text, text)
	if len(got) != 0 {
		t.Fatalf("expected no changes for identical text, got %+v", got)
	}
}

func TestDiffLinesDetectsAddition(t *testing.T) {
	base := "alpha\nbeta\n"
	compare := "alpha\nbeta\ngamma\n"
	got := DiffLines(base, compare)
	if len(got) != 1 || got[0].ChangeType != LineAdded || got[0].CompareText != "gamma" {
		t.Fatalf("expected one added line 'gamma', got %+v", got)
	}
}

func TestDiffLinesDetectsDeletion(t *testing.T) {
	base := "alpha\nbeta\ngamma\n"
	compare := "alpha\ngamma\n"
	got := DiffLines(base, compare)
	if len(got) != 1 || got[0].ChangeType != LineDeleted || got[0].BaseText != "beta" {
		t.Fatalf("expected one deleted line 'beta', got %+v", got)
	}
}

func TestDiffLinesDetectsModification(t *testing.T) {
	base := "alpha\nbeta\ngamma\n"
	compare := "alpha\nBETA CHANGED\ngamma\n"
	got := DiffLines(base, compare)
	if len(got) != 1 || got[0].ChangeType != LineModified {
		t.Fatalf("expected one modified line, got %+v", got)
	}
}

func TestClassifyTextSeverityCosmeticWhitespace(t *testing.T) {
	c := TextLineChange{ChangeType: LineAdded, CompareText: "   "}
	if got := ClassifyTextSeverity(c); got != SeverityCosmetic {
		t.Fatalf("expected Cosmetic for pure whitespace addition, got %d", got)
	}
}

func TestClassifyTextSeverityMajorForAddedDeleted(t *testing.T) {
	c := TextLineChange{ChangeType: LineAdded, CompareText: "new content"}
	if got := ClassifyTextSeverity(c); got != SeverityMajor {
		t.Fatalf("expected Major for non-empty added line, got %d", got)
	}
}

func TestClassifyTextSeverityCosmeticWhenNormalizedEqual(t *testing.T) {
	c := TextLineChange{ChangeType: LineModified, BaseText: "Hello   World", CompareText: "hello world"}
	if got := ClassifyTextSeverity(c); got != SeverityCosmetic {
		t.Fatalf("expected Cosmetic when normalized text matches, got %d", got)
	}
}

func TestClassifyTextSeverityMinorForModified(t *testing.T) {
	c := TextLineChange{ChangeType: LineModified, BaseText: "old value", CompareText: "new value"}
	if got := ClassifyTextSeverity(c); got != SeverityMinor {
		t.Fatalf("expected Minor for genuine modification, got %d", got)
	}
}

func TestNewDiffIDIsUnique(t *testing.T) {
	a := NewDiffID()
	b := NewDiffID()
	if a == "" || b == "" || a == b {
		t.Fatalf("expected two distinct non-empty ids, got %q %q", a, b)
	}
}
