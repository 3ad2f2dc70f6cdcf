package diffdetect

import "testing"

func TestDiffFontsIdenticalYieldsNoChanges(t *testing.T) {
	fonts := []Font{{Name: "Arial", Family: "Arial"}}
	got := DiffFonts(fonts, fonts)
	if len(got) != 0 {
		t.Fatalf("expected no changes for identical font tables, got %+v", got)
	}
}

func TestDiffFontsSubsetPrefixStrippedForEquality(t *testing.T) {
	base := []Font{{Name: "ABCDEF+Helvetica", Family: "Helvetica"}}
	compare := []Font{{Name: "XYZABC+Helvetica", Family: "Helvetica"}}
	got := DiffFonts(base, compare)
	if len(got) != 0 {
		t.Fatalf("expected 0 differences when only the subset prefix differs, got %+v", got)
	}
}

func TestDiffFontsFamilyChangeIsMajor(t *testing.T) {
	base := []Font{{Name: "Arial", Family: "Arial"}}
	compare := []Font{{Name: "Arial", Family: "Helvetica"}}
	got := DiffFonts(base, compare)
	if len(got) != 1 {
		t.Fatalf("expected 1 change, got %+v", got)
	}
	if sev := ClassifyFontSeverity(got[0]); sev != SeverityMajor {
		t.Fatalf("expected Major severity for family change, got %d", sev)
	}
}

func TestDiffFontsUnmatchedEmitsAddedAndDeleted(t *testing.T) {
	base := []Font{{Name: "Courier", Family: "Courier"}}
	compare := []Font{{Name: "Georgia", Family: "Georgia"}}
	got := DiffFonts(base, compare)
	if len(got) != 2 {
		t.Fatalf("expected 2 changes (one deleted, one added), got %+v", got)
	}
	var sawAdded, sawDeleted bool
	for _, c := range got {
		if c.ChangeType == LineAdded {
			sawAdded = true
		}
		if c.ChangeType == LineDeleted {
			sawDeleted = true
		}
	}
	if !sawAdded || !sawDeleted {
		t.Fatalf("expected both Added and Deleted, got %+v", got)
	}
}

func TestDiffFontsBoldChangeIsMinor(t *testing.T) {
	base := []Font{{Name: "Arial", Family: "Arial", Bold: false}}
	compare := []Font{{Name: "Arial", Family: "Arial", Bold: true}}
	got := DiffFonts(base, compare)
	if len(got) != 1 {
		t.Fatalf("expected 1 change, got %+v", got)
	}
	if sev := ClassifyFontSeverity(got[0]); sev != SeverityMinor {
		t.Fatalf("expected Minor severity for a bold-only change, got %d", sev)
	}
}
