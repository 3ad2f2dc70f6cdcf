package diffdetect

import "testing"

func TestDiffStylesIdenticalYieldsNoChanges(t *testing.T) {
	runs := []Run{{Text: "hello", Bounds: Box{0, 0, 50, 10}, Font: "Arial", FontSize: 12}}
	got := DiffStyles(runs, runs)
	if len(got) != 0 {
		t.Fatalf("expected no changes for identical runs, got %+v", got)
	}
}

func TestDiffStylesFontSizeChangeDetected(t *testing.T) {
	base := []Run{{Text: "hello", Bounds: Box{0, 0, 50, 10}, Font: "Arial", FontSize: 12}}
	compare := []Run{{Text: "hello", Bounds: Box{0, 0, 50, 10}, Font: "Arial", FontSize: 18}}
	got := DiffStyles(base, compare)
	if len(got) != 1 || got[0].ChangedAttrs[0] != "size" {
		t.Fatalf("expected one size change, got %+v", got)
	}
}

func TestDiffStylesRequiresBothOverlapAndEqualText(t *testing.T) {
	base := []Run{{Text: "hello", Bounds: Box{0, 0, 50, 10}, Font: "Arial"}}
	compare := []Run{{Text: "different text entirely", Bounds: Box{0, 0, 50, 10}, Font: "Arial"}}
	got := DiffStyles(base, compare)
	if len(got) != 0 {
		t.Fatalf("expected no pairing across differing text, got %+v", got)
	}
}
