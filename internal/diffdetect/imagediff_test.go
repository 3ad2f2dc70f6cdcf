package diffdetect

import "testing"

func TestDiffImagesIdenticalYieldsNoChanges(t *testing.T) {
	imgs := []Image{{Index: 0, HasBounds: true, Bounds: Box{0, 0, 100, 100}, Format: "png", Width: 100, Height: 100}}
	got := DiffImages(imgs, imgs)
	if len(got) != 0 {
		t.Fatalf("expected no changes for identical images, got %+v", got)
	}
}

func TestDiffImagesOverlapPairMarksModifiedOnSizeChange(t *testing.T) {
	base := []Image{{HasBounds: true, Bounds: Box{0, 0, 100, 100}, Format: "png", Width: 100, Height: 100}}
	compare := []Image{{HasBounds: true, Bounds: Box{0, 0, 100, 100}, Format: "png", Width: 200, Height: 200}}
	got := DiffImages(base, compare)
	if len(got) != 1 || got[0].ChangeType != LineModified {
		t.Fatalf("expected one modified image, got %+v", got)
	}
}

func TestDiffImagesNoOverlapEmitsAddedAndDeleted(t *testing.T) {
	base := []Image{{HasBounds: true, Bounds: Box{0, 0, 10, 10}, Format: "png"}}
	compare := []Image{{HasBounds: true, Bounds: Box{500, 500, 10, 10}, Format: "png"}}
	got := DiffImages(base, compare)
	if len(got) != 2 {
		t.Fatalf("expected added+deleted for non-overlapping images, got %+v", got)
	}
}

func TestDiffImagesBytesDigestFallbackPairsUnboundedImages(t *testing.T) {
	base := []Image{{HasBounds: false, BytesDigest: "abc123", Format: "png"}}
	compare := []Image{{HasBounds: false, BytesDigest: "abc123", Format: "png"}}
	got := DiffImages(base, compare)
	if len(got) != 0 {
		t.Fatalf("expected digest-matched images with no other diffs to yield nothing, got %+v", got)
	}
}
