package diffdetect

import "testing"

func TestFontDiffPositionFirstEntry(t *testing.T) {
	box := FontDiffPosition(200, 100, 0)
	want := Box{X: 20, Y: 10, W: 160, H: 3}
	if box != want {
		t.Fatalf("FontDiffPosition(200,100,0) = %+v, want %+v", box, want)
	}
}

func TestFontDiffPositionClampsToHalfHeight(t *testing.T) {
	box := FontDiffPosition(200, 100, 100)
	if box.Y != 50 {
		t.Fatalf("expected Y clamped to 0.5*H=50, got %v", box.Y)
	}
}
