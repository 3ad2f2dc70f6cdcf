package fingerprint

import "testing"

func TestTextHashEmptyIsZero(t *testing.T) {
	if got := TextHash(""); got != 0 {
		t.Fatalf("TextHash(\"\") = %d, want 0", got)
	}
}

func TestTextHashDeterministic(t *testing.T) {
	a := TextHash("hello world")
	b := TextHash("hello world")
	if a != b {
		t.Fatalf("TextHash not deterministic: %d != %d", a, b)
	}
	if a == 0 {
		t.Fatalf("TextHash of non-empty text must not be 0")
	}
}

func TestTextHashDiffersOnChange(t *testing.T) {
	a := TextHash("hello world")
	b := TextHash("hello World")
	if a == b {
		t.Fatalf("TextHash collided for different normalized text")
	}
}

func TestBuildYPositionsSorted(t *testing.T) {
	p := Build(0, "hello world", []string{"Arial"}, []float64{30, 10, 20}, 0)
	want := []float64{10, 20, 30}
	for i, v := range want {
		if p.YPositions[i] != v {
			t.Fatalf("YPositions = %v, want sorted %v", p.YPositions, want)
		}
	}
}

func TestBuildHasImages(t *testing.T) {
	p := Build(0, "text", nil, nil, 2)
	if !p.HasImages || p.ImageCount != 2 {
		t.Fatalf("HasImages/ImageCount wrong: %+v", p)
	}
	p2 := Build(0, "text", nil, nil, 0)
	if p2.HasImages {
		t.Fatalf("HasImages should be false for 0 images")
	}
}

func TestBuildAllPositionIndependent(t *testing.T) {
	texts := []string{"same text", "same text"}
	all := BuildAll(texts, nil, nil, nil)
	if all[0].TextHash != all[1].TextHash {
		t.Fatalf("identical page text must hash identically regardless of page index")
	}
}
