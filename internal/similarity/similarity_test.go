package similarity

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hello, World!", "hello world"},
		{"  multiple   spaces  ", "multiple spaces"},
		{"Quote's \"test\"", "quotes test"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestJaccardEmpty(t *testing.T) {
	if got := Jaccard(nil, nil); got != 1.0 {
		t.Fatalf("Jaccard(empty,empty) = %v, want 1.0", got)
	}
}

func TestJaccardSymmetric(t *testing.T) {
	a := Keywords("the quick brown fox")
	b := Keywords("quick brown foxes jumped")
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Fatalf("Jaccard not symmetric")
	}
}

func TestNgramSimilarityShortFallsBackToUnigrams(t *testing.T) {
	sim := NgramSimilarity("ab", "ab")
	if sim != 1.0 {
		t.Fatalf("NgramSimilarity(ab,ab) = %v, want 1.0", sim)
	}
}

func TestEditSimilarityEmpty(t *testing.T) {
	if got := EditSimilarity("", ""); got != 1.0 {
		t.Fatalf(`EditSimilarity("","") = %v, want 1.0`, got)
	}
}

func TestEditSimilarityIdentical(t *testing.T) {
	if got := EditSimilarity("hello world", "hello world"); got != 1.0 {
		t.Fatalf("EditSimilarity identical = %v, want 1.0", got)
	}
}

func TestEditSimilarityLongStringsSampleWindows(t *testing.T) {
	base := make([]byte, 4000)
	for i := range base {
		base[i] = byte('a' + i%26)
	}
	other := append([]byte(nil), base...)
	// Change a byte deep in the middle window only.
	other[2000] = 'Z'
	sim := EditSimilarity(string(base), string(other))
	if sim <= 0 || sim >= 1.0 {
		t.Fatalf("EditSimilarity long strings = %v, want in (0,1)", sim)
	}
}

func TestCosineTFEmpty(t *testing.T) {
	if got := CosineTF("", ""); got != 0 {
		t.Fatalf(`CosineTF("","") = %v, want 0`, got)
	}
}

func TestCosineTFIdentical(t *testing.T) {
	if got := CosineTF("hello world", "hello world"); got < 0.999 {
		t.Fatalf("CosineTF identical = %v, want ~1.0", got)
	}
}

func TestFontDistributionSimilarityEmpty(t *testing.T) {
	if got := FontDistributionSimilarity(nil, nil); got != 1.0 {
		t.Fatalf("FontDistributionSimilarity(empty,empty) = %v, want 1.0", got)
	}
}

func TestFontDistributionSimilarityIdentical(t *testing.T) {
	dist := map[string]int{"Arial": 3, "Helvetica": 1}
	if got := FontDistributionSimilarity(dist, dist); got != 1.0 {
		t.Fatalf("FontDistributionSimilarity identical = %v, want 1.0", got)
	}
}

func TestHistogramDistanceIdentical(t *testing.T) {
	pos := []float64{10, 20, 30, 400, 500}
	if got := HistogramDistance(pos, pos); got != 1.0 {
		t.Fatalf("HistogramDistance identical = %v, want 1.0", got)
	}
}

func TestAllSimilaritiesInUnitRange(t *testing.T) {
	fns := []float64{
		Jaccard(Keywords("abc def"), Keywords("def ghi")),
		NgramSimilarity("hello world", "hallo word"),
		EditSimilarity("hello world", "hallo word"),
		CosineTF("hello world", "hallo word"),
		FontDistributionSimilarity(map[string]int{"A": 2}, map[string]int{"A": 1, "B": 3}),
		HistogramDistance([]float64{1, 2, 3}, []float64{4, 5, 6}),
	}
	for i, v := range fns {
		if v < 0 || v > 1 {
			t.Errorf("case %d: value %v out of [0,1]", i, v)
		}
	}
}
