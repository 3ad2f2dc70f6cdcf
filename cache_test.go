package pdfcompare

import (
	"testing"

	"github.com/guraa/pdfcompare/internal/diffdetect"
)

func TestResultCachesPutAndGet(t *testing.T) {
	c := NewResultCaches()
	result := &ComparisonResult{
		DocumentPairs: []DocumentPair{{PairIndex: 0, PageMappings: []PageMapping{{Similarity: 1.0}}}},
	}
	c.Put("job-1", result)

	got, ok := c.Result("job-1")
	if !ok || got != result {
		t.Fatalf("expected cached result to be returned, got %v %v", got, ok)
	}
	dp, ok := c.DocumentPairs("job-1")
	if !ok || len(dp) != 1 {
		t.Fatalf("expected 1 cached document pair, got %v %v", dp, ok)
	}
	pd, ok := c.PageDetails("job-1")
	if !ok || len(pd) != 1 {
		t.Fatalf("expected 1 cached page mapping, got %v %v", pd, ok)
	}
}

func TestResultCachesInvalidateRemovesAllThreeMaps(t *testing.T) {
	c := NewResultCaches()
	c.Put("job-1", &ComparisonResult{})
	c.Invalidate("job-1")

	if _, ok := c.Result("job-1"); ok {
		t.Fatalf("expected result cache cleared")
	}
	if _, ok := c.DocumentPairs("job-1"); ok {
		t.Fatalf("expected document pairs cache cleared")
	}
	if _, ok := c.PageDetails("job-1"); ok {
		t.Fatalf("expected page details cache cleared")
	}
}

func TestResultCachesPageDetailsBoundedWithEviction(t *testing.T) {
	c := NewResultCaches()
	for i := 0; i < pageDetailsCacheSize+10; i++ {
		id := string(rune('a' + (i % 26)))
		id = id + string(rune('A'+(i/26)))
		c.Put(id, &ComparisonResult{})
	}
	if len(c.pageDetailsOrder) > pageDetailsCacheSize {
		t.Fatalf("expected page_details_cache bounded at %d, got %d", pageDetailsCacheSize, len(c.pageDetailsOrder))
	}
}

func TestFontSignatureKeyDeterministicForIdenticalOrder(t *testing.T) {
	a := FontSignatureKey([]string{"a", "b"}, []string{"c"})
	b := FontSignatureKey([]string{"a", "b"}, []string{"c"})
	if a != b {
		t.Fatalf("expected deterministic key for identical inputs")
	}
	other := FontSignatureKey([]string{"a", "b"}, []string{"d"})
	if a == other {
		t.Fatalf("expected different keys for different compare signatures")
	}
}

func TestFontSignatureKeyDiffersByOrder(t *testing.T) {
	// DiffFonts's matching is order-sensitive, so the memoizer key must
	// not normalize order: a different table order is a different key.
	forward := FontSignatureKey([]string{"a", "b"}, []string{"c"})
	reversed := FontSignatureKey([]string{"b", "a"}, []string{"c"})
	if forward == reversed {
		t.Fatalf("expected reordered base signatures to produce a different key")
	}
}

func TestFontSignatureDiffersOnBoldItalicEmbedded(t *testing.T) {
	plain := diffdetect.Font{Name: "Arial", Family: "Arial"}
	bold := diffdetect.Font{Name: "Arial", Family: "Arial", Bold: true}
	italic := diffdetect.Font{Name: "Arial", Family: "Arial", Italic: true}
	embedded := diffdetect.Font{Name: "Arial", Family: "Arial", Embedded: true}

	sigs := map[string]string{
		"plain":    fontSignature(plain),
		"bold":     fontSignature(bold),
		"italic":   fontSignature(italic),
		"embedded": fontSignature(embedded),
	}
	for a, sigA := range sigs {
		for b, sigB := range sigs {
			if a != b && sigA == sigB {
				t.Fatalf("expected distinct signatures for %q and %q, both got %q", a, b, sigA)
			}
		}
	}
}
