package docmatch

import (
	"context"
	"testing"

	"github.com/guraa/pdfcompare/internal/boundary"
)

type fakePages struct{}

func (fakePages) ImagePath(int) (string, bool) { return "", false }

func TestMatchIdenticalTextFullyMatches(t *testing.T) {
	baseTexts := []string{"hello world this is page one", "second page body text here"}
	compareTexts := []string{"hello world this is page one", "second page body text here"}
	bb := []boundary.Range{{Start: 0, End: 1}}
	cb := []boundary.Range{{Start: 0, End: 1}}

	pairs := Match(context.Background(), baseTexts, compareTexts, bb, cb, fakePages{}, fakePages{}, nil, 0.5, 3)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].BaseIndex != 0 || pairs[0].CompareIndex != 0 {
		t.Fatalf("expected base/compare 0<->0, got %+v", pairs[0])
	}
	if pairs[0].Similarity <= 0.5 {
		t.Fatalf("expected similarity above threshold, got %v", pairs[0].Similarity)
	}
}

func TestMatchCompletelyDifferentTextUnmatched(t *testing.T) {
	baseTexts := []string{"alpha beta gamma delta epsilon zeta"}
	compareTexts := []string{"totally unrelated content about spacecraft engineering"}
	bb := []boundary.Range{{Start: 0, End: 0}}
	cb := []boundary.Range{{Start: 0, End: 0}}

	pairs := Match(context.Background(), baseTexts, compareTexts, bb, cb, fakePages{}, fakePages{}, nil, 0.5, 3)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 one-sided pairs, got %d: %+v", len(pairs), pairs)
	}
	for _, p := range pairs {
		if p.BaseIndex >= 0 && p.CompareIndex >= 0 {
			t.Fatalf("did not expect a matched pair: %+v", p)
		}
	}
}

func TestMatchEachSideUsedAtMostOnce(t *testing.T) {
	baseTexts := []string{"doc a body text", "doc b body text"}
	compareTexts := []string{"doc a body text", "doc b body text"}
	bb := []boundary.Range{{Start: 0, End: 0}, {Start: 1, End: 1}}
	cb := []boundary.Range{{Start: 0, End: 0}, {Start: 1, End: 1}}

	pairs := Match(context.Background(), baseTexts, compareTexts, bb, cb, fakePages{}, fakePages{}, nil, 0.5, 3)
	seenBase := map[int]bool{}
	seenCompare := map[int]bool{}
	for _, p := range pairs {
		if p.BaseIndex >= 0 {
			if seenBase[p.BaseIndex] {
				t.Fatalf("base index %d used twice", p.BaseIndex)
			}
			seenBase[p.BaseIndex] = true
		}
		if p.CompareIndex >= 0 {
			if seenCompare[p.CompareIndex] {
				t.Fatalf("compare index %d used twice", p.CompareIndex)
			}
			seenCompare[p.CompareIndex] = true
		}
	}
}
