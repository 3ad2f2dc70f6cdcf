// Package docmatch pairs logical sub-documents across two PDFs using
// combined text and sampled-visual similarity (§4.4).
package docmatch

import (
	"context"
	"sort"

	"github.com/guraa/pdfcompare/internal/boundary"
	"github.com/guraa/pdfcompare/internal/similarity"
)

// Renderer samples visual dissimilarity between two already-rendered
// page bitmaps (0 = identical, 1 = completely different). It is the
// "external renderer" §4.4 refers to; the core never rasterizes PDFs
// itself.
type Renderer interface {
	Compare(ctx context.Context, basePagePath, comparePagePath string) (float64, error)
}

// PageImagePaths resolves the rendered-bitmap path for a page, matching
// the DocumentStore.page_image_path capability (§6).
type PageImagePaths interface {
	ImagePath(pageIndex int) (string, bool)
}

// Pair is a matched (or one-sided) pairing of sub-documents.
type Pair struct {
	BaseIndex    int // index into baseBoundaries, -1 if unmatched
	CompareIndex int // index into compareBoundaries, -1 if unmatched
	Similarity   float64
}

const textSimFloor = 0.25 // TEXT_THRESHOLD/2, the early-return cutoff (§4.4)

// Match pairs baseBoundaries against compareBoundaries. textThreshold is
// Config.TextThreshold (§4.4, default 0.5); maxSamplePages bounds the
// visual sampling (§6, default 3).
func Match(
	ctx context.Context,
	baseTexts, compareTexts []string,
	baseBoundaries, compareBoundaries []boundary.Range,
	basePages, comparePages PageImagePaths,
	renderer Renderer,
	textThreshold float64,
	maxSamplePages int,
) []Pair {
	type triple struct {
		i, j       int
		similarity float64
	}

	var triples []triple
	for i, bb := range baseBoundaries {
		baseConcat := concat(baseTexts, bb)
		for j, cb := range compareBoundaries {
			compareConcat := concat(compareTexts, cb)
			sim := combinedSimilarity(ctx, baseConcat, compareConcat, bb, cb, basePages, comparePages, renderer, maxSamplePages)
			triples = append(triples, triple{i: i, j: j, similarity: sim})
		}
	}

	sort.Slice(triples, func(a, b int) bool { return triples[a].similarity > triples[b].similarity })

	baseUsed := make([]bool, len(baseBoundaries))
	compareUsed := make([]bool, len(compareBoundaries))
	var pairs []Pair
	for _, t := range triples {
		if baseUsed[t.i] || compareUsed[t.j] {
			continue
		}
		if t.similarity <= textThreshold {
			continue
		}
		baseUsed[t.i] = true
		compareUsed[t.j] = true
		pairs = append(pairs, Pair{BaseIndex: t.i, CompareIndex: t.j, Similarity: t.similarity})
	}

	for i := range baseBoundaries {
		if !baseUsed[i] {
			pairs = append(pairs, Pair{BaseIndex: i, CompareIndex: -1})
		}
	}
	for j := range compareBoundaries {
		if !compareUsed[j] {
			pairs = append(pairs, Pair{BaseIndex: -1, CompareIndex: j})
		}
	}
	return pairs
}

func concat(texts []string, r boundary.Range) string {
	var out string
	for i := r.Start; i <= r.End && i < len(texts); i++ {
		if i > r.Start {
			out += " "
		}
		out += texts[i]
	}
	return out
}

func combinedSimilarity(
	ctx context.Context,
	baseText, compareText string,
	bb, cb boundary.Range,
	basePages, comparePages PageImagePaths,
	renderer Renderer,
	maxSamplePages int,
) float64 {
	textSim := similarity.CosineTF(baseText, compareText)
	if textSim < textSimFloor {
		return textSim
	}

	visualSim := sampleVisualSimilarity(ctx, bb, cb, basePages, comparePages, renderer, maxSamplePages)
	return 0.7*textSim + 0.3*visualSim
}

func sampleVisualSimilarity(
	ctx context.Context,
	bb, cb boundary.Range,
	basePages, comparePages PageImagePaths,
	renderer Renderer,
	maxSamplePages int,
) float64 {
	if renderer == nil {
		return 0
	}
	basePageCount := bb.End - bb.Start + 1
	comparePageCount := cb.End - cb.Start + 1
	samples := maxSamplePages
	if basePageCount < samples {
		samples = basePageCount
	}
	if comparePageCount < samples {
		samples = comparePageCount
	}
	if samples <= 0 {
		return 0
	}

	var dissimilaritySum float64
	ok := 0
	for s := 0; s < samples; s++ {
		basePage := evenlySpaced(bb.Start, bb.End, s, samples)
		comparePage := evenlySpaced(cb.Start, cb.End, s, samples)

		basePath, haveBase := basePages.ImagePath(basePage)
		comparePath, haveCompare := comparePages.ImagePath(comparePage)
		if !haveBase || !haveCompare {
			continue
		}
		d, err := renderer.Compare(ctx, basePath, comparePath)
		if err != nil {
			continue
		}
		dissimilaritySum += d
		ok++
	}
	if ok == 0 {
		return 0
	}
	return 1 - dissimilaritySum/float64(ok)
}

func evenlySpaced(start, end, i, total int) int {
	if total <= 1 {
		return start
	}
	span := end - start
	return start + (span*i)/(total-1)
}
