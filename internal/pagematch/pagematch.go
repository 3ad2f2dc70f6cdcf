// Package pagematch aligns pages within one matched document pair using
// a three-pass, threshold-staged greedy assignment (§4.5).
package pagematch

import (
	"sort"

	"github.com/guraa/pdfcompare/internal/fingerprint"
	"github.com/guraa/pdfcompare/internal/similarity"
)

// Weights are the §4.5 score weights (Config.Weights).
type Weights struct {
	Text       float64
	Structure  float64
	Style      float64
	Image      float64
	Positional float64
}

// DefaultWeights matches the constants §9 commits to.
func DefaultWeights() Weights {
	return Weights{Text: 0.35, Structure: 0.25, Style: 0.15, Image: 0.15, Positional: 0.10}
}

// Thresholds are the three greedy-pass cutoffs (§4.5).
type Thresholds struct {
	High, Medium, Low float64
}

// DefaultThresholds matches the constants §9 commits to.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.95, Medium: 0.85, Low: 0.75}
}

// Pair is a matched (or one-sided) page pairing. Exactly one of
// BaseIndex/CompareIndex may be -1, never both.
type Pair struct {
	BaseIndex    int
	CompareIndex int
	Similarity   float64
}

// Match scores every (base page, compare page) combination and assigns
// pairs across three greedy passes at decreasing thresholds, then
// carries over any remainder as one-sided pairs (§4.5).
func Match(base, compare []fingerprint.Page, w Weights, th Thresholds) []Pair {
	nb, nc := len(base), len(compare)
	scores := make([][]float64, nb)
	for i := range scores {
		scores[i] = make([]float64, nc)
		for j := range scores[i] {
			scores[i][j] = score(base[i], compare[j], w, nb, nc)
		}
	}

	baseUsed := make([]bool, nb)
	compareUsed := make([]bool, nc)
	var pairs []Pair

	for _, cutoff := range []float64{th.High, th.Medium, th.Low} {
		type cand struct {
			i, j  int
			score float64
		}
		var cands []cand
		for i := 0; i < nb; i++ {
			if baseUsed[i] {
				continue
			}
			for j := 0; j < nc; j++ {
				if compareUsed[j] {
					continue
				}
				if scores[i][j] >= cutoff {
					cands = append(cands, cand{i, j, scores[i][j]})
				}
			}
		}
		sort.Slice(cands, func(a, b int) bool { return cands[a].score > cands[b].score })
		for _, c := range cands {
			if baseUsed[c.i] || compareUsed[c.j] {
				continue
			}
			baseUsed[c.i] = true
			compareUsed[c.j] = true
			pairs = append(pairs, Pair{BaseIndex: c.i, CompareIndex: c.j, Similarity: c.score})
		}
	}

	var baseOnly, compareOnly []Pair
	for i := 0; i < nb; i++ {
		if !baseUsed[i] {
			baseOnly = append(baseOnly, Pair{BaseIndex: i, CompareIndex: -1})
		}
	}
	for j := 0; j < nc; j++ {
		if !compareUsed[j] {
			compareOnly = append(compareOnly, Pair{BaseIndex: -1, CompareIndex: j})
		}
	}

	// Output order (§4.5): matched-and-base-bearing first by base index,
	// then base-only, then compare-only by compare index.
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].BaseIndex < pairs[b].BaseIndex })
	sort.Slice(baseOnly, func(a, b int) bool { return baseOnly[a].BaseIndex < baseOnly[b].BaseIndex })
	sort.Slice(compareOnly, func(a, b int) bool { return compareOnly[a].CompareIndex < compareOnly[b].CompareIndex })

	out := make([]Pair, 0, nb+nc)
	out = append(out, pairs...)
	out = append(out, baseOnly...)
	out = append(out, compareOnly...)
	return out
}

func score(b, c fingerprint.Page, w Weights, totalBase, totalCompare int) float64 {
	var base float64
	if b.TextHash != 0 && c.TextHash != 0 && b.TextHash == c.TextHash {
		base = 1.0
	} else {
		text := 0.5*similarity.Jaccard(b.Keywords, c.Keywords) +
			0.3*similarity.NgramSimilarity(b.NormalizedText, c.NormalizedText) +
			0.2*similarity.EditSimilarity(b.NormalizedText, c.NormalizedText)

		structure := structureScore(b, c)
		style := 0.0
		if len(b.FontDistribution) > 0 && len(c.FontDistribution) > 0 {
			style = similarity.FontDistributionSimilarity(b.FontDistribution, c.FontDistribution)
		}
		image := imageScore(b, c)

		base = w.Text*text + w.Structure*structure + w.Style*style + w.Image*image
	}

	if totalBase > 0 && totalCompare > 0 {
		posDelta := absf(float64(b.PageIndex)/float64(totalBase) - float64(c.PageIndex)/float64(totalCompare))
		positional := 1 - posDelta
		base = base*(1-w.Positional) + positional*w.Positional
	}
	return clamp01(base)
}

func structureScore(b, c fingerprint.Page) float64 {
	var sum float64
	var n int
	if len(b.FontDistribution) > 0 || len(c.FontDistribution) > 0 {
		sum += similarity.FontDistributionSimilarity(b.FontDistribution, c.FontDistribution)
		n++
	}
	if b.ElementCount > 0 || c.ElementCount > 0 {
		sum += elementCountRatio(b.ElementCount, c.ElementCount)
		n++
	}
	if len(b.YPositions) > 0 || len(c.YPositions) > 0 {
		sum += similarity.HistogramDistance(b.YPositions, c.YPositions)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func elementCountRatio(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return 0
	}
	return float64(lo) / float64(hi)
}

func imageScore(b, c fingerprint.Page) float64 {
	if !b.HasImages && !c.HasImages {
		return 1
	}
	if b.HasImages && c.HasImages {
		return elementCountRatio(b.ImageCount, c.ImageCount)
	}
	return 0
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
