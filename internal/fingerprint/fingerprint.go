// Package fingerprint builds the compact per-page feature record
// (§4.2) every matcher in pdfcompare scores against.
package fingerprint

import (
	"sort"

	"github.com/zeebo/xxh3"

	"github.com/guraa/pdfcompare/internal/similarity"
)

// Page mirrors pdfcompare.PageFingerprint without importing the root
// package, avoiding an import cycle; the root package's adapt.go
// converts between the two.
type Page struct {
	PageIndex        int
	NormalizedText   string
	TextHash         int64
	Keywords         map[string]struct{}
	FontDistribution map[string]int
	ElementCount     int
	YPositions       []float64
	HasImages        bool
	ImageCount       int
}

// TextHash hashes normalized text into a stable, non-zero 64-bit value;
// 0 is reserved for "uncomputed/empty" (§4.2). xxh3 is the same hashing
// library gofulmen's pathfinder package uses for content checksums.
func TextHash(normalized string) int64 {
	if normalized == "" {
		return 0
	}
	h := xxh3.HashString(normalized)
	v := int64(h)
	if v == 0 {
		// Vanishingly unlikely, but 0 is reserved; perturb deterministically.
		v = 1
	}
	return v
}

// Build constructs one Page fingerprint from raw page inputs. Positions
// are the y-coordinates of non-empty text elements; fontNames tallies
// font table occurrences; imageCount/hasImages come directly from the
// image list (§4.2).
func Build(pageIndex int, text string, fontNames []string, yPositions []float64, imageCount int) Page {
	normalized := similarity.Normalize(text)

	dist := make(map[string]int, len(fontNames))
	for _, n := range fontNames {
		dist[n]++
	}

	sorted := append([]float64(nil), yPositions...)
	sort.Float64s(sorted)

	return Page{
		PageIndex:        pageIndex,
		NormalizedText:   normalized,
		TextHash:         TextHash(normalized),
		Keywords:         similarity.Keywords(text),
		FontDistribution: dist,
		ElementCount:     len(yPositions),
		YPositions:       sorted,
		HasImages:        imageCount > 0,
		ImageCount:       imageCount,
	}
}

// BuildAll builds one fingerprint per page in document order.
func BuildAll(pageTexts []string, fontNamesPerPage [][]string, yPositionsPerPage [][]float64, imageCounts []int) []Page {
	out := make([]Page, len(pageTexts))
	for i, text := range pageTexts {
		var fonts []string
		if i < len(fontNamesPerPage) {
			fonts = fontNamesPerPage[i]
		}
		var ys []float64
		if i < len(yPositionsPerPage) {
			ys = yPositionsPerPage[i]
		}
		var imgs int
		if i < len(imageCounts) {
			imgs = imageCounts[i]
		}
		out[i] = Build(i, text, fonts, ys, imgs)
	}
	return out
}
