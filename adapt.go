package pdfcompare

import (
	"github.com/guraa/pdfcompare/internal/boundary"
	"github.com/guraa/pdfcompare/internal/diffdetect"
	"github.com/guraa/pdfcompare/internal/docmatch"
	"github.com/guraa/pdfcompare/internal/fingerprint"
	"github.com/guraa/pdfcompare/internal/pagematch"
)

// This file adapts between the root package's public data model and the
// mirrored types each internal/ package defines to stay free of an
// import cycle back into this package.

func toFingerprintPage(p PageFingerprint) fingerprint.Page {
	return fingerprint.Page{
		PageIndex:        p.PageIndex,
		NormalizedText:   p.NormalizedText,
		TextHash:         p.TextHash,
		Keywords:         p.Keywords,
		FontDistribution: p.FontDistribution,
		ElementCount:     p.ElementCount,
		YPositions:       p.YPositions,
		HasImages:        p.HasImages,
		ImageCount:       p.ImageCount,
	}
}

func fromFingerprintPage(p fingerprint.Page, source PageSource) PageFingerprint {
	return PageFingerprint{
		Source:           source,
		PageIndex:        p.PageIndex,
		NormalizedText:   p.NormalizedText,
		TextHash:         p.TextHash,
		Keywords:         p.Keywords,
		FontDistribution: p.FontDistribution,
		ElementCount:     p.ElementCount,
		YPositions:       p.YPositions,
		HasImages:        p.HasImages,
		ImageCount:       p.ImageCount,
	}
}

func buildFingerprints(doc *Document, source PageSource) []PageFingerprint {
	out := make([]PageFingerprint, doc.PageCount)
	for i := 0; i < doc.PageCount; i++ {
		var fontNames []string
		var yPositions []float64
		imageCount := 0
		if i < len(doc.FontTable) {
			for _, f := range doc.FontTable[i] {
				fontNames = append(fontNames, f.Family)
			}
		}
		if i < len(doc.TextElements) {
			for _, e := range doc.TextElements[i] {
				if e.Text == "" {
					continue
				}
				yPositions = append(yPositions, e.Bounds.Y)
			}
		}
		if i < len(doc.PageImages) {
			imageCount = len(doc.PageImages[i])
		}
		text := ""
		if i < len(doc.PageText) {
			text = doc.PageText[i]
		}
		fp := fingerprint.Build(i, text, fontNames, yPositions, imageCount)
		out[i] = fromFingerprintPage(fp, source)
	}
	return out
}

func toBoundaryRanges(bs []DocumentBoundary) []boundary.Range {
	out := make([]boundary.Range, len(bs))
	for i, b := range bs {
		out[i] = boundary.Range{Start: b.StartPage, End: b.EndPage}
	}
	return out
}

func fromBoundaryRanges(rs []boundary.Range) []DocumentBoundary {
	out := make([]DocumentBoundary, len(rs))
	for i, r := range rs {
		out[i] = DocumentBoundary{StartPage: r.Start, EndPage: r.End}
	}
	return out
}

func toMatcherWeights(w MatcherWeights) pagematch.Weights {
	return pagematch.Weights{Text: w.Text, Structure: w.Structure, Style: w.Style, Image: w.Image, Positional: w.Positional}
}

func toThresholds(c Config) pagematch.Thresholds {
	return pagematch.Thresholds{High: c.HighThreshold, Medium: c.MediumThreshold, Low: c.LowThreshold}
}

func toDocumentPair(p docmatch.Pair, idx int, baseBoundaries, compareBoundaries []DocumentBoundary) DocumentPair {
	dp := DocumentPair{PairIndex: idx, Similarity: p.Similarity}
	if p.BaseIndex >= 0 {
		b := baseBoundaries[p.BaseIndex]
		dp.BaseRange = &b
	}
	if p.CompareIndex >= 0 {
		c := compareBoundaries[p.CompareIndex]
		dp.CompareRange = &c
	}
	dp.Matched = dp.BaseRange != nil && dp.CompareRange != nil
	return dp
}

func toDiffFonts(fonts []FontInfo) []diffdetect.Font {
	out := make([]diffdetect.Font, len(fonts))
	for i, f := range fonts {
		out[i] = diffdetect.Font{Name: f.Name, Family: f.Family, Bold: f.Bold, Italic: f.Italic, Embedded: f.Embedded, SubsetPrefix: f.SubsetPrefix}
	}
	return out
}

func fromDiffFont(f *diffdetect.Font) *FontInfo {
	if f == nil {
		return nil
	}
	return &FontInfo{Name: f.Name, Family: f.Family, Bold: f.Bold, Italic: f.Italic, Embedded: f.Embedded, SubsetPrefix: f.SubsetPrefix}
}

func toDiffImages(images []PageImage) []diffdetect.Image {
	out := make([]diffdetect.Image, len(images))
	for i, img := range images {
		di := diffdetect.Image{Index: img.Index, Format: img.Format, Width: img.Width, Height: img.Height, BytesDigest: img.BytesDigest}
		if img.Bounds != nil {
			di.HasBounds = true
			di.Bounds = diffdetect.Box{X: img.Bounds.X, Y: img.Bounds.Y, W: img.Bounds.W, H: img.Bounds.H}
		}
		out[i] = di
	}
	return out
}

func fromDiffImage(img *diffdetect.Image) *PageImage {
	if img == nil {
		return nil
	}
	out := &PageImage{Index: img.Index, Format: img.Format, Width: img.Width, Height: img.Height, BytesDigest: img.BytesDigest}
	if img.HasBounds {
		r := Rect{X: img.Bounds.X, Y: img.Bounds.Y, W: img.Bounds.W, H: img.Bounds.H}
		out.Bounds = &r
	}
	return out
}

func toDiffRuns(elems []TextElement) []diffdetect.Run {
	out := make([]diffdetect.Run, len(elems))
	for i, e := range elems {
		out[i] = diffdetect.Run{
			Text:     e.Text,
			Bounds:   diffdetect.Box{X: e.Bounds.X, Y: e.Bounds.Y, W: e.Bounds.W, H: e.Bounds.H},
			Font:     e.Font,
			FontSize: e.FontSize,
			Bold:     e.Bold,
			Italic:   e.Italic,
			Color:    e.Color,
		}
	}
	return out
}

func fromDiffRun(r *diffdetect.Run) *TextElement {
	if r == nil {
		return nil
	}
	return &TextElement{
		Text:     r.Text,
		Bounds:   Rect{X: r.Bounds.X, Y: r.Bounds.Y, W: r.Bounds.W, H: r.Bounds.H},
		Font:     r.Font,
		FontSize: r.FontSize,
		Bold:     r.Bold,
		Italic:   r.Italic,
		Color:    r.Color,
	}
}

func changeTypeFromDetector(ct int) ChangeType {
	switch ct {
	case diffdetect.LineAdded:
		return Added
	case diffdetect.LineDeleted:
		return Deleted
	default:
		return Modified
	}
}

func severityFromDetector(s int) Severity {
	switch s {
	case diffdetect.SeverityCosmetic:
		return Cosmetic
	case diffdetect.SeverityMajor:
		return Major
	default:
		return Minor
	}
}
