package pdfcompare

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/guraa/pdfcompare/internal/boundary"
	"github.com/guraa/pdfcompare/internal/diffdetect"
	"github.com/guraa/pdfcompare/internal/docmatch"
	"github.com/guraa/pdfcompare/internal/fingerprint"
	"github.com/guraa/pdfcompare/internal/pagematch"
)

// RunContext carries the per-comparison cooperative-cancellation flag
// and progress sink an Engine.Compare call reports through (§4.7).
type RunContext struct {
	Ctx      context.Context
	Cancel   Canceller
	Progress ProgressSink
}

func (r RunContext) cancelled() bool {
	return r.Cancel != nil && r.Cancel.Cancelled()
}

func (r RunContext) report(phase string, progress, completedOps, totalOps int) {
	if r.Progress != nil {
		r.Progress.OnProgress(phase, progress, completedOps, totalOps)
	}
}

// Engine runs one comparison end to end: fingerprinting, boundary
// detection, sub-document matching, page matching, and per-pair
// difference detection (§4.7). It holds no mutable state between calls
// and is safe for concurrent use.
type Engine struct {
	cfg      Config
	renderer docmatch.Renderer
	log      *zap.Logger
}

// NewEngine builds an Engine from cfg. renderer may be nil, in which
// case document matching relies on text similarity alone (§4.4).
func NewEngine(cfg Config, renderer docmatch.Renderer, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, renderer: renderer, log: log}
}

// Compare runs the full pipeline over base and compare and returns the
// assembled ComparisonResult. It fails only when the run is cancelled;
// per-page detector work does not abort the run (§4.7, §7).
func (e *Engine) Compare(rc RunContext, base, compare *Document) (*ComparisonResult, error) {
	if rc.Ctx == nil {
		rc.Ctx = context.Background()
	}
	e.log.Debug("comparison starting",
		zap.String("base_document_id", base.ID),
		zap.String("compare_document_id", compare.ID),
		zap.Int("base_pages", base.PageCount),
		zap.Int("compare_pages", compare.PageCount),
	)
	result := &ComparisonResult{
		DifferencesByPage:   make(map[string][]Difference),
		MetadataDifferences: make(map[string]MetadataDifference),
	}

	rc.report("Loading documents", 5, 0, 1)
	baseFps := buildFingerprints(base, SourceBase)
	compareFps := buildFingerprints(compare, SourceCompare)
	rc.report("Loading documents", 15, 1, 1)

	if rc.cancelled() {
		return nil, newErr(ErrCancelled, "cancelled during fingerprinting", nil)
	}

	rc.report("Splitting documents", 20, 0, 1)
	baseBoundaryRanges := boundary.Detect(base.PageText)
	compareBoundaryRanges := boundary.Detect(compare.PageText)
	baseBoundaries := fromBoundaryRanges(baseBoundaryRanges)
	compareBoundaries := fromBoundaryRanges(compareBoundaryRanges)
	rc.report("Splitting documents", 25, 1, 1)

	if rc.cancelled() {
		return nil, newErr(ErrCancelled, "cancelled during boundary detection", nil)
	}

	rc.report("Matching documents", 30, 0, 1)
	docPairsRaw := docmatch.Match(
		rc.Ctx,
		base.PageText, compare.PageText,
		baseBoundaryRanges, compareBoundaryRanges,
		pageImageSource{base}, pageImageSource{compare},
		e.renderer,
		e.cfg.TextThreshold,
		e.cfg.MaxSamplePages,
	)
	rc.report("Matching documents", 40, 1, 1)

	var allPagePairs []PagePair
	// docPairOf[i] and mappingIdxOf[i] locate, for the i-th entry of
	// allPagePairs, which DocumentPair and which of its PageMappings it
	// feeds back into once per-page diff counts are known.
	var docPairOf, mappingIdxOf []int
	totalPairs := len(docPairsRaw)
	for idx, raw := range docPairsRaw {
		if rc.cancelled() {
			return nil, newErr(ErrCancelled, "cancelled during page matching", nil)
		}
		dp := toDocumentPair(raw, idx, baseBoundaries, compareBoundaries)

		if dp.Matched {
			basePages := slicePages(baseFps, dp.BaseRange.StartPage, dp.BaseRange.EndPage)
			comparePages := slicePages(compareFps, dp.CompareRange.StartPage, dp.CompareRange.EndPage)
			pagePairsRaw := pagematch.Match(
				toFingerprintPages(basePages), toFingerprintPages(comparePages),
				toMatcherWeights(e.cfg.Weights), toThresholds(e.cfg),
			)

			var docSim float64
			var sumWeighted, sumPages float64
			for mi, pr := range pagePairsRaw {
				pp := toPagePairFromSlices(pr, basePages, comparePages)
				allPagePairs = append(allPagePairs, pp)
				docPairOf = append(docPairOf, idx)
				mappingIdxOf = append(mappingIdxOf, mi)
				dp.PageMappings = append(dp.PageMappings, pageMapping(pp))
				if pp.Matched() {
					sumWeighted += pp.Similarity
					sumPages++
				}
			}
			if sumPages > 0 {
				docSim = sumWeighted / sumPages
			}
			dp.Similarity = docSim
		}
		result.DocumentPairs = append(result.DocumentPairs, dp)

		progress := 40 + (idx+1)*30/maxInt(totalPairs, 1)
		rc.report("Comparing", progress, idx+1, totalPairs)
	}
	result.PagePairs = allPagePairs

	if err := e.detectDifferences(rc, result, base, compare); err != nil {
		return nil, err
	}

	e.diffMetadata(result, base, compare)
	e.tallyPerPairCounts(result, docPairOf, mappingIdxOf)
	e.aggregate(result)
	e.overallSimilarity(result)

	rc.report("Completed", 100, totalPairs, totalPairs)
	e.log.Debug("comparison finished",
		zap.Int("differences_total", result.Summary.Total),
		zap.Float64("overall_similarity", result.OverallSimilarity),
	)
	return result, nil
}

// detectDifferences runs C6 over every matched PagePair in parallel, with
// at most runtime.NumCPU() pairs in flight at once (§4.7 step 5, §5).
func (e *Engine) detectDifferences(rc RunContext, result *ComparisonResult, base, compare *Document) error {
	type job struct {
		key string
		pp  PagePair
	}
	var jobs []job
	for i, pp := range result.PagePairs {
		if !pp.Matched() {
			continue
		}
		jobs = append(jobs, job{key: pagePairKey(i), pp: pp})
	}

	diffsByKey := make(map[string][]Difference, len(jobs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(rc.Ctx)
	g.SetLimit(runtime.NumCPU())
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if rc.cancelled() {
				return newErr(ErrCancelled, "cancelled before detector invocation", nil)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			diffs := e.detectPage(base, compare, j.pp)
			mu.Lock()
			diffsByKey[j.key] = diffs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if rc.cancelled() {
			return newErr(ErrCancelled, "run cancelled", err)
		}
		return newErr(ErrInternal, "detector batch failed", err)
	}

	for k, v := range diffsByKey {
		result.DifferencesByPage[k] = v
	}
	return nil
}

func (e *Engine) detectPage(base, compare *Document, pp PagePair) []Difference {
	var diffs []Difference

	baseIdx, compareIdx := -1, -1
	if pp.BaseFingerprint != nil {
		baseIdx = pp.BaseFingerprint.PageIndex
	}
	if pp.CompareFingerprint != nil {
		compareIdx = pp.CompareFingerprint.PageIndex
	}

	baseText, compareText := "", ""
	if baseIdx >= 0 && baseIdx < len(base.PageText) {
		baseText = base.PageText[baseIdx]
	}
	if compareIdx >= 0 && compareIdx < len(compare.PageText) {
		compareText = compare.PageText[compareIdx]
	}
	for _, tc := range diffdetect.DiffLines(baseText, compareText) {
		diffs = append(diffs, Difference{
			Header: Header{
				ID:         diffdetect.NewDiffID(),
				Kind:       DiffText,
				ChangeType: changeTypeFromDetector(tc.ChangeType),
				Severity:   severityFromDetector(diffdetect.ClassifyTextSeverity(tc)),
				BasePage:   pageOrNil(baseIdx),
				ComparePage: pageOrNil(compareIdx),
			},
			Text: &TextDifference{BaseText: tc.BaseText, CompareText: tc.CompareText, LineNumber: tc.LineNumber},
		})
	}

	var baseFonts, compareFonts []FontInfo
	if baseIdx >= 0 && baseIdx < len(base.FontTable) {
		baseFonts = base.FontTable[baseIdx]
	}
	if compareIdx >= 0 && compareIdx < len(compare.FontTable) {
		compareFonts = compare.FontTable[compareIdx]
	}
	fontK := 0
	for _, fc := range memoizedDiffFonts(toDiffFonts(baseFonts), toDiffFonts(compareFonts)) {
		pos := diffdetect.FontDiffPosition(pageWidth(base, baseIdx, compare, compareIdx), pageHeight(base, baseIdx, compare, compareIdx), fontK)
		fontK++
		diffs = append(diffs, Difference{
			Header: Header{
				ID:          diffdetect.NewDiffID(),
				Kind:        DiffFont,
				ChangeType:  changeTypeFromDetector(fc.ChangeType),
				Severity:    severityFromDetector(diffdetect.ClassifyFontSeverity(fc)),
				BasePage:    pageOrNil(baseIdx),
				ComparePage: pageOrNil(compareIdx),
				Bounds:      &Rect{X: pos.X, Y: pos.Y, W: pos.W, H: pos.H},
			},
			Font: &FontDifference{BaseFont: fromDiffFont(fc.BaseFont), CompareFont: fromDiffFont(fc.CompareFont), ChangedAttrs: fc.ChangedAttrs},
		})
	}

	var baseImages, compareImages []PageImage
	if baseIdx >= 0 && baseIdx < len(base.PageImages) {
		baseImages = base.PageImages[baseIdx]
	}
	if compareIdx >= 0 && compareIdx < len(compare.PageImages) {
		compareImages = compare.PageImages[compareIdx]
	}
	for _, ic := range diffdetect.DiffImages(toDiffImages(baseImages), toDiffImages(compareImages)) {
		diffs = append(diffs, Difference{
			Header: Header{
				ID:          diffdetect.NewDiffID(),
				Kind:        DiffImage,
				ChangeType:  changeTypeFromDetector(ic.ChangeType),
				Severity:    Minor,
				BasePage:    pageOrNil(baseIdx),
				ComparePage: pageOrNil(compareIdx),
				Bounds:      imageBounds(ic),
			},
			Image: &ImageDifference{BaseImage: fromDiffImage(ic.BaseImage), CompareImage: fromDiffImage(ic.CompareImage)},
		})
	}

	var baseElems, compareElems []TextElement
	if baseIdx >= 0 && baseIdx < len(base.TextElements) {
		baseElems = base.TextElements[baseIdx]
	}
	if compareIdx >= 0 && compareIdx < len(compare.TextElements) {
		compareElems = compare.TextElements[compareIdx]
	}
	for _, sc := range diffdetect.DiffStyles(toDiffRuns(baseElems), toDiffRuns(compareElems)) {
		diffs = append(diffs, Difference{
			Header: Header{
				ID:          diffdetect.NewDiffID(),
				Kind:        DiffStyle,
				ChangeType:  Modified,
				Severity:    Minor,
				BasePage:    pageOrNil(baseIdx),
				ComparePage: pageOrNil(compareIdx),
				Bounds:      styleBounds(sc),
			},
			Style: &StyleDifference{BaseElement: fromDiffRun(sc.BaseRun), CompareElement: fromDiffRun(sc.CompareRun), ChangedAttrs: sc.ChangedAttrs},
		})
	}

	return diffs
}

func (e *Engine) diffMetadata(result *ComparisonResult, base, compare *Document) {
	for _, mc := range diffdetect.DiffMetadata(base.Metadata, compare.Metadata) {
		result.MetadataDifferences[mc.Key] = MetadataDifference{Key: mc.Key, BaseValue: mc.BaseValue, CompareValue: mc.CompareValue}
	}
}

// tallyPerPairCounts folds each page pair's detected differences back
// into its owning DocumentPair.Counts and PageMapping.DiffCount.
func (e *Engine) tallyPerPairCounts(result *ComparisonResult, docPairOf, mappingIdxOf []int) {
	for i := range result.PagePairs {
		diffs := result.DifferencesByPage[pagePairKey(i)]
		if len(diffs) == 0 {
			continue
		}
		dpIdx, mIdx := docPairOf[i], mappingIdxOf[i]
		dp := &result.DocumentPairs[dpIdx]
		for _, d := range diffs {
			switch d.Kind {
			case DiffText:
				dp.Counts.Text++
			case DiffImage:
				dp.Counts.Image++
			case DiffFont:
				dp.Counts.Font++
			case DiffStyle:
				dp.Counts.Style++
			}
		}
		dp.Counts.Total = dp.Counts.Text + dp.Counts.Image + dp.Counts.Font + dp.Counts.Style
		dp.PageMappings[mIdx].DiffCount = len(diffs)
	}
}

// aggregate sums differences by kind (§4.7 step 7).
func (e *Engine) aggregate(result *ComparisonResult) {
	var s Summary
	for _, diffs := range result.DifferencesByPage {
		for _, d := range diffs {
			switch d.Kind {
			case DiffText:
				s.Text++
			case DiffImage:
				s.Image++
			case DiffFont:
				s.Font++
			case DiffStyle:
				s.Style++
			}
		}
	}
	s.Total = s.Text + s.Image + s.Font + s.Style + len(result.MetadataDifferences)
	result.Summary = s
}

// overallSimilarity computes the weighted mean of matched-pair
// similarities, weighted by matched pages (§4.7 step 8).
func (e *Engine) overallSimilarity(result *ComparisonResult) {
	var sum, count float64
	for _, pp := range result.PagePairs {
		if pp.Matched() {
			sum += pp.Similarity
			count++
		}
	}
	if count == 0 {
		if len(result.PagePairs) == 0 {
			result.OverallSimilarity = 1.0
		}
		return
	}
	result.OverallSimilarity = sum / count
}

func pageMapping(pp PagePair) PageMapping {
	pm := PageMapping{Similarity: pp.Similarity}
	if pp.BaseFingerprint != nil {
		p := pp.BaseFingerprint.PageIndex
		pm.BasePage = &p
	}
	if pp.CompareFingerprint != nil {
		p := pp.CompareFingerprint.PageIndex
		pm.ComparePage = &p
	}
	return pm
}

func pagePairKey(i int) string { return fmt.Sprintf("pair-%d", i) }

func pageOrNil(idx int) *int {
	if idx < 0 {
		return nil
	}
	v := idx
	return &v
}

func slicePages(fps []PageFingerprint, start, end int) []PageFingerprint {
	if start < 0 {
		start = 0
	}
	if end >= len(fps) {
		end = len(fps) - 1
	}
	if start > end {
		return nil
	}
	return fps[start : end+1]
}

func toFingerprintPages(fps []PageFingerprint) []fingerprint.Page {
	out := make([]fingerprint.Page, len(fps))
	for i, f := range fps {
		out[i] = toFingerprintPage(f)
	}
	return out
}

func toPagePairFromSlices(p pagematch.Pair, basePages, comparePages []PageFingerprint) PagePair {
	pp := PagePair{Similarity: p.Similarity}
	if p.BaseIndex >= 0 {
		f := basePages[p.BaseIndex]
		pp.BaseFingerprint = &f
	}
	if p.CompareIndex >= 0 {
		f := comparePages[p.CompareIndex]
		pp.CompareFingerprint = &f
	}
	return pp
}

func pageWidth(base *Document, baseIdx int, compare *Document, compareIdx int) float64 {
	if r := firstBounds(base, baseIdx); r != nil {
		return r.X + r.W
	}
	if r := firstBounds(compare, compareIdx); r != nil {
		return r.X + r.W
	}
	return 612 // US Letter default width in points
}

func pageHeight(base *Document, baseIdx int, compare *Document, compareIdx int) float64 {
	if r := firstBounds(base, baseIdx); r != nil {
		return r.Y + r.H
	}
	if r := firstBounds(compare, compareIdx); r != nil {
		return r.Y + r.H
	}
	return 792 // US Letter default height in points
}

func firstBounds(doc *Document, idx int) *Rect {
	if doc == nil || idx < 0 || idx >= len(doc.TextElements) {
		return nil
	}
	for _, e := range doc.TextElements[idx] {
		return &e.Bounds
	}
	return nil
}

func imageBounds(ic diffdetect.ImageChange) *Rect {
	if ic.BaseImage != nil && ic.BaseImage.HasBounds {
		b := ic.BaseImage.Bounds
		return &Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	}
	if ic.CompareImage != nil && ic.CompareImage.HasBounds {
		b := ic.CompareImage.Bounds
		return &Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	}
	return nil
}

func styleBounds(sc diffdetect.StyleChange) *Rect {
	if sc.BaseRun != nil {
		b := sc.BaseRun.Bounds
		return &Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	}
	if sc.CompareRun != nil {
		b := sc.CompareRun.Bounds
		return &Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// pageImageSource adapts a Document to docmatch.PageImagePaths. Real
// DocumentStore implementations expose rendered bitmaps out of band; the
// core only needs a path to hand to the Renderer.
type pageImageSource struct {
	doc *Document
}

func (s pageImageSource) ImagePath(pageIndex int) (string, bool) {
	if s.doc == nil || pageIndex < 0 || pageIndex >= len(s.doc.PageImages) {
		return "", false
	}
	return fmt.Sprintf("%s#page=%d", s.doc.ID, pageIndex), true
}
