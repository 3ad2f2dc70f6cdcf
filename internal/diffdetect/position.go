package diffdetect

// fontDiffHeight is the fixed row height (§4.6: 0.03·H) a font or
// metadata difference occupies when it has no source bbox of its own.
const fontDiffHeight = 0.03

// FontDiffPosition returns the page-relative bbox for the k-th
// (0-indexed) font or metadata difference on a page of size (w, h),
// per §4.6's deterministic placement formula. Coordinates are in
// display space (origin top-left); callers with bottom-left input
// flip via FlipY before reaching this package.
func FontDiffPosition(w, h float64, k int) Box {
	y := (0.1 + 0.03*float64(k)) * h
	maxY := 0.5 * h
	if y > maxY {
		y = maxY
	}
	return Box{X: 0.1 * w, Y: y, W: 0.8 * w, H: fontDiffHeight * h}
}
