package diffdetect

import "sort"

// Run mirrors pdfcompare.TextElement, trimmed to the fields the style
// detector needs.
type Run struct {
	Text     string
	Bounds   Box
	Font     string
	FontSize float64
	Bold     bool
	Italic   bool
	Color    string
}

// StyleChange is one matched text run whose style attributes differ.
type StyleChange struct {
	BaseRun      *Run
	CompareRun   *Run
	ChangedAttrs []string
}

const styleIoUThreshold = 0.7

// DiffStyles pairs text runs by bbox IoU > 0.7 and equal text, then
// emits a StyleChange for every matched pair whose font, size, bold,
// italic, or color differ (§4.6).
func DiffStyles(base, compare []Run) []StyleChange {
	baseUsed := make([]bool, len(base))
	compareUsed := make([]bool, len(compare))

	type cand struct {
		i, j  int
		score float64
	}
	var cands []cand
	for i := range base {
		for j := range compare {
			if base[i].Text != compare[j].Text {
				continue
			}
			ov := base[i].Bounds.iou(compare[j].Bounds)
			if ov > styleIoUThreshold {
				cands = append(cands, cand{i, j, ov})
			}
		}
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].score > cands[b].score })

	var changes []StyleChange
	for _, c := range cands {
		if baseUsed[c.i] || compareUsed[c.j] {
			continue
		}
		baseUsed[c.i] = true
		compareUsed[c.j] = true
		if sc, ok := matchedStyleChange(base[c.i], compare[c.j]); ok {
			changes = append(changes, sc)
		}
	}
	return changes
}

func matchedStyleChange(base, compare Run) (StyleChange, bool) {
	var attrs []string
	if base.Font != compare.Font {
		attrs = append(attrs, "font")
	}
	if base.FontSize != compare.FontSize {
		attrs = append(attrs, "size")
	}
	if base.Bold != compare.Bold {
		attrs = append(attrs, "bold")
	}
	if base.Italic != compare.Italic {
		attrs = append(attrs, "italic")
	}
	if base.Color != compare.Color {
		attrs = append(attrs, "color")
	}
	if len(attrs) == 0 {
		return StyleChange{}, false
	}
	b, c := base, compare
	return StyleChange{BaseRun: &b, CompareRun: &c, ChangedAttrs: attrs}, true
}
