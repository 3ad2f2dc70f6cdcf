package diffdetect

import (
	"sort"
	"strings"
)

// Font mirrors pdfcompare.FontInfo so this package stays free of the root
// type (avoiding an import cycle, the same reason fingerprint.Page
// mirrors pdfcompare.PageFingerprint). The root package's adapt.go
// converts between the two.
type Font struct {
	Name         string
	Family       string
	Bold         bool
	Italic       bool
	Embedded     bool
	SubsetPrefix string
}

// FontChange is one matched-or-unmatched font-table entry.
type FontChange struct {
	ChangeType   int // Added, Deleted, or LineModified reused as "Modified"
	BaseFont     *Font
	CompareFont  *Font
	ChangedAttrs []string
}

const fontMatchThreshold = 0.4

// bareName strips a "<PREFIX>+" subset prefix (§4.6) for equality tests.
func bareName(name string) string {
	if i := strings.IndexByte(name, '+'); i > 0 {
		prefix := name[:i]
		isSubsetTag := true
		for _, r := range prefix {
			if r < 'A' || r > 'Z' {
				isSubsetTag = false
				break
			}
		}
		if isSubsetTag {
			return name[i+1:]
		}
	}
	return name
}

// DiffFonts matches two pages' font tables in two stages — exact bare-name
// equality, then a scored partial match — and emits one FontChange per
// matched pair plus one per unmatched entry (§4.6).
func DiffFonts(base, compare []Font) []FontChange {
	baseUsed := make([]bool, len(base))
	compareUsed := make([]bool, len(compare))
	var changes []FontChange

	for i := range base {
		for j := range compare {
			if compareUsed[j] {
				continue
			}
			if bareName(base[i].Name) == bareName(compare[j].Name) {
				baseUsed[i] = true
				compareUsed[j] = true
				if fc, ok := matchedFontChange(base[i], compare[j]); ok {
					changes = append(changes, fc)
				}
				break
			}
		}
	}

	type cand struct {
		i, j  int
		score float64
	}
	var cands []cand
	for i := range base {
		if baseUsed[i] {
			continue
		}
		for j := range compare {
			if compareUsed[j] {
				continue
			}
			s := fontPairScore(base[i], compare[j])
			if s > fontMatchThreshold {
				cands = append(cands, cand{i, j, s})
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
		if fc, ok := matchedFontChange(base[c.i], compare[c.j]); ok {
			changes = append(changes, fc)
		}
	}

	for i := range base {
		if !baseUsed[i] {
			f := base[i]
			changes = append(changes, FontChange{ChangeType: LineDeleted, BaseFont: &f})
		}
	}
	for j := range compare {
		if !compareUsed[j] {
			f := compare[j]
			changes = append(changes, FontChange{ChangeType: LineAdded, CompareFont: &f})
		}
	}
	return changes
}

func fontPairScore(a, b Font) float64 {
	name := partialMatch(bareName(a.Name), bareName(b.Name))
	family := partialMatch(a.Family, b.Family)
	bold := 0.0
	if a.Bold == b.Bold {
		bold = 1
	}
	italic := 0.0
	if a.Italic == b.Italic {
		italic = 1
	}
	return 0.5*name + 0.3*family + 0.1*bold + 0.1*italic
}

// partialMatch returns 1 for exact equality, 0.5 for one side containing
// the other (subset containment, §4.6 "partial-containment yields half
// credit"), 0 otherwise.
func partialMatch(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.5
	}
	return 0
}

// matchedFontChange reports the changed-attribute set between two matched
// fonts, and ok=false when every tracked attribute is equal (§4.6: a
// matched pair with no differing attribute emits nothing).
func matchedFontChange(base, compare Font) (FontChange, bool) {
	b, c := base, compare
	var attrs []string
	if bareName(base.Name) != bareName(compare.Name) {
		attrs = append(attrs, "name")
	}
	if base.Family != compare.Family {
		attrs = append(attrs, "family")
	}
	if base.Embedded != compare.Embedded {
		attrs = append(attrs, "embedded")
	}
	if base.Bold != compare.Bold {
		attrs = append(attrs, "bold")
	}
	if base.Italic != compare.Italic {
		attrs = append(attrs, "italic")
	}
	if len(attrs) == 0 {
		return FontChange{}, false
	}
	return FontChange{ChangeType: LineModified, BaseFont: &b, CompareFont: &c, ChangedAttrs: attrs}, true
}

// ClassifyFontSeverity implements §4.6's font severity rule: Minor by
// default, Major when family differs, Cosmetic when only the subset
// prefix differs (i.e. the bare names match but raw names don't).
func ClassifyFontSeverity(c FontChange) int {
	if c.BaseFont != nil && c.CompareFont != nil {
		if c.BaseFont.Family != c.CompareFont.Family {
			return SeverityMajor
		}
		onlyPrefixDiffers := c.BaseFont.Name != c.CompareFont.Name && bareName(c.BaseFont.Name) == bareName(c.CompareFont.Name)
		if onlyPrefixDiffers && len(c.ChangedAttrs) == 0 {
			return SeverityCosmetic
		}
	}
	return SeverityMinor
}
