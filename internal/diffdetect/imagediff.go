package diffdetect

import "sort"

// Box is a minimal bbox mirror of pdfcompare.Rect, used only for the
// IoU overlap test this package needs (avoiding an import cycle with
// the root package, same as Font mirrors pdfcompare.FontInfo).
type Box struct {
	X, Y, W, H float64
}

func (b Box) area() float64 {
	if b.W <= 0 || b.H <= 0 {
		return 0
	}
	return b.W * b.H
}

func (b Box) iou(o Box) float64 {
	x := maxf(b.X, o.X)
	y := maxf(b.Y, o.Y)
	x2 := minf(b.X+b.W, o.X+o.W)
	y2 := minf(b.Y+b.H, o.Y+o.H)
	interW, interH := x2-x, y2-y
	if interW <= 0 || interH <= 0 {
		return 0
	}
	inter := interW * interH
	union := b.area() + o.area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Image mirrors pdfcompare.PageImage.
type Image struct {
	Index       int
	HasBounds   bool
	Bounds      Box
	Format      string
	Width       int
	Height      int
	BytesDigest string
}

// ImageChange is one matched-or-unmatched page image.
type ImageChange struct {
	ChangeType   int
	BaseImage    *Image
	CompareImage *Image
}

const imageIoUThreshold = 0.5

// DiffImages pairs page images by bbox overlap and format equality,
// falls back to bytes_digest equality for anything unpaired, then emits
// Modified for differing matched pairs and Added/Deleted for the rest
// (§4.6).
func DiffImages(base, compare []Image) []ImageChange {
	baseUsed := make([]bool, len(base))
	compareUsed := make([]bool, len(compare))
	var changes []ImageChange

	type cand struct {
		i, j  int
		score float64
	}
	var cands []cand
	for i := range base {
		if !base[i].HasBounds {
			continue
		}
		for j := range compare {
			if !compare[j].HasBounds || base[i].Format != compare[j].Format {
				continue
			}
			ov := base[i].Bounds.iou(compare[j].Bounds)
			if ov > imageIoUThreshold {
				cands = append(cands, cand{i, j, ov})
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
		if ic, ok := matchedImageChange(base[c.i], compare[c.j]); ok {
			changes = append(changes, ic)
		}
	}

	for i := range base {
		if baseUsed[i] || base[i].BytesDigest == "" {
			continue
		}
		for j := range compare {
			if compareUsed[j] || compare[j].BytesDigest != base[i].BytesDigest {
				continue
			}
			baseUsed[i] = true
			compareUsed[j] = true
			if ic, ok := matchedImageChange(base[i], compare[j]); ok {
				changes = append(changes, ic)
			}
			break
		}
	}

	for i := range base {
		if !baseUsed[i] {
			img := base[i]
			changes = append(changes, ImageChange{ChangeType: LineDeleted, BaseImage: &img})
		}
	}
	for j := range compare {
		if !compareUsed[j] {
			img := compare[j]
			changes = append(changes, ImageChange{ChangeType: LineAdded, CompareImage: &img})
		}
	}
	return changes
}

func matchedImageChange(base, compare Image) (ImageChange, bool) {
	b, c := base, compare
	differs := base.Width != compare.Width || base.Height != compare.Height || base.Format != compare.Format
	if base.HasBounds && compare.HasBounds {
		differs = differs || base.Bounds != compare.Bounds
	}
	if !differs {
		return ImageChange{}, false
	}
	return ImageChange{ChangeType: LineModified, BaseImage: &b, CompareImage: &c}, true
}
