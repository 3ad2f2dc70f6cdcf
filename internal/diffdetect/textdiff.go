// Package diffdetect implements the per-matched-page difference
// detectors: text, font, image, style and metadata (§4.6).
package diffdetect

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/guraa/pdfcompare/internal/similarity"
)

// TextLineChange carries one changed line without importing the root
// package; the root package's engine.go (detectPage, with the enum
// conversions in adapt.go) adapts these into Difference values.
// Keeping the line-diff math here, free of the root type, lets it be
// unit tested in isolation the way the teacher tests pure algorithms.
type TextLineChange struct {
	ChangeType  int // 0 Added, 1 Deleted, 2 Modified
	BaseText    string
	CompareText string
	LineNumber  int
}

const (
	LineAdded = iota
	LineDeleted
	LineModified
)

// DiffLines runs a line-level LCS (via sergi/go-diff's
// diffmatchpatch, followed by DiffCleanupSemantic) and returns one TextLineChange per
// changed line (§4.6).
func DiffLines(baseText, compareText string) []TextLineChange {
	dmp := diffmatchpatch.New()
	baseLines, compareLines, lineArray := dmp.DiffLinesToChars(baseText, compareText)
	diffs := dmp.DiffMain(baseLines, compareLines, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var changes []TextLineChange
	lineNum := 0
	var pendingDeleted []string

	flushPending := func() {
		for _, d := range pendingDeleted {
			changes = append(changes, TextLineChange{ChangeType: LineDeleted, BaseText: d, LineNumber: lineNum})
			lineNum++
		}
		pendingDeleted = nil
	}

	for _, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flushPending()
			lineNum += len(lines)
		case diffmatchpatch.DiffDelete:
			pendingDeleted = append(pendingDeleted, lines...)
		case diffmatchpatch.DiffInsert:
			for i, l := range lines {
				if i < len(pendingDeleted) {
					changes = append(changes, TextLineChange{
						ChangeType:  LineModified,
						BaseText:    pendingDeleted[i],
						CompareText: l,
						LineNumber:  lineNum,
					})
				} else {
					changes = append(changes, TextLineChange{ChangeType: LineAdded, CompareText: l, LineNumber: lineNum})
				}
				lineNum++
			}
			if len(pendingDeleted) > len(lines) {
				for i := len(lines); i < len(pendingDeleted); i++ {
					changes = append(changes, TextLineChange{ChangeType: LineDeleted, BaseText: pendingDeleted[i], LineNumber: lineNum})
					lineNum++
				}
			}
			pendingDeleted = nil
		}
	}
	flushPending()
	return changes
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Severity classification shared constants, mapped onto pdfcompare's
// Severity enum by adapt.go's severityFromDetector.
const (
	SeverityCosmetic = iota
	SeverityMinor
	SeverityMajor
)

// ClassifyTextSeverity implements §4.6's text-diff severity rule: Minor
// by default, Major for Added/Deleted on a non-empty line, Cosmetic for
// pure whitespace deltas.
func ClassifyTextSeverity(c TextLineChange) int {
	if c.ChangeType == LineModified {
		if similarity.Normalize(c.BaseText) == similarity.Normalize(c.CompareText) {
			return SeverityCosmetic
		}
		return SeverityMinor
	}
	text := c.BaseText + c.CompareText
	if strings.TrimSpace(text) == "" {
		return SeverityCosmetic
	}
	return SeverityMajor
}

// NewDiffID generates a fresh identifier for a Difference record,
// following gofulmen's direct use of google/uuid for record identity.
func NewDiffID() string {
	return uuid.NewString()
}
