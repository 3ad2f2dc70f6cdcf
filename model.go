package pdfcompare

import "time"

// Document is a read-only handle to one side of a comparison. The core
// never parses PDF bytes; every field here is produced upstream by a
// DocumentStore implementation.
type Document struct {
	// ID is the document's identifier in the owning DocumentStore.
	ID string
	// Filename is the original upload name, for display only.
	Filename string
	// PageCount is the number of pages in the document.
	PageCount int
	// PageText holds one string per page, 0-indexed.
	PageText []string
	// PageImages holds the image list for each page, 0-indexed.
	PageImages [][]PageImage
	// FontTable holds the font list for each page, 0-indexed.
	FontTable [][]FontInfo
	// TextElements holds positioned text runs for each page, 0-indexed.
	// Used by the style detector (§4.6) and by y_positions in the
	// fingerprint (§4.2). May be nil if the store does not extract
	// per-run positions, in which case style diffing is skipped.
	TextElements [][]TextElement
	// Metadata is the document-level metadata map (title, author, ...).
	Metadata map[string]string
}

// FontInfo describes one font referenced by a page.
type FontInfo struct {
	Name         string
	Family       string
	Bold         bool
	Italic       bool
	Embedded     bool
	SubsetPrefix string
}

// PageImage describes one image placed on a page.
type PageImage struct {
	Index       int
	Bounds      *Rect
	Format      string
	Width       int
	Height      int
	BytesDigest string
}

// TextElement is one positioned run of text on a page.
type TextElement struct {
	Text     string
	Bounds   Rect
	Font     string
	FontSize float64
	Bold     bool
	Italic   bool
	Color    string
}

// PageSource identifies which side of a comparison a fingerprint or a
// lone PagePair member came from.
type PageSource int

const (
	SourceBase PageSource = iota
	SourceCompare
)

// PageFingerprint is a compact, precomputed feature record for one page,
// built once at the start of a comparison and never mutated afterward.
type PageFingerprint struct {
	Source          PageSource
	PageIndex       int
	NormalizedText  string
	TextHash        int64
	Keywords        map[string]struct{}
	FontDistribution map[string]int
	ElementCount    int
	YPositions      []float64
	HasImages       bool
	ImageCount      int
}

// DocumentBoundary marks an inclusive [StartPage, EndPage] range of a
// logical sub-document within one PDF. Boundaries within one PDF
// partition [0, page_count) with no gaps and no overlaps.
type DocumentBoundary struct {
	StartPage int
	EndPage   int
	Matched   bool
}

// PagePair is a matched (or one-sided) pairing of pages within a matched
// DocumentPair. At least one of BaseFingerprint/CompareFingerprint is
// always present.
type PagePair struct {
	BaseFingerprint    *PageFingerprint
	CompareFingerprint *PageFingerprint
	Similarity         float64
}

// Matched reports whether both sides of the pair are present.
func (p PagePair) Matched() bool {
	return p.BaseFingerprint != nil && p.CompareFingerprint != nil
}

// PageMapping is one row of a DocumentPair's page-level summary.
type PageMapping struct {
	BasePage    *int
	ComparePage *int
	Similarity  float64
	DiffCount   int
}

// DiffCounts tallies differences by kind.
type DiffCounts struct {
	Text  int
	Image int
	Font  int
	Style int
	Total int
}

// DocumentPair is a matched (or one-sided) pairing of logical
// sub-documents across the two PDFs.
type DocumentPair struct {
	PairIndex     int
	Matched       bool
	BaseRange     *DocumentBoundary
	CompareRange  *DocumentBoundary
	PageMappings  []PageMapping
	Counts        DiffCounts
	Similarity    float64
}

// DiffKind identifies which detector produced a Difference.
type DiffKind int

const (
	DiffText DiffKind = iota
	DiffFont
	DiffImage
	DiffStyle
	DiffMetadata
)

func (k DiffKind) String() string {
	switch k {
	case DiffText:
		return "Text"
	case DiffFont:
		return "Font"
	case DiffImage:
		return "Image"
	case DiffStyle:
		return "Style"
	case DiffMetadata:
		return "Metadata"
	default:
		return "Unknown"
	}
}

// ChangeType classifies how a Difference changed between the two docs.
type ChangeType int

const (
	Added ChangeType = iota
	Deleted
	Modified
)

func (c ChangeType) String() string {
	switch c {
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	case Modified:
		return "Modified"
	default:
		return "Unknown"
	}
}

// Severity classifies how significant a Difference is.
type Severity int

const (
	Cosmetic Severity = iota
	Minor
	Major
)

func (s Severity) String() string {
	switch s {
	case Cosmetic:
		return "Cosmetic"
	case Minor:
		return "Minor"
	case Major:
		return "Major"
	default:
		return "Unknown"
	}
}

// Difference is a single observed change between a matched page pair (or,
// for metadata, between the two documents as a whole). It is modeled as
// a tagged sum: Header carries the fields common to every kind, and at
// most one of the variant fields below is populated, selected by Kind.
type Difference struct {
	Header

	Text     *TextDifference
	Font     *FontDifference
	Image    *ImageDifference
	Style    *StyleDifference
	Metadata *MetadataDifference
}

// Header holds the fields shared by every Difference variant.
type Header struct {
	ID          string
	Kind        DiffKind
	ChangeType  ChangeType
	Severity    Severity
	Description string
	BasePage    *int
	ComparePage *int
	Position    *Point
	Bounds      *Rect
}

// TextDifference describes a single changed line of page text.
type TextDifference struct {
	BaseText    string
	CompareText string
	LineNumber  int
}

// FontDifference describes a changed font on a page.
type FontDifference struct {
	BaseFont    *FontInfo
	CompareFont *FontInfo
	ChangedAttrs []string
}

// ImageDifference describes a changed image on a page.
type ImageDifference struct {
	BaseImage    *PageImage
	CompareImage *PageImage
}

// StyleDifference describes a changed text-run style on a page.
type StyleDifference struct {
	BaseElement    *TextElement
	CompareElement *TextElement
	ChangedAttrs   []string
}

// MetadataDifference describes a changed document-metadata entry.
// Metadata differences are keyed at the result level, not per page.
type MetadataDifference struct {
	Key         string
	BaseValue   string
	CompareValue string
}

// Summary tallies differences across the whole comparison.
type Summary struct {
	Total int
	Text  int
	Image int
	Font  int
	Style int
}

// ComparisonResult is the complete output of one comparison, owned by
// the ArtifactStore once persisted.
type ComparisonResult struct {
	ID                  string
	BaseDocumentID      string
	CompareDocumentID   string
	PagePairs           []PagePair
	DifferencesByPage   map[string][]Difference
	DocumentPairs       []DocumentPair
	MetadataDifferences map[string]MetadataDifference
	Summary             Summary
	OverallSimilarity   float64
	CreatedAt           time.Time
	CompletedAt         time.Time
}

// JobStatus is the job state machine's current state.
type JobStatus int

const (
	Pending JobStatus = iota
	Processing
	DocumentMatching
	Comparing
	Completed
	Failed
	Cancelled
)

// rank gives the monotonic ordering used to validate transitions (§5):
// Processing < DocumentMatching < Comparing < terminal states.
func (s JobStatus) rank() int {
	switch s {
	case Pending:
		return 0
	case Processing:
		return 1
	case DocumentMatching:
		return 2
	case Comparing:
		return 3
	default:
		return 4 // terminal: Completed, Failed, Cancelled
	}
}

// Terminal reports whether the status is sticky (§3: Job state machine).
func (s JobStatus) Terminal() bool {
	return s == Completed || s == Failed || s == Cancelled
}

// AsExternal renders the status as the single external vocabulary named
// in §9 ("keep one enum; provide a single as_external(status) → string").
func (s JobStatus) AsExternal() string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case DocumentMatching:
		return "document_matching"
	case Comparing:
		return "comparing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Job is one asynchronous comparison request.
type Job struct {
	ID                string
	BaseDocumentID    string
	CompareDocumentID string
	Status            JobStatus
	Progress          int
	TotalOps          int
	CompletedOps      int
	CurrentPhase      string
	ErrorMessage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}
