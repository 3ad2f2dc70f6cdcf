package pdfcompare

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/guraa/pdfcompare/internal/diffdetect"
)

// pageDetailsCacheSize bounds the page_details_cache (§4.10, "≈100
// entries").
const pageDetailsCacheSize = 100

// ResultCaches holds the three bounded in-memory maps keyed by job id
// (§4.10). Mutating document_pairs_cache or page_details_cache for an id
// invalidates the other together; page_details_cache evicts a random
// entry on overflow.
type ResultCaches struct {
	mu                sync.Mutex
	result            map[string]*ComparisonResult
	documentPairs     map[string][]DocumentPair
	pageDetails       map[string][]PageMapping
	pageDetailsOrder  []string
}

// NewResultCaches returns empty caches.
func NewResultCaches() *ResultCaches {
	return &ResultCaches{
		result:        make(map[string]*ComparisonResult),
		documentPairs: make(map[string][]DocumentPair),
		pageDetails:   make(map[string][]PageMapping),
	}
}

// Put stores result and the derived document-pair/page-detail views for
// id, invalidating and replacing both together (§4.10).
func (c *ResultCaches) Put(id string, result *ComparisonResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result[id] = result
	c.documentPairs[id] = result.DocumentPairs

	var mappings []PageMapping
	for _, dp := range result.DocumentPairs {
		mappings = append(mappings, dp.PageMappings...)
	}
	if _, exists := c.pageDetails[id]; !exists {
		if len(c.pageDetailsOrder) >= pageDetailsCacheSize {
			evictIdx := rand.Intn(len(c.pageDetailsOrder))
			evictID := c.pageDetailsOrder[evictIdx]
			delete(c.pageDetails, evictID)
			c.pageDetailsOrder = append(c.pageDetailsOrder[:evictIdx], c.pageDetailsOrder[evictIdx+1:]...)
		}
		c.pageDetailsOrder = append(c.pageDetailsOrder, id)
	}
	c.pageDetails[id] = mappings
}

// Result returns the cached ComparisonResult for id, if present.
func (c *ResultCaches) Result(id string) (*ComparisonResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.result[id]
	return r, ok
}

// DocumentPairs returns the cached document-pair view for id.
func (c *ResultCaches) DocumentPairs(id string) ([]DocumentPair, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	dp, ok := c.documentPairs[id]
	return dp, ok
}

// PageDetails returns the cached page-mapping view for id.
func (c *ResultCaches) PageDetails(id string) ([]PageMapping, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pd, ok := c.pageDetails[id]
	return pd, ok
}

// Invalidate drops every cache entry for id.
func (c *ResultCaches) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.result, id)
	delete(c.documentPairs, id)
	if _, ok := c.pageDetails[id]; ok {
		delete(c.pageDetails, id)
		for i, v := range c.pageDetailsOrder {
			if v == id {
				c.pageDetailsOrder = append(c.pageDetailsOrder[:i], c.pageDetailsOrder[i+1:]...)
				break
			}
		}
	}
}

// fontDiffMemo is the process-global font-diff memoizer keyed by a
// 64-bit hash of the two font-list signatures, in their original table
// order (§4.6, §4.10). DiffFonts's matching is order-sensitive (ties in
// its greedy passes resolve by table position), so the key must preserve
// order rather than normalize it — two font tables with the same
// signatures in a different order can legitimately produce a different
// pairing and must not share a cache entry.
var fontDiffMemo = struct {
	mu    sync.Mutex
	cache map[uint64][]byte
}{cache: make(map[uint64][]byte)}

// FontSignatureKey hashes two font-signature slices, in table order,
// into the memoizer key. Callers build signatures as e.g.
// "name|family|bold|italic|embedded" strings and pass both slices here
// unmodified — do not sort them first (see fontDiffMemo).
func FontSignatureKey(baseSignatures, compareSignatures []string) uint64 {
	h := xxh3.New()
	for _, s := range baseSignatures {
		h.WriteString(s)
		h.WriteString("\x00")
	}
	h.WriteString("\x01")
	for _, s := range compareSignatures {
		h.WriteString(s)
		h.WriteString("\x00")
	}
	return h.Sum64()
}

func fontSignature(f diffdetect.Font) string {
	return fmt.Sprintf("%s|%s|%t|%t|%t", f.Name, f.Family, f.Bold, f.Italic, f.Embedded)
}

// memoizedDiffFonts wraps diffdetect.DiffFonts with the process-global
// memoizer (§4.6, §4.10): identical font-signature pairs, in the same
// table order, across different pages or jobs reuse the previously
// computed result.
func memoizedDiffFonts(base, compare []diffdetect.Font) []diffdetect.FontChange {
	baseSigs := make([]string, len(base))
	for i, f := range base {
		baseSigs[i] = fontSignature(f)
	}
	compareSigs := make([]string, len(compare))
	for i, f := range compare {
		compareSigs[i] = fontSignature(f)
	}
	key := FontSignatureKey(baseSigs, compareSigs)

	fontDiffMemo.mu.Lock()
	if cached, ok := fontDiffMemo.cache[key]; ok {
		fontDiffMemo.mu.Unlock()
		var changes []diffdetect.FontChange
		if err := json.Unmarshal(cached, &changes); err == nil {
			return changes
		}
		return diffdetect.DiffFonts(base, compare)
	}
	fontDiffMemo.mu.Unlock()

	changes := diffdetect.DiffFonts(base, compare)
	if encoded, err := json.Marshal(changes); err == nil {
		fontDiffMemo.mu.Lock()
		fontDiffMemo.cache[key] = encoded
		fontDiffMemo.mu.Unlock()
	}
	return changes
}
