package pdfcompare

import "testing"

func oneDoc(id, text string) *Document {
	return &Document{
		ID:        id,
		PageCount: 1,
		PageText:  []string{text},
		Metadata:  map[string]string{"Title": "Report"},
	}
}

func TestEngineCompareIdenticalDocumentsYieldZeroDifferences(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil, nil)
	base := oneDoc("b1", "hello world")
	compare := oneDoc("c1", "hello world")

	result, err := e.Compare(RunContext{}, base, compare)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if result.Summary.Total != 0 {
		t.Fatalf("expected zero differences for identical documents, got %+v", result.Summary)
	}
	if result.OverallSimilarity != 1.0 {
		t.Fatalf("expected overall similarity 1.0, got %v", result.OverallSimilarity)
	}
}

func TestEngineCompareTextChangeYieldsOneTextDifference(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil, nil)
	base := oneDoc("b1", "hello world")
	compare := oneDoc("c1", "hello World")

	result, err := e.Compare(RunContext{}, base, compare)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if result.Summary.Text != 1 {
		t.Fatalf("expected exactly one text difference, got %+v", result.Summary)
	}
	if len(result.PagePairs) != 1 || result.PagePairs[0].Similarity < 0.95 {
		t.Fatalf("expected one high-similarity page pair, got %+v", result.PagePairs)
	}
}

func TestEngineCompareMetadataChangeIsCountedOnce(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil, nil)
	base := oneDoc("b1", "hello world")
	compare := oneDoc("c1", "hello world")
	compare.Metadata = map[string]string{"Title": "Different Report"}

	result, err := e.Compare(RunContext{}, base, compare)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if len(result.MetadataDifferences) != 1 {
		t.Fatalf("expected one metadata difference, got %+v", result.MetadataDifferences)
	}
	if result.Summary.Total != 1 {
		t.Fatalf("expected summary.total = 1 from the metadata difference, got %+v", result.Summary)
	}
}

func TestEngineComparePageOnlyInBaseEmitsOneSidedPair(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil, nil)
	base := &Document{
		ID:        "b1",
		PageCount: 2,
		PageText:  []string{"shared content across both documents here", "extra page only in base"},
		Metadata:  map[string]string{},
	}
	compare := &Document{
		ID:        "c1",
		PageCount: 1,
		PageText:  []string{"shared content across both documents here"},
		Metadata:  map[string]string{},
	}

	result, err := e.Compare(RunContext{}, base, compare)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	var oneSided int
	for _, pp := range result.PagePairs {
		if !pp.Matched() {
			oneSided++
		}
	}
	if oneSided != 1 {
		t.Fatalf("expected exactly one one-sided page pair, got %d among %+v", oneSided, result.PagePairs)
	}
}
