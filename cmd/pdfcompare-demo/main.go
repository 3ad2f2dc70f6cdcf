// Command pdfcompare-demo drives one end-to-end comparison through
// Orchestrator using in-memory fakes for every external collaborator,
// so the whole Job lifecycle can be exercised without a real document
// store or database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/guraa/pdfcompare"
)

type memoryDocumentStore struct {
	docs map[string]*pdfcompare.Document
}

func (s memoryDocumentStore) Get(ctx context.Context, id string) (*pdfcompare.Document, error) {
	return s.docs[id], nil
}

func main() {
	log, err := pdfcompare.NewLogger(pdfcompare.LogConfig{Debug: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := pdfcompare.DefaultConfig()
	artifactRoot, err := os.MkdirTemp("", "pdfcompare-demo-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tempdir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(artifactRoot)
	cfg.ArtifactRoot = artifactRoot

	base := &pdfcompare.Document{
		ID:        "base",
		Filename:  "quarterly-report-v1.pdf",
		PageCount: 2,
		PageText: []string{
			"Quarterly Report\nRevenue grew 12% year over year.",
			"Appendix A: Regional Breakdown",
		},
		Metadata: map[string]string{"Title": "Quarterly Report", "Author": "Finance Team"},
	}
	compare := &pdfcompare.Document{
		ID:        "compare",
		Filename:  "quarterly-report-v2.pdf",
		PageCount: 2,
		PageText: []string{
			"Quarterly Report\nRevenue grew 14% year over year.",
			"Appendix A: Regional Breakdown",
		},
		Metadata: map[string]string{"Title": "Quarterly Report", "Author": "Finance Team (Revised)"},
	}

	docs := memoryDocumentStore{docs: map[string]*pdfcompare.Document{
		base.ID:    base,
		compare.ID: compare,
	}}
	jobs := pdfcompare.NewInMemoryJobStore()
	artifacts := pdfcompare.NewFileArtifactStore(cfg.ArtifactRoot)
	engine := pdfcompare.NewEngine(cfg, nil, log)
	orch := pdfcompare.NewOrchestrator(docs, jobs, artifacts, engine, pdfcompare.SystemClock{}, log, cfg)

	ctx := context.Background()
	job, err := orch.Create(ctx, base.ID, compare.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create job: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("job %s created, status=%s\n", job.ID, job.Status.AsExternal())

	for {
		status, err := orch.Status(ctx, job.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "status: %v\n", err)
			os.Exit(1)
		}
		if status.Status.Terminal() {
			job = status
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if job.Status != pdfcompare.Completed {
		fmt.Fprintf(os.Stderr, "job ended in %s: %s\n", job.Status.AsExternal(), job.ErrorMessage)
		os.Exit(1)
	}

	result, err := orch.Result(ctx, job.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "result: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("overall similarity: %.3f\n", result.OverallSimilarity)
	fmt.Printf("differences: total=%d text=%d font=%d image=%d style=%d metadata=%d\n",
		result.Summary.Total, result.Summary.Text, result.Summary.Font, result.Summary.Image, result.Summary.Style,
		len(result.MetadataDifferences))
}
