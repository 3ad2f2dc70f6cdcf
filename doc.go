// Package pdfcompare compares two PDF documents and produces a
// structured, page-addressable report of their differences.
//
// The package aligns pages between two PDFs — including multi-document
// PDFs where a single file concatenates several logical documents — and
// then, for each matched page pair, emits typed difference records for
// text, font, image, style and metadata changes.
//
// pdfcompare does not parse PDF bytes itself. Callers supply a
// DocumentStore that already knows how to extract page text, fonts,
// images and rendered bitmaps; pdfcompare only ever reads through that
// interface. This keeps the comparison core independent of any one
// PDF-parsing library.
//
// Most callers drive a comparison through Orchestrator, which owns the
// asynchronous Job lifecycle, result persistence and caching on top of
// the synchronous Engine:
//
//	orch := pdfcompare.NewOrchestrator(docs, jobs, artifacts, engine, pdfcompare.SystemClock{}, logger, cfg)
//	job, err := orch.Create(ctx, baseID, compareID)
//	...
//	result, err := orch.Result(ctx, job.ID)
package pdfcompare
