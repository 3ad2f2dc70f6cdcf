package pdfcompare

import "testing"

func TestLoadConfigNoPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Fatalf("expected defaults with no config file, got %+v", cfg)
	}
}

func TestLoadConfigEnvOverridesDottedKey(t *testing.T) {
	t.Setenv("PDFCOMPARE_COMPARISON_MAX_PROCESSING_MINUTES", "42")
	t.Setenv("PDFCOMPARE_PAGE_MATCHER_HIGH_THRESHOLD", "0.99")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MaxProcessingMinutes != 42 {
		t.Fatalf("expected env override to set MaxProcessingMinutes=42, got %d", cfg.MaxProcessingMinutes)
	}
	if cfg.HighThreshold != 0.99 {
		t.Fatalf("expected env override to set HighThreshold=0.99, got %v", cfg.HighThreshold)
	}
}
