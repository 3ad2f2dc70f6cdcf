package pdfcompare

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MatcherWeights are the page-matcher score weights from §4.5 /
// Config key page_matcher.weights.
type MatcherWeights struct {
	Text       float64
	Structure  float64
	Style      float64
	Image      float64
	Positional float64
}

// Config holds every configuration key enumerated in §6. Defaults match
// the "most elaborate variant" constants §9 commits to.
type Config struct {
	// MaxProcessingMinutes bounds one comparison's wall clock (§4.8).
	MaxProcessingMinutes int
	// MinPagesPerDocument is loaded from comparison.min_pages_per_document.
	// Boundary detection does not read it; sub-documents of any length,
	// including a single page, are produced.
	MinPagesPerDocument int

	// TextThreshold and MaxSamplePages drive the document matcher (§4.4).
	// VisualThreshold is loaded but not read by the matcher.
	TextThreshold   float64
	VisualThreshold float64
	MaxSamplePages  int

	// HighThreshold/MediumThreshold/LowThreshold drive the page matcher's
	// three greedy passes (§4.5).
	HighThreshold   float64
	MediumThreshold float64
	LowThreshold    float64
	Weights         MatcherWeights

	// FontDetailedAnalysis and FontExtractionTimeoutMS are loaded from the
	// font.* keys; the font detector does not read them.
	FontDetailedAnalysis    bool
	FontExtractionTimeoutMS int

	// RenderingDPI, FastMode, FastModeDPI and RenderTimeoutSeconds are
	// loaded from the rendering.* keys for the external renderer; the core
	// does not read them or pass them to the Renderer (§4.4, §6).
	RenderingDPI        int
	FastMode            bool
	FastModeDPI         int
	RenderTimeoutSeconds int

	// ArtifactRoot is the ArtifactStore base directory.
	ArtifactRoot string
}

// DefaultConfig returns the constants §9 commits to as the spec's
// defaults, before any override is loaded.
func DefaultConfig() Config {
	return Config{
		MaxProcessingMinutes: 15,
		MinPagesPerDocument:  1,

		TextThreshold:   0.5,
		VisualThreshold: 0.6,
		MaxSamplePages:  3,

		HighThreshold:   0.95,
		MediumThreshold: 0.85,
		LowThreshold:    0.75,
		Weights: MatcherWeights{
			Text:       0.35,
			Structure:  0.25,
			Style:      0.15,
			Image:      0.15,
			Positional: 0.10,
		},

		FontDetailedAnalysis:    true,
		FontExtractionTimeoutMS: 2000,

		RenderingDPI:         300,
		FastMode:             true,
		FastModeDPI:          150,
		RenderTimeoutSeconds: 15,

		ArtifactRoot: "./comparisons",
	}
}

// MaxProcessingDuration returns MaxProcessingMinutes as a Duration.
func (c Config) MaxProcessingDuration() time.Duration {
	return time.Duration(c.MaxProcessingMinutes) * time.Minute
}

// LoadConfig reads the §6 configuration keys from path (if non-empty)
// and from the environment, layering over DefaultConfig — following
// gogotex's internal/config pattern of a flat typed struct assembled
// once at startup via viper.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("PDFCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, newErr(ErrInternal, "reading config file", err)
		}
	}

	setIfPresent(v, "comparison.max_processing_minutes", &cfg.MaxProcessingMinutes)
	setIfPresent(v, "comparison.min_pages_per_document", &cfg.MinPagesPerDocument)
	setIfPresentF(v, "comparison.text_threshold", &cfg.TextThreshold)
	setIfPresentF(v, "comparison.visual_threshold", &cfg.VisualThreshold)
	setIfPresent(v, "comparison.max_sample_pages", &cfg.MaxSamplePages)

	setIfPresentF(v, "page_matcher.high_threshold", &cfg.HighThreshold)
	setIfPresentF(v, "page_matcher.medium_threshold", &cfg.MediumThreshold)
	setIfPresentF(v, "page_matcher.low_threshold", &cfg.LowThreshold)
	setIfPresentF(v, "page_matcher.weights.text", &cfg.Weights.Text)
	setIfPresentF(v, "page_matcher.weights.structure", &cfg.Weights.Structure)
	setIfPresentF(v, "page_matcher.weights.style", &cfg.Weights.Style)
	setIfPresentF(v, "page_matcher.weights.image", &cfg.Weights.Image)
	setIfPresentF(v, "page_matcher.weights.positional", &cfg.Weights.Positional)

	setIfPresentB(v, "font.detailed_analysis", &cfg.FontDetailedAnalysis)
	setIfPresent(v, "font.extraction_timeout_ms", &cfg.FontExtractionTimeoutMS)

	setIfPresent(v, "rendering.dpi", &cfg.RenderingDPI)
	setIfPresentB(v, "rendering.fast_mode", &cfg.FastMode)
	setIfPresent(v, "rendering.fast_mode_dpi", &cfg.FastModeDPI)
	setIfPresent(v, "rendering.timeout_seconds", &cfg.RenderTimeoutSeconds)

	if v.IsSet("artifact.root") {
		cfg.ArtifactRoot = v.GetString("artifact.root")
	}

	return cfg, nil
}

func setIfPresent(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func setIfPresentF(v *viper.Viper, key string, dst *float64) {
	if v.IsSet(key) {
		*dst = v.GetFloat64(key)
	}
}

func setIfPresentB(v *viper.Viper, key string, dst *bool) {
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}
