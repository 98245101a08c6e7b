package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.UnspecifiedGrade != DefaultUnspecifiedGrade {
		t.Errorf("expected unspecified grade %q, got %q", DefaultUnspecifiedGrade, cfg.UnspecifiedGrade)
	}
	if len(cfg.GradePriority) != 2 || cfg.GradePriority[0] != "1st Grade" {
		t.Errorf("unexpected grade priority: %v", cfg.GradePriority)
	}
	if cfg.DefaultTaxPercent.IntPart() != 18 {
		t.Errorf("expected default tax 18, got %s", cfg.DefaultTaxPercent)
	}
	if cfg.RecentExports == nil {
		t.Error("RecentExports should not be nil")
	}
}

func TestDefaultAppConfigDoesNotShareGradePriority(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.GradePriority[0] = "Teak"

	if DefaultGradePriority[0] != "1st Grade" {
		t.Errorf("modifying config leaked into defaults: %v", DefaultGradePriority)
	}
}

func TestNormalizeFillsEmptyFields(t *testing.T) {
	cfg := AppConfig{ExportFormat: "docx"}
	cfg.Normalize()

	if cfg.UnspecifiedGrade != DefaultUnspecifiedGrade {
		t.Errorf("expected unspecified grade default, got %q", cfg.UnspecifiedGrade)
	}
	if cfg.ExportFormat != "pdf" {
		t.Errorf("expected unknown export format to fall back to pdf, got %s", cfg.ExportFormat)
	}
	if cfg.OutputDir != "." {
		t.Errorf("expected output dir '.', got %q", cfg.OutputDir)
	}
	if cfg.GradePriority == nil || cfg.RecentExports == nil {
		t.Error("expected slices to be initialized")
	}
}

func TestAddRecentExport(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentExport("a.pdf")
	cfg.AddRecentExport("b.pdf")
	cfg.AddRecentExport("a.pdf")

	if len(cfg.RecentExports) != 2 {
		t.Fatalf("expected 2 recent exports, got %d", len(cfg.RecentExports))
	}
	if cfg.RecentExports[0] != "a.pdf" || cfg.RecentExports[1] != "b.pdf" {
		t.Errorf("unexpected order: %v", cfg.RecentExports)
	}

	for i := 0; i < 15; i++ {
		cfg.AddRecentExport(fmt.Sprintf("file%d.pdf", i))
	}
	if len(cfg.RecentExports) != maxRecentExports {
		t.Errorf("expected list capped at %d, got %d", maxRecentExports, len(cfg.RecentExports))
	}
	if cfg.RecentExports[0] != "file14.pdf" {
		t.Errorf("expected most recent first, got %s", cfg.RecentExports[0])
	}
}
