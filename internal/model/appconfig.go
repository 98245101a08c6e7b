package model

import "github.com/shopspring/decimal"

const maxRecentExports = 10

// Default grade labels used when grouping beading/patti reports.
const (
	DefaultUnspecifiedGrade = "Unspecified Grade"
)

// DefaultGradePriority is the tier order printed before any other grade.
var DefaultGradePriority = []string{"1st Grade", "2nd Grade"}

// AppConfig holds application-wide preferences and report defaults.
type AppConfig struct {
	// Report defaults
	CompanyName      string   `json:"company_name"`
	GradePriority    []string `json:"grade_priority"`    // Grades printed first, in order
	UnspecifiedGrade string   `json:"unspecified_grade"` // Label for entries without a grade

	// Landing price defaults
	DefaultTaxPercent decimal.Decimal `json:"default_tax_percent"`

	// Export preferences
	OutputDir     string   `json:"output_dir"`
	ExportFormat  string   `json:"export_format"` // "pdf" or "xlsx"
	RecentExports []string `json:"recent_exports"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		CompanyName:       "",
		GradePriority:     append([]string(nil), DefaultGradePriority...),
		UnspecifiedGrade:  DefaultUnspecifiedGrade,
		DefaultTaxPercent: decimal.NewFromInt(18),
		OutputDir:         ".",
		ExportFormat:      "pdf",
		RecentExports:     []string{},
	}
}

// Normalize fills in defaults for fields left empty by an older or
// hand-edited config file.
func (c *AppConfig) Normalize() {
	if c.GradePriority == nil {
		c.GradePriority = append([]string(nil), DefaultGradePriority...)
	}
	if c.UnspecifiedGrade == "" {
		c.UnspecifiedGrade = DefaultUnspecifiedGrade
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.ExportFormat != "xlsx" {
		c.ExportFormat = "pdf"
	}
	if c.RecentExports == nil {
		c.RecentExports = []string{}
	}
}

// AddRecentExport records path at the front of the recent exports list,
// dropping duplicates and keeping at most maxRecentExports entries.
func (c *AppConfig) AddRecentExport(path string) {
	recent := []string{path}
	for _, p := range c.RecentExports {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentExports {
		recent = recent[:maxRecentExports]
	}
	c.RecentExports = recent
}
