// Package report turns a snapshot of entries into a summary document. It is
// independent of any rendering library; see package export for renderers.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/timbercalc/internal/model"
)

// Row is one entry as printed in a document, numbered in presentation order.
type Row struct {
	SerialNo int         `json:"serial_no"`
	Entry    model.Entry `json:"entry"`
}

// Group is the innermost level of a document: rows sharing a size label.
// Flat modules have a single unlabeled group.
type Group struct {
	Label    string       `json:"label,omitempty"`
	Rows     []Row        `json:"rows"`
	Subtotal model.Totals `json:"subtotal"`
}

// Section is a grade bucket made of size groups. Flat modules have exactly
// one unlabeled section.
type Section struct {
	Label    string       `json:"label,omitempty"`
	Groups   []Group      `json:"groups"`
	Subtotal model.Totals `json:"subtotal"`
}

// Document is the structure handed to renderers and sharing targets.
type Document struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Module       model.Module `json:"module"`
	CustomerName string       `json:"customer_name,omitempty"`
	Date         time.Time    `json:"date"`
	Sections     []Section    `json:"sections"`
	GrandTotal   model.Totals `json:"grand_total"`
}

// RowCount returns the number of rows across all sections.
func (d Document) RowCount() int {
	n := 0
	for _, s := range d.Sections {
		for _, g := range s.Groups {
			n += len(g.Rows)
		}
	}
	return n
}

// Empty reports whether the document has no rows.
func (d Document) Empty() bool {
	return d.RowCount() == 0
}

// Options controls document metadata and beading/patti grouping.
type Options struct {
	ID               string
	Title            string
	CustomerName     string // Customer or product name, optional
	Date             time.Time
	GradePriority    []string // Grades listed first, in this order
	UnspecifiedGrade string   // Bucket label for entries without a grade
}

// OptionsFromConfig returns options carrying the configured grade settings.
func OptionsFromConfig(cfg model.AppConfig) Options {
	return Options{
		GradePriority:    cfg.GradePriority,
		UnspecifiedGrade: cfg.UnspecifiedGrade,
	}
}

// NewID returns a short reference ID for a document.
func NewID() string {
	return uuid.New().String()[:8]
}
