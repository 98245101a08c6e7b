package report

import (
	"fmt"
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename returns the PDF file name for a document.
func Filename(doc Document) string {
	return FilenameExt(doc, ".pdf")
}

// FilenameExt returns the sanitized customer or product name with ext, or
// "<Module>_<total><Unit>" when no name was given.
func FilenameExt(doc Document, ext string) string {
	name := unsafeFileChars.ReplaceAllString(strings.TrimSpace(doc.CustomerName), "_")
	name = strings.Trim(name, "_.")
	if name != "" {
		return name + ext
	}
	return fmt.Sprintf("%s_%s%s%s",
		doc.Module.FileStem(), doc.GrandTotal.TotalMeasure.StringFixed(2), doc.Module.Unit(), ext)
}

// SummaryText returns the one-line description sent alongside a shared
// document.
func SummaryText(doc Document) string {
	var b strings.Builder
	b.WriteString(doc.Module.String())
	if doc.CustomerName != "" {
		fmt.Fprintf(&b, " for %s", doc.CustomerName)
	}
	t := doc.GrandTotal
	fmt.Fprintf(&b, ": %d entries, %d pcs, %s %s, amount %s",
		t.Entries, t.Count, t.TotalMeasure.StringFixed(2), doc.Module.Unit(), t.TotalAmount.StringFixed(2))
	if t.Unpriced > 0 {
		fmt.Fprintf(&b, " (%d not priced)", t.Unpriced)
	}
	return b.String()
}
