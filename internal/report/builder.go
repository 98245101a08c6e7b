package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/timbercalc/internal/engine"
	"github.com/piwi3910/timbercalc/internal/model"
)

// Build groups and orders entries into a document. It never mutates the
// entries and keeps the input order wherever ordering is not specified.
func Build(module model.Module, entries []model.Entry, opts Options) Document {
	doc := Document{
		ID:           opts.ID,
		Title:        opts.Title,
		Module:       module,
		CustomerName: strings.TrimSpace(opts.CustomerName),
		Date:         opts.Date,
		GrandTotal:   engine.Totals(entries),
	}
	if doc.Title == "" {
		doc.Title = fmt.Sprintf("%s Summary", module)
	}

	if module.Grouped() {
		doc.Sections = buildGrouped(entries, opts)
	} else {
		doc.Sections = buildFlat(entries)
	}
	numberRows(doc.Sections)
	return doc
}

// buildFlat returns the single unlabeled section used by flat modules.
func buildFlat(entries []model.Entry) []Section {
	g := Group{Rows: make([]Row, 0, len(entries))}
	for _, e := range entries {
		g.Rows = append(g.Rows, Row{Entry: e})
		g.Subtotal = g.Subtotal.AddEntry(e)
	}
	return []Section{{Groups: []Group{g}, Subtotal: g.Subtotal}}
}

// buildGrouped partitions entries by grade then size, orders every level and
// rolls subtotals up from the size groups.
func buildGrouped(entries []model.Entry, opts Options) []Section {
	unspecified := opts.UnspecifiedGrade
	if unspecified == "" {
		unspecified = model.DefaultUnspecifiedGrade
	}
	priority := opts.GradePriority
	if priority == nil {
		priority = model.DefaultGradePriority
	}

	// grade -> size -> entries, each slice in insertion order
	byGrade := make(map[string]map[string][]model.Entry)
	for _, e := range entries {
		grade := e.Fields.Grade
		if grade == "" {
			grade = unspecified
		}
		sizes, ok := byGrade[grade]
		if !ok {
			sizes = make(map[string][]model.Entry)
			byGrade[grade] = sizes
		}
		sizes[e.Fields.SizeLabel] = append(sizes[e.Fields.SizeLabel], e)
	}

	grades := make([]string, 0, len(byGrade))
	for g := range byGrade {
		grades = append(grades, g)
	}
	sortGrades(grades, priority, unspecified)

	sections := make([]Section, 0, len(grades))
	for _, grade := range grades {
		sizes := byGrade[grade]
		labels := make([]string, 0, len(sizes))
		for l := range sizes {
			labels = append(labels, l)
		}
		sortSizes(labels)

		sec := Section{Label: grade, Groups: make([]Group, 0, len(labels))}
		for _, label := range labels {
			rows := sizes[label]
			sort.SliceStable(rows, func(i, j int) bool {
				return rows[i].Fields.LengthFt.LessThan(rows[j].Fields.LengthFt)
			})

			g := Group{Label: label, Rows: make([]Row, 0, len(rows))}
			for _, e := range rows {
				g.Rows = append(g.Rows, Row{Entry: e})
				g.Subtotal = g.Subtotal.AddEntry(e)
			}
			sec.Groups = append(sec.Groups, g)
			sec.Subtotal = sec.Subtotal.Add(g.Subtotal)
		}
		sections = append(sections, sec)
	}
	return sections
}

// sortGrades orders priority grades first (in listed order), then other
// grades alphabetically, then the unspecified bucket.
func sortGrades(grades, priority []string, unspecified string) {
	rank := func(g string) (int, int) {
		if g == unspecified {
			return 2, 0
		}
		for i, p := range priority {
			if strings.EqualFold(g, p) {
				return 0, i
			}
		}
		return 1, 0
	}
	sort.Slice(grades, func(i, j int) bool {
		ti, pi := rank(grades[i])
		tj, pj := rank(grades[j])
		if ti != tj {
			return ti < tj
		}
		if pi != pj {
			return pi < pj
		}
		li, lj := strings.ToLower(grades[i]), strings.ToLower(grades[j])
		if li != lj {
			return li < lj
		}
		return grades[i] < grades[j]
	})
}

// sortSizes orders size labels by their parsed (primary, secondary)
// dimensions, falling back to the label text for equal dimensions.
func sortSizes(labels []string) {
	dims := make(map[string]SizeDims, len(labels))
	for _, l := range labels {
		dims[l] = ParseSize(l)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, b := dims[labels[i]], dims[labels[j]]
		if c := a.Compare(b); c != 0 {
			return c < 0
		}
		return labels[i] < labels[j]
	})
}

func numberRows(sections []Section) {
	n := 0
	for si := range sections {
		for gi := range sections[si].Groups {
			rows := sections[si].Groups[gi].Rows
			for ri := range rows {
				n++
				rows[ri].SerialNo = n
			}
		}
	}
}
