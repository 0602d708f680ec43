package tui

import "github.com/nikbrunner/blink/internal/model"

// RowKind distinguishes section headers from Blinks in the list.
type RowKind int

const (
	RowSection RowKind = iota
	RowBlink
)

// Row is one line of the list: a section header or a Blink.
type Row struct {
	Kind  RowKind
	Type  model.Type // section type
	Count int        // Blinks in the section
	Blink *model.Blink
}

// IsBlink returns true if the row can be selected.
func (r Row) IsBlink() bool {
	return r.Kind == RowBlink
}

// buildRows lays out Blinks, grouped into sections when sections is set.
func buildRows(blinks []model.Blink, sort model.SortOption, sections bool) []Row {
	if !sections {
		sorted := model.Sort(blinks, sort)
		rows := make([]Row, len(sorted))
		for i := range sorted {
			rows[i] = Row{Kind: RowBlink, Type: sorted[i].Type, Blink: &sorted[i]}
		}
		return rows
	}

	var rows []Row
	for _, section := range model.GroupByType(model.Sort(blinks, sort), sort) {
		rows = append(rows, Row{Kind: RowSection, Type: section.Type, Count: len(section.Blinks)})
		for i := range section.Blinks {
			rows = append(rows, Row{Kind: RowBlink, Type: section.Type, Blink: &section.Blinks[i]})
		}
	}
	return rows
}
