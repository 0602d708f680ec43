package model

import (
	"sort"
	"strings"
)

// SortOption selects the list ordering.
type SortOption string

const (
	SortNewest SortOption = "newest"
	SortTitle  SortOption = "title"
)

// Next cycles to the other sort option.
func (s SortOption) Next() SortOption {
	if s == SortTitle {
		return SortNewest
	}
	return SortTitle
}

// Section is a group of Blinks sharing a type.
type Section struct {
	Type   Type
	Blinks []Blink
}

// FindByID returns the Blink with the given id, or nil.
func FindByID(blinks []Blink, id string) *Blink {
	for i := range blinks {
		if blinks[i].ID == id {
			return &blinks[i]
		}
	}
	return nil
}

// Sort returns a sorted copy. Two reminders always compare by reminder date
// (undated last); everything else follows opt.
func Sort(blinks []Blink, opt SortOption) []Blink {
	sorted := make([]Blink, len(blinks))
	copy(sorted, blinks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsReminder() && b.IsReminder() {
			switch {
			case a.ReminderDate == nil:
				return false
			case b.ReminderDate == nil:
				return true
			default:
				return a.ReminderDate.Before(*b.ReminderDate)
			}
		}
		if opt == SortTitle {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
		return a.CreatedOn.After(b.CreatedOn)
	})
	return sorted
}

// GroupByType splits sorted Blinks into sections in display order.
// Empty sections are omitted. With SortTitle each section is re-sorted by title.
func GroupByType(blinks []Blink, opt SortOption) []Section {
	byType := make(map[Type][]Blink)
	for _, b := range blinks {
		byType[b.Type] = append(byType[b.Type], b)
	}

	sections := make([]Section, 0, len(Types))
	for _, t := range Types {
		group := byType[t]
		if len(group) == 0 {
			continue
		}
		if opt == SortTitle {
			sort.SliceStable(group, func(i, j int) bool {
				return strings.ToLower(group[i].Title) < strings.ToLower(group[j].Title)
			})
		}
		sections = append(sections, Section{Type: t, Blinks: group})
	}
	return sections
}
