package model

import "strings"

// ExtractedEntities holds the structured entities found in a query.
// Each list is deduplicated and keeps the originally-cased first occurrence.
type ExtractedEntities struct {
	PolicyNumbers []string      `json:"policy_numbers,omitempty"`
	CoverageTypes []string      `json:"coverage_types,omitempty"`
	Dates         []string      `json:"dates,omitempty"`
	Amounts       []string      `json:"amounts,omitempty"`
	Locations     []string      `json:"locations,omitempty"`
	Names         []string      `json:"names,omitempty"`
	SectionHints  []SectionType `json:"section_hints,omitempty"`
}

// IsEmpty reports whether no entities were extracted at all.
func (e *ExtractedEntities) IsEmpty() bool {
	return len(e.PolicyNumbers) == 0 &&
		len(e.CoverageTypes) == 0 &&
		len(e.Dates) == 0 &&
		len(e.Amounts) == 0 &&
		len(e.Locations) == 0 &&
		len(e.Names) == 0 &&
		len(e.SectionHints) == 0
}

// All returns every extracted entity value as a flat list.
func (e *ExtractedEntities) All() []string {
	all := make([]string, 0,
		len(e.PolicyNumbers)+len(e.CoverageTypes)+len(e.Dates)+
			len(e.Amounts)+len(e.Locations)+len(e.Names))
	all = append(all, e.PolicyNumbers...)
	all = append(all, e.CoverageTypes...)
	all = append(all, e.Dates...)
	all = append(all, e.Amounts...)
	all = append(all, e.Locations...)
	all = append(all, e.Names...)
	return all
}

// Matches reports whether any extracted entity appears in the given text
// (case-insensitive substring match).
func (e *ExtractedEntities) Matches(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, v := range e.All() {
		if v != "" && strings.Contains(lower, strings.ToLower(v)) {
			return true
		}
	}
	return false
}
