package domain

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// SortCriteria represents the criteria for sorting results
type SortCriteria string

const (
	SortByName       SortCriteria = "name"
	SortByComplexity SortCriteria = "complexity"
	SortByScore      SortCriteria = "score"
	SortBySeverity   SortCriteria = "severity"
	SortByLocation   SortCriteria = "location"
)

// Severity represents the severity of a finding
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Priority represents the priority of a refactoring suggestion
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// EffortLevel estimates how invasive a suggested change is
type EffortLevel string

const (
	EffortSmall  EffortLevel = "small"
	EffortMedium EffortLevel = "medium"
	EffortLarge  EffortLevel = "large"
)

// severityRank orders severities from most to least severe
var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// SeverityAtLeast reports whether s is at least as severe as min.
// Unknown severities never pass the filter.
func SeverityAtLeast(s, min Severity) bool {
	sr, ok := severityRank[s]
	if !ok {
		return false
	}
	mr, ok := severityRank[min]
	if !ok {
		return false
	}
	return sr <= mr
}

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// PriorityAtLeast reports whether p is at least as urgent as min
func PriorityAtLeast(p, min Priority) bool {
	pr, ok := priorityRank[p]
	if !ok {
		return false
	}
	mr, ok := priorityRank[min]
	if !ok {
		return false
	}
	return pr <= mr
}
