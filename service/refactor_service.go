package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/internal/analyzer"
	"github.com/qscan-dev/qscan/internal/config"
	"github.com/qscan-dev/qscan/internal/version"
)

// RefactorServiceImpl implements the RefactorService interface
type RefactorServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
}

// NewRefactorService creates a new refactoring advisor service implementation
func NewRefactorService(cfg *config.Config) *RefactorServiceImpl {
	return &RefactorServiceImpl{
		config: cfg,
	}
}

// NewRefactorServiceWithProgress creates a new refactoring advisor service with progress reporting
func NewRefactorServiceWithProgress(cfg *config.Config, pm domain.ProgressManager) *RefactorServiceImpl {
	return &RefactorServiceImpl{
		config:   cfg,
		progress: pm,
	}
}

// Suggest runs every suggester across the requested files
func (s *RefactorServiceImpl) Suggest(ctx context.Context, req domain.RefactorRequest) (*domain.RefactorResponse, error) {
	var suggestions []domain.RefactorSuggestion
	var warnings []string
	var errors []string
	filesProcessed := 0

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Collecting refactoring suggestions", len(req.Paths))
	}
	defer task.Complete()

	thresholds := smellThresholds(s.config)
	for _, filePath := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("refactoring analysis cancelled: %w", ctx.Err())
		default:
		}

		src, err := loadSource(filePath, req.Language)
		if err != nil {
			errors = append(errors, fmt.Sprintf("[%s] Failed to read file: %v", filePath, err))
			task.Increment(1)
			continue
		}

		report := analyzer.SuggestRefactoringsWith(src, thresholds)
		for _, suggestion := range report.Suggestions {
			converted := domain.RefactorSuggestion{
				Type:        suggestion.Type,
				Priority:    domain.Priority(suggestion.Priority),
				Description: suggestion.Description,
				Rationale:   suggestion.Rationale,
				FilePath:    filePath,
				Line:        suggestion.Line,
				Effort:      domain.EffortLevel(suggestion.Effort),
			}
			if suggestion.Example != nil {
				converted.Example = &domain.CodeExample{
					Before: suggestion.Example.Before,
					After:  suggestion.Example.After,
				}
			}
			suggestions = append(suggestions, converted)
		}
		filesProcessed++
		task.Increment(1)
	}

	if filesProcessed == 0 {
		return nil, domain.NewAnalysisError("no files could be analyzed", nil)
	}

	filtered := s.filterSuggestions(suggestions, req.MinPriority)
	sorted := s.sortSuggestions(filtered, req.SortBy)
	summary := s.generateSummary(sorted, filesProcessed)

	return &domain.RefactorResponse{
		Suggestions: sorted,
		Summary:     summary,
		SummaryText: summarizeSuggestionCounts(summary),
		Warnings:    warnings,
		Errors:      errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// filterSuggestions drops suggestions below the minimum priority
func (s *RefactorServiceImpl) filterSuggestions(suggestions []domain.RefactorSuggestion, minPriority domain.Priority) []domain.RefactorSuggestion {
	if minPriority == "" {
		return suggestions
	}

	var filtered []domain.RefactorSuggestion
	for _, suggestion := range suggestions {
		if domain.PriorityAtLeast(suggestion.Priority, minPriority) {
			filtered = append(filtered, suggestion)
		}
	}
	return filtered
}

// sortSuggestions sorts suggestions based on the specified criteria
func (s *RefactorServiceImpl) sortSuggestions(suggestions []domain.RefactorSuggestion, sortBy domain.SortCriteria) []domain.RefactorSuggestion {
	sorted := make([]domain.RefactorSuggestion, len(suggestions))
	copy(sorted, suggestions)

	switch sortBy {
	case domain.SortByName:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Type < sorted[j].Type
		})
	case domain.SortByLocation:
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].FilePath != sorted[j].FilePath {
				return sorted[i].FilePath < sorted[j].FilePath
			}
			return sorted[i].Line < sorted[j].Line
		})
	default:
		// Default: high priority first, then by location
		rank := map[domain.Priority]int{
			domain.PriorityHigh:   3,
			domain.PriorityMedium: 2,
			domain.PriorityLow:    1,
		}
		sort.Slice(sorted, func(i, j int) bool {
			if rank[sorted[i].Priority] != rank[sorted[j].Priority] {
				return rank[sorted[i].Priority] > rank[sorted[j].Priority]
			}
			if sorted[i].FilePath != sorted[j].FilePath {
				return sorted[i].FilePath < sorted[j].FilePath
			}
			return sorted[i].Line < sorted[j].Line
		})
	}

	return sorted
}

// generateSummary tallies suggestions by type and priority
func (s *RefactorServiceImpl) generateSummary(suggestions []domain.RefactorSuggestion, filesProcessed int) domain.RefactorSummary {
	summary := domain.RefactorSummary{
		FilesAnalyzed:    filesProcessed,
		TotalCount:       len(suggestions),
		CountsByType:     make(map[string]int),
		CountsByPriority: make(map[string]int),
	}

	for _, suggestion := range suggestions {
		summary.CountsByType[suggestion.Type]++
		summary.CountsByPriority[string(suggestion.Priority)]++
	}

	return summary
}

// summarizeSuggestionCounts builds the one-line priority breakdown
func summarizeSuggestionCounts(summary domain.RefactorSummary) string {
	if summary.TotalCount == 0 {
		return "No refactoring suggestions. The code looks clean."
	}
	noun := "refactoring suggestions"
	if summary.TotalCount == 1 {
		noun = "refactoring suggestion"
	}
	return fmt.Sprintf("Found %d %s: %d high, %d medium, %d low priority.",
		summary.TotalCount, noun,
		summary.CountsByPriority[string(domain.PriorityHigh)],
		summary.CountsByPriority[string(domain.PriorityMedium)],
		summary.CountsByPriority[string(domain.PriorityLow)])
}
