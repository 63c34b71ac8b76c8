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

// SmellServiceImpl implements the SmellService interface
type SmellServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
}

// NewSmellService creates a new smell detection service implementation
func NewSmellService(cfg *config.Config) *SmellServiceImpl {
	return &SmellServiceImpl{
		config: cfg,
	}
}

// NewSmellServiceWithProgress creates a new smell detection service with progress reporting
func NewSmellServiceWithProgress(cfg *config.Config, pm domain.ProgressManager) *SmellServiceImpl {
	return &SmellServiceImpl{
		config:   cfg,
		progress: pm,
	}
}

// Detect runs all smell detectors across the requested files
func (s *SmellServiceImpl) Detect(ctx context.Context, req domain.SmellRequest) (*domain.SmellResponse, error) {
	var findings []domain.SmellFinding
	var warnings []string
	var errors []string
	filesProcessed := 0

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Detecting code smells", len(req.Paths))
	}
	defer task.Complete()

	thresholds := smellThresholds(s.config)
	for _, filePath := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("smell detection cancelled: %w", ctx.Err())
		default:
		}

		src, err := loadSource(filePath, req.Language)
		if err != nil {
			errors = append(errors, fmt.Sprintf("[%s] Failed to read file: %v", filePath, err))
			task.Increment(1)
			continue
		}

		report := analyzer.DetectSmellsWith(src, thresholds)
		for _, finding := range report.Findings {
			findings = append(findings, domain.SmellFinding{
				Type:        finding.Type,
				Severity:    domain.Severity(finding.Severity),
				Description: finding.Description,
				Remediation: finding.Remediation,
				FilePath:    filePath,
				Line:        finding.Line,
			})
		}
		filesProcessed++
		task.Increment(1)
	}

	if filesProcessed == 0 {
		return nil, domain.NewAnalysisError("no files could be analyzed", nil)
	}

	filtered := s.filterFindings(findings, req.MinSeverity)
	sorted := s.sortFindings(filtered, req.SortBy)
	summary := s.generateSummary(sorted, filesProcessed)

	return &domain.SmellResponse{
		Findings:    sorted,
		Summary:     summary,
		SummaryText: summarizeFindingCounts(summary),
		Warnings:    warnings,
		Errors:      errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// smellThresholds maps the configured detector limits onto the
// analyzer defaults. Zero fields keep the default so a partial config
// file only overrides what it names.
func smellThresholds(cfg *config.Config) analyzer.SmellThresholds {
	th := analyzer.DefaultSmellThresholds()
	if cfg == nil {
		return th
	}
	sc := cfg.Smells
	if sc.LongMethodLines > 0 {
		th.LongMethodLines = sc.LongMethodLines
	}
	if sc.MaxParameters > 0 {
		th.MaxParameters = sc.MaxParameters
	}
	if sc.DuplicateMinLength > 0 {
		th.DuplicateMinLength = sc.DuplicateMinLength
	}
	if sc.DuplicateMinCount > 0 {
		th.DuplicateMinCount = sc.DuplicateMinCount
	}
	if sc.MagicNumberCap > 0 {
		th.MagicNumberCap = sc.MagicNumberCap
	}
	if sc.NestedLoopDepth > 0 {
		th.NestedLoopDepth = sc.NestedLoopDepth
	}
	if sc.GodClassMethods > 0 {
		th.GodClassMethods = sc.GodClassMethods
	}
	if sc.LargeClassLines > 0 {
		th.LargeClassLines = sc.LargeClassLines
	}
	if sc.PrimitiveParamLimit > 0 {
		th.PrimitiveParamLimit = sc.PrimitiveParamLimit
	}
	if sc.SwitchCaseLimit > 0 {
		th.SwitchCaseLimit = sc.SwitchCaseLimit
	}
	return th
}

// filterFindings drops findings below the minimum severity
func (s *SmellServiceImpl) filterFindings(findings []domain.SmellFinding, minSeverity domain.Severity) []domain.SmellFinding {
	if minSeverity == "" {
		return findings
	}

	var filtered []domain.SmellFinding
	for _, finding := range findings {
		if domain.SeverityAtLeast(finding.Severity, minSeverity) {
			filtered = append(filtered, finding)
		}
	}
	return filtered
}

// sortFindings sorts findings based on the specified criteria
func (s *SmellServiceImpl) sortFindings(findings []domain.SmellFinding, sortBy domain.SortCriteria) []domain.SmellFinding {
	sorted := make([]domain.SmellFinding, len(findings))
	copy(sorted, findings)

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
		// Default: high severity first, then by location
		rank := map[domain.Severity]int{
			domain.SeverityHigh:   3,
			domain.SeverityMedium: 2,
			domain.SeverityLow:    1,
		}
		sort.Slice(sorted, func(i, j int) bool {
			if rank[sorted[i].Severity] != rank[sorted[j].Severity] {
				return rank[sorted[i].Severity] > rank[sorted[j].Severity]
			}
			if sorted[i].FilePath != sorted[j].FilePath {
				return sorted[i].FilePath < sorted[j].FilePath
			}
			return sorted[i].Line < sorted[j].Line
		})
	}

	return sorted
}

// generateSummary tallies findings by type and severity
func (s *SmellServiceImpl) generateSummary(findings []domain.SmellFinding, filesProcessed int) domain.SmellSummary {
	summary := domain.SmellSummary{
		FilesAnalyzed:    filesProcessed,
		TotalCount:       len(findings),
		CountsByType:     make(map[string]int),
		CountsBySeverity: make(map[string]int),
	}

	for _, finding := range findings {
		summary.CountsByType[finding.Type]++
		summary.CountsBySeverity[string(finding.Severity)]++
	}

	return summary
}

// summarizeFindingCounts builds the one-line severity breakdown
func summarizeFindingCounts(summary domain.SmellSummary) string {
	if summary.TotalCount == 0 {
		return "No code smells detected. The code looks clean."
	}
	noun := "code smells"
	if summary.TotalCount == 1 {
		noun = "code smell"
	}
	return fmt.Sprintf("Found %d %s: %d high, %d medium, %d low severity.",
		summary.TotalCount, noun,
		summary.CountsBySeverity[string(domain.SeverityHigh)],
		summary.CountsBySeverity[string(domain.SeverityMedium)],
		summary.CountsBySeverity[string(domain.SeverityLow)])
}
