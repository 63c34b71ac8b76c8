package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/internal/analyzer"
	"github.com/qscan-dev/qscan/internal/config"
	"github.com/qscan-dev/qscan/internal/lang"
	"github.com/qscan-dev/qscan/internal/source"
	"github.com/qscan-dev/qscan/internal/version"
)

// ComplexityServiceImpl implements the ComplexityService interface
type ComplexityServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
}

// NewComplexityService creates a new complexity service implementation
func NewComplexityService(cfg *config.Config) *ComplexityServiceImpl {
	return &ComplexityServiceImpl{
		config: cfg,
	}
}

// NewComplexityServiceWithProgress creates a new complexity service with progress reporting
func NewComplexityServiceWithProgress(cfg *config.Config, pm domain.ProgressManager) *ComplexityServiceImpl {
	return &ComplexityServiceImpl{
		config:   cfg,
		progress: pm,
	}
}

// Analyze performs complexity analysis on multiple files
func (s *ComplexityServiceImpl) Analyze(ctx context.Context, req domain.ComplexityRequest) (*domain.ComplexityResponse, error) {
	var files []domain.FileComplexity
	var functions []domain.FunctionComplexity
	var warnings []string
	var errors []string
	filesProcessed := 0

	risk := s.riskConfig(req)

	// Use a no-op task when no progress manager is set
	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Analyzing complexity", len(req.Paths))
	}
	defer task.Complete()

	for _, filePath := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("complexity analysis cancelled: %w", ctx.Err())
		default:
		}

		src, err := loadSource(filePath, req.Language)
		if err != nil {
			errors = append(errors, fmt.Sprintf("[%s] Failed to read file: %v", filePath, err))
			task.Increment(1)
			continue
		}

		files = append(files, s.analyzeFile(filePath, src, risk))
		functions = append(functions, s.analyzeFunctions(filePath, src, risk)...)
		filesProcessed++
		task.Increment(1)
	}

	if filesProcessed == 0 {
		return nil, domain.NewAnalysisError("no files could be analyzed", nil)
	}

	filtered := s.filterFunctions(functions, req)
	sorted := s.sortFunctions(filtered, req.SortBy)

	return &domain.ComplexityResponse{
		Files:       files,
		Functions:   sorted,
		Summary:     s.generateSummary(files, sorted, filesProcessed),
		Warnings:    warnings,
		Errors:      errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// riskConfig resolves the risk thresholds, preferring explicit request
// values over the loaded configuration.
func (s *ComplexityServiceImpl) riskConfig(req domain.ComplexityRequest) *config.ComplexityConfig {
	risk := s.config.Complexity
	if req.LowThreshold > 0 {
		risk.LowThreshold = req.LowThreshold
	}
	if req.MediumThreshold > 0 {
		risk.MediumThreshold = req.MediumThreshold
	}
	return &risk
}

// analyzeFile computes the file-level complexity metrics
func (s *ComplexityServiceImpl) analyzeFile(filePath string, src *source.Source, risk *config.ComplexityConfig) domain.FileComplexity {
	report := analyzer.AnalyzeComplexity(src)

	return domain.FileComplexity{
		FilePath:     filePath,
		Cyclomatic:   report.Cyclomatic,
		Cognitive:    report.Cognitive,
		NestingDepth: report.NestingDepth,
		Halstead: domain.HalsteadMetrics{
			DistinctOperators: report.Halstead.DistinctOperators,
			DistinctOperands:  report.Halstead.DistinctOperands,
			TotalOperators:    report.Halstead.TotalOperators,
			TotalOperands:     report.Halstead.TotalOperands,
			Vocabulary:        report.Halstead.Vocabulary,
			Length:            report.Halstead.Length,
			Volume:            report.Halstead.Volume,
			Difficulty:        report.Halstead.Difficulty,
			Effort:            report.Halstead.Effort,
			TimeSeconds:       report.Halstead.TimeSeconds,
			DeliveredBugs:     report.Halstead.DeliveredBugs,
		},
		Maintainability: float64(report.MaintainabilityIndex),
		RiskLevel:       domain.RiskLevel(risk.AssessRiskLevel(report.Cyclomatic)),
		Recommendations: report.Recommendations,
	}
}

// analyzeFunctions extracts per-function complexity
func (s *ComplexityServiceImpl) analyzeFunctions(filePath string, src *source.Source, risk *config.ComplexityConfig) []domain.FunctionComplexity {
	spans := src.Functions()
	functions := make([]domain.FunctionComplexity, 0, len(spans))

	for _, fn := range spans {
		functions = append(functions, domain.FunctionComplexity{
			Name:       fn.Name,
			FilePath:   filePath,
			StartLine:  fn.StartLine,
			EndLine:    fn.EndLine,
			Complexity: fn.Complexity,
			RiskLevel:  domain.RiskLevel(risk.AssessRiskLevel(fn.Complexity)),
		})
	}

	return functions
}

// filterFunctions filters functions based on request criteria
func (s *ComplexityServiceImpl) filterFunctions(functions []domain.FunctionComplexity, req domain.ComplexityRequest) []domain.FunctionComplexity {
	var filtered []domain.FunctionComplexity

	for _, fn := range functions {
		if req.MinComplexity > 0 && fn.Complexity < req.MinComplexity {
			continue
		}
		if req.MaxComplexity > 0 && fn.Complexity > req.MaxComplexity {
			continue
		}
		filtered = append(filtered, fn)
	}

	return filtered
}

// sortFunctions sorts functions based on the specified criteria
func (s *ComplexityServiceImpl) sortFunctions(functions []domain.FunctionComplexity, sortBy domain.SortCriteria) []domain.FunctionComplexity {
	sorted := make([]domain.FunctionComplexity, len(functions))
	copy(sorted, functions)

	switch sortBy {
	case domain.SortByName:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	case domain.SortByLocation:
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].FilePath != sorted[j].FilePath {
				return sorted[i].FilePath < sorted[j].FilePath
			}
			return sorted[i].StartLine < sorted[j].StartLine
		})
	default:
		// Default: sort by complexity descending
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Complexity > sorted[j].Complexity
		})
	}

	return sorted
}

// generateSummary generates a summary of the complexity analysis
func (s *ComplexityServiceImpl) generateSummary(files []domain.FileComplexity, functions []domain.FunctionComplexity, filesProcessed int) domain.ComplexitySummary {
	summary := domain.ComplexitySummary{
		FilesAnalyzed:  filesProcessed,
		TotalFunctions: len(functions),
	}

	totalMaintainability := 0.0
	for _, file := range files {
		totalMaintainability += file.Maintainability
	}
	if len(files) > 0 {
		summary.AverageMaintainability = totalMaintainability / float64(len(files))
	}

	if len(functions) == 0 {
		return summary
	}

	totalComplexity := 0
	for _, fn := range functions {
		totalComplexity += fn.Complexity

		if fn.Complexity > summary.MaxComplexity {
			summary.MaxComplexity = fn.Complexity
		}

		switch fn.RiskLevel {
		case domain.RiskLevelHigh:
			summary.HighRiskFunctions++
		case domain.RiskLevelMedium:
			summary.MediumRiskFunctions++
		case domain.RiskLevelLow:
			summary.LowRiskFunctions++
		}
	}
	summary.AverageComplexity = float64(totalComplexity) / float64(len(functions))

	return summary
}

// loadSource reads a file and wraps it in a classified source model.
// An explicit language tag overrides extension detection.
func loadSource(filePath string, language string) (*source.Source, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	tag := language
	if tag == "" {
		tag = lang.DetectTag(filePath)
	}
	return source.New(string(content), tag), nil
}
