package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/internal/analyzer"
	"github.com/qscan-dev/qscan/internal/config"
	"github.com/qscan-dev/qscan/internal/version"
)

// AnalyzeServiceImpl implements the AnalyzeService interface by
// combining per-file analysis with the optional smell, refactoring and
// complexity sections.
type AnalyzeServiceImpl struct {
	config     *config.Config
	progress   domain.ProgressManager
	smells     domain.SmellService
	refactors  domain.RefactorService
	complexity domain.ComplexityService
}

// NewAnalyzeService creates a new analysis service implementation
func NewAnalyzeService(cfg *config.Config) *AnalyzeServiceImpl {
	return &AnalyzeServiceImpl{
		config:     cfg,
		smells:     NewSmellService(cfg),
		refactors:  NewRefactorService(cfg),
		complexity: NewComplexityService(cfg),
	}
}

// NewAnalyzeServiceWithProgress creates a new analysis service with progress reporting
func NewAnalyzeServiceWithProgress(cfg *config.Config, pm domain.ProgressManager) *AnalyzeServiceImpl {
	return &AnalyzeServiceImpl{
		config:     cfg,
		progress:   pm,
		smells:     NewSmellService(cfg),
		refactors:  NewRefactorService(cfg),
		complexity: NewComplexityService(cfg),
	}
}

// sectionTask adapts one optional analysis section to the executor.
type sectionTask struct {
	name    string
	enabled bool
	run     func(ctx context.Context) error
}

func (t *sectionTask) Name() string    { return t.name }
func (t *sectionTask) IsEnabled() bool { return t.enabled }

func (t *sectionTask) Execute(ctx context.Context) (interface{}, error) {
	return nil, t.run(ctx)
}

// Analyze performs full analysis on the given request
func (s *AnalyzeServiceImpl) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	files, warnings, fileErrors, err := s.analyzeFiles(ctx, req)
	if err != nil {
		return nil, err
	}

	response := &domain.AnalyzeResponse{
		Files:       files,
		Summary:     s.generateSummary(files),
		Warnings:    warnings,
		Errors:      fileErrors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}

	if err := s.runSections(ctx, req, response); err != nil {
		return nil, err
	}

	return response, nil
}

// analyzeFiles runs the core per-file analysis
func (s *AnalyzeServiceImpl) analyzeFiles(ctx context.Context, req domain.AnalyzeRequest) ([]domain.FileAnalysis, []string, []string, error) {
	var files []domain.FileAnalysis
	var warnings []string
	var errors []string
	filesProcessed := 0

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Analyzing files", len(req.Paths))
	}
	defer task.Complete()

	engineCfg := s.engineConfig()
	for _, filePath := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, nil, nil, fmt.Errorf("analysis cancelled: %w", ctx.Err())
		default:
		}

		src, err := loadSource(filePath, req.Language)
		if err != nil {
			errors = append(errors, fmt.Sprintf("[%s] Failed to read file: %v", filePath, err))
			task.Increment(1)
			continue
		}

		files = append(files, convertFileAnalysis(analyzer.AnalyzeWith(src, filePath, engineCfg)))
		filesProcessed++
		task.Increment(1)
	}

	if filesProcessed == 0 {
		return nil, nil, nil, domain.NewAnalysisError("no files could be analyzed", nil)
	}

	return s.sortFiles(files, req.SortBy), warnings, errors, nil
}

// engineConfig translates the quality section of the configuration
// into engine tuning. A disabled quality section skips the issue scan
// so its warnings never reach the score.
func (s *AnalyzeServiceImpl) engineConfig() analyzer.AnalyzeConfig {
	if s.config == nil {
		return analyzer.AnalyzeConfig{}
	}
	return analyzer.AnalyzeConfig{
		MaxLineLength: s.config.Quality.MaxLineLength,
		SkipIssueScan: !s.config.Quality.Enabled,
	}
}

// runSections fills in the selected optional sections. The sections
// are independent of each other and run concurrently.
func (s *AnalyzeServiceImpl) runSections(ctx context.Context, req domain.AnalyzeRequest, response *domain.AnalyzeResponse) error {
	// All-false selection means everything
	includeAll := !req.IncludeSmells && !req.IncludeRefactors && !req.IncludeComplexity

	var mu sync.Mutex
	tasks := []domain.ExecutableTask{
		&sectionTask{
			name:    "smells",
			enabled: (includeAll || req.IncludeSmells) && s.config.Smells.Enabled,
			run: func(ctx context.Context) error {
				result, err := s.smells.Detect(ctx, domain.SmellRequest{
					Paths:    req.Paths,
					SortBy:   req.SortBy,
					Language: req.Language,
				})
				if err != nil {
					return err
				}
				mu.Lock()
				response.Smells = result
				mu.Unlock()
				return nil
			},
		},
		&sectionTask{
			name:    "refactors",
			enabled: includeAll || req.IncludeRefactors,
			run: func(ctx context.Context) error {
				result, err := s.refactors.Suggest(ctx, domain.RefactorRequest{
					Paths:    req.Paths,
					SortBy:   req.SortBy,
					Language: req.Language,
				})
				if err != nil {
					return err
				}
				mu.Lock()
				response.Refactors = result
				mu.Unlock()
				return nil
			},
		},
		&sectionTask{
			name:    "complexity",
			enabled: (includeAll || req.IncludeComplexity) && s.config.Complexity.Enabled,
			run: func(ctx context.Context) error {
				result, err := s.complexity.Analyze(ctx, domain.ComplexityRequest{
					Paths:           req.Paths,
					SortBy:          req.SortBy,
					Language:        req.Language,
					LowThreshold:    s.config.Complexity.LowThreshold,
					MediumThreshold: s.config.Complexity.MediumThreshold,
				})
				if err != nil {
					return err
				}
				mu.Lock()
				response.Complexity = result
				mu.Unlock()
				return nil
			},
		},
	}

	executor := NewParallelExecutor()
	if err := executor.Execute(ctx, tasks); err != nil {
		var aggregated *AggregatedError
		if errors.As(err, &aggregated) {
			for _, taskErr := range aggregated.Errors {
				response.Errors = append(response.Errors,
					fmt.Sprintf("[%s] %v", taskErr.TaskName, taskErr.Err))
			}
			return nil
		}
		return err
	}
	return nil
}

// sortFiles sorts file analyses based on the specified criteria
func (s *AnalyzeServiceImpl) sortFiles(files []domain.FileAnalysis, sortBy domain.SortCriteria) []domain.FileAnalysis {
	sorted := make([]domain.FileAnalysis, len(files))
	copy(sorted, files)

	switch sortBy {
	case domain.SortByScore:
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Quality.Score != sorted[j].Quality.Score {
				return sorted[i].Quality.Score < sorted[j].Quality.Score
			}
			return sorted[i].FilePath < sorted[j].FilePath
		})
	default:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].FilePath < sorted[j].FilePath
		})
	}

	return sorted
}

// generateSummary aggregates statistics across all analyzed files
func (s *AnalyzeServiceImpl) generateSummary(files []domain.FileAnalysis) domain.AnalyzeSummary {
	summary := domain.AnalyzeSummary{
		FilesAnalyzed:     len(files),
		GradeDistribution: make(map[string]int),
	}

	totalScore := 0
	for _, file := range files {
		summary.TotalLines += file.Metrics.TotalLines
		summary.TotalFunctions += len(file.Functions)
		summary.TotalIssues += len(file.Issues)
		summary.GradeDistribution[file.Quality.Grade]++
		totalScore += file.Quality.Score
	}
	if len(files) > 0 {
		summary.AverageScore = float64(totalScore) / float64(len(files))
	}

	return summary
}

// convertFileAnalysis maps the engine result onto the domain types
func convertFileAnalysis(result analyzer.FileAnalysis) domain.FileAnalysis {
	analysis := domain.FileAnalysis{
		FilePath: result.Name,
		Metrics: domain.FileMetrics{
			TotalLines:   result.Metrics.TotalLines,
			CodeLines:    result.Metrics.CodeLines,
			CommentLines: result.Metrics.CommentLines,
			BlankLines:   result.Metrics.BlankLines,
		},
		Quality: domain.QualityReport{
			Score: result.Quality.Score,
			Grade: result.Quality.Grade,
		},
	}

	analysis.Functions = make([]domain.FunctionInfo, 0, len(result.Functions))
	for _, fn := range result.Functions {
		analysis.Functions = append(analysis.Functions, domain.FunctionInfo{
			Name:       fn.Name,
			StartLine:  fn.StartLine,
			EndLine:    fn.EndLine,
			LineCount:  fn.LineCount,
			ParamCount: fn.ParamCount,
			Complexity: fn.Complexity,
		})
	}

	for _, variable := range result.Variables {
		analysis.Variables = append(analysis.Variables, domain.VariableInfo{
			Name: variable.Name,
			Line: variable.Line,
		})
	}

	for _, issue := range result.Issues {
		analysis.Issues = append(analysis.Issues, domain.Issue{
			Type:     issue.Type,
			Severity: string(issue.Severity),
			Message:  issue.Message,
			Line:     issue.Line,
		})
	}

	for _, factor := range result.Quality.Factors {
		analysis.Quality.Factors = append(analysis.Quality.Factors, domain.QualityFactor{
			Name:        factor.Name,
			Score:       factor.Score,
			Description: factor.Description,
		})
	}

	return analysis
}
