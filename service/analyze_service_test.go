package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/internal/config"
)

func TestNewAnalyzeService(t *testing.T) {
	cfg := config.DefaultConfig()

	service := NewAnalyzeService(cfg)

	if service == nil {
		t.Fatal("NewAnalyzeService should not return nil")
	}
	if service.smells == nil || service.refactors == nil || service.complexity == nil {
		t.Error("Section services should be initialized")
	}
}

func TestAnalyzeService_Analyze_EmptyPaths(t *testing.T) {
	service := NewAnalyzeService(config.DefaultConfig())

	req := domain.AnalyzeRequest{
		Paths: []string{},
	}

	_, err := service.Analyze(context.Background(), req)
	if err == nil {
		t.Error("Should return error for empty paths")
	}
}

func TestAnalyzeService_Analyze_AllSections(t *testing.T) {
	jsFile := writeTestFile(t, "test.js", `
// Adds two numbers
function add(a, b) {
    let sum = a + b;
    return sum;
}
`)

	service := NewAnalyzeService(config.DefaultConfig())

	// All section flags false selects everything
	req := domain.AnalyzeRequest{
		Paths: []string{jsFile},
	}

	resp, err := service.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze should not return error: %v", err)
	}

	if len(resp.Files) != 1 {
		t.Fatalf("Should have 1 file result, got %d", len(resp.Files))
	}

	file := resp.Files[0]
	if file.FilePath != jsFile {
		t.Errorf("FilePath should be %s, got %s", jsFile, file.FilePath)
	}
	if len(file.Functions) != 1 {
		t.Errorf("Should find 1 function, got %d", len(file.Functions))
	}
	if file.Quality.Grade == "" {
		t.Error("Quality grade should not be empty")
	}

	if resp.Smells == nil {
		t.Error("Smells section should be present")
	}
	if resp.Refactors == nil {
		t.Error("Refactors section should be present")
	}
	if resp.Complexity == nil {
		t.Error("Complexity section should be present")
	}
}

func TestAnalyzeService_Analyze_SelectedSection(t *testing.T) {
	jsFile := writeTestFile(t, "test.js", `function test() { return 1; }`)

	service := NewAnalyzeService(config.DefaultConfig())

	req := domain.AnalyzeRequest{
		Paths:         []string{jsFile},
		IncludeSmells: true,
	}

	resp, err := service.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze should not return error: %v", err)
	}

	if resp.Smells == nil {
		t.Error("Smells section should be present")
	}
	if resp.Refactors != nil {
		t.Error("Refactors section should not be present")
	}
	if resp.Complexity != nil {
		t.Error("Complexity section should not be present")
	}
}

func TestAnalyzeService_Analyze_DisabledSections(t *testing.T) {
	jsFile := writeTestFile(t, "test.js", `function test() { return 1; }`)

	cfg := config.DefaultConfig()
	cfg.Smells.Enabled = false
	cfg.Complexity.Enabled = false
	service := NewAnalyzeService(cfg)

	// All section flags false would normally select everything
	req := domain.AnalyzeRequest{
		Paths: []string{jsFile},
	}

	resp, err := service.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze should not return error: %v", err)
	}

	if resp.Smells != nil {
		t.Error("Smells section should be absent when disabled in config")
	}
	if resp.Complexity != nil {
		t.Error("Complexity section should be absent when disabled in config")
	}
	if resp.Refactors == nil {
		t.Error("Refactors section should still be present")
	}
}

func TestAnalyzeService_Analyze_QualityConfig(t *testing.T) {
	// 90-char line: within the default 120 limit, over a configured 80
	jsFile := writeTestFile(t, "test.js", "let pad = \""+strings.Repeat("x", 76)+"\";")

	cfg := config.DefaultConfig()
	cfg.Quality.MaxLineLength = 80
	service := NewAnalyzeService(cfg)

	resp, err := service.Analyze(context.Background(), domain.AnalyzeRequest{
		Paths:             []string{jsFile},
		IncludeComplexity: true,
	})
	if err != nil {
		t.Fatalf("Analyze should not return error: %v", err)
	}

	found := false
	for _, issue := range resp.Files[0].Issues {
		if issue.Type == "line_too_long" {
			found = true
		}
	}
	if !found {
		t.Error("max_line_length=80 should flag the overlong line")
	}

	cfg = config.DefaultConfig()
	cfg.Quality.Enabled = false
	service = NewAnalyzeService(cfg)

	resp, err = service.Analyze(context.Background(), domain.AnalyzeRequest{
		Paths:             []string{jsFile},
		IncludeComplexity: true,
	})
	if err != nil {
		t.Fatalf("Analyze should not return error: %v", err)
	}
	if len(resp.Files[0].Issues) != 0 {
		t.Errorf("Disabled quality section should skip the issue scan, got %d issues",
			len(resp.Files[0].Issues))
	}
}

func TestAnalyzeService_Analyze_ContextCancellation(t *testing.T) {
	service := NewAnalyzeService(config.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := domain.AnalyzeRequest{
		Paths: []string{"test.js"},
	}

	_, err := service.Analyze(ctx, req)
	if err == nil {
		t.Error("Should return error when context is cancelled")
	}
}

func TestAnalyzeService_Analyze_Summary(t *testing.T) {
	dir := t.TempDir()
	first := writeTestFileIn(t, dir, "a.js", `function one() { return 1; }`)
	second := writeTestFileIn(t, dir, "b.js", `function two() { return 2; }`)

	service := NewAnalyzeService(config.DefaultConfig())

	req := domain.AnalyzeRequest{
		Paths:            []string{first, second},
		IncludeSmells:    true,
		IncludeRefactors: true,
	}

	resp, err := service.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze should not return error: %v", err)
	}

	if resp.Summary.FilesAnalyzed != 2 {
		t.Errorf("FilesAnalyzed should be 2, got %d", resp.Summary.FilesAnalyzed)
	}
	if resp.Summary.TotalFunctions != 2 {
		t.Errorf("TotalFunctions should be 2, got %d", resp.Summary.TotalFunctions)
	}
	if resp.Summary.AverageScore <= 0 {
		t.Errorf("AverageScore should be positive, got %.1f", resp.Summary.AverageScore)
	}
	if len(resp.Summary.GradeDistribution) == 0 {
		t.Error("GradeDistribution should not be empty")
	}
}

func TestAnalyzeService_Analyze_ResponseFields(t *testing.T) {
	jsFile := writeTestFile(t, "test.js", `function test() { return 1; }`)

	service := NewAnalyzeService(config.DefaultConfig())

	req := domain.AnalyzeRequest{
		Paths:             []string{jsFile},
		IncludeComplexity: true,
	}

	resp, err := service.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze should not return error: %v", err)
	}

	if resp.GeneratedAt == "" {
		t.Error("GeneratedAt should not be empty")
	}
	if _, err := time.Parse(time.RFC3339, resp.GeneratedAt); err != nil {
		t.Errorf("GeneratedAt should be valid RFC3339: %v", err)
	}
	if resp.Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestAnalyzeService_sortFiles_ByScore(t *testing.T) {
	service := NewAnalyzeService(config.DefaultConfig())

	files := []domain.FileAnalysis{
		{FilePath: "good.js", Quality: domain.QualityReport{Score: 90}},
		{FilePath: "bad.js", Quality: domain.QualityReport{Score: 40}},
		{FilePath: "ok.js", Quality: domain.QualityReport{Score: 70}},
	}

	sorted := service.sortFiles(files, domain.SortByScore)

	// Worst score first
	if sorted[0].FilePath != "bad.js" {
		t.Errorf("First should be 'bad.js', got '%s'", sorted[0].FilePath)
	}
	if sorted[2].FilePath != "good.js" {
		t.Errorf("Last should be 'good.js', got '%s'", sorted[2].FilePath)
	}
}

func TestAnalyzeService_sortFiles_Default(t *testing.T) {
	service := NewAnalyzeService(config.DefaultConfig())

	files := []domain.FileAnalysis{
		{FilePath: "b.js"},
		{FilePath: "a.js"},
	}

	sorted := service.sortFiles(files, "")

	if sorted[0].FilePath != "a.js" {
		t.Errorf("Default sort should order by path, got '%s' first", sorted[0].FilePath)
	}
}

func TestAnalyzeService_generateSummary_Empty(t *testing.T) {
	service := NewAnalyzeService(config.DefaultConfig())

	summary := service.generateSummary(nil)

	if summary.FilesAnalyzed != 0 {
		t.Error("Empty input should have 0 files analyzed")
	}
	if summary.AverageScore != 0 {
		t.Error("Empty input should have 0 average score")
	}
}
