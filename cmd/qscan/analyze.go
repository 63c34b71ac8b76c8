package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/qscan-dev/qscan/app"
	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/internal/config"
	"github.com/qscan-dev/qscan/service"
	"github.com/spf13/cobra"
)

var (
	selectSections []string
	outputFormat   string
	jsonOutput     bool
	yamlOutput     bool
	outputPath     string
	configPath     string
	sortBy         string
	showDetails    bool
	noProgress     bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Run the full quality analysis",
		Long: `Analyze source files for line metrics, functions, quality issues,
code smells, refactoring opportunities, and complexity, and grade each file.

Examples:
  qscan analyze src/
  qscan analyze --select smells,complexity src/
  qscan analyze --format json src/
  qscan analyze --json src/ > report.json`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringSliceVarP(&selectSections, "select", "s", []string{"smells", "refactor", "complexity"},
		"Sections to include (comma-separated): smells,refactor,complexity")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false,
		"Output results as YAML (shorthand for --format yaml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&sortBy, "sort", "",
		"Sort files by: name, score")
	cmd.Flags().BoolVar(&showDetails, "details", false,
		"Show detailed per-file breakdown")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"Disable progress reporting")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	format := resolveFormat(outputFormat, jsonOutput, yamlOutput)

	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	loader := service.NewConfigurationLoader()
	base := loader.LoadDefaultConfig()
	if configPath != "" {
		base, err = loader.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	override := &domain.AnalyzeRequest{
		Paths:             args,
		OutputFormat:      format,
		ShowDetails:       showDetails,
		SortBy:            domain.SortCriteria(sortBy),
		IncludeSmells:     contains(selectSections, "smells"),
		IncludeRefactors:  contains(selectSections, "refactor"),
		IncludeComplexity: contains(selectSections, "complexity"),
	}
	req := *loader.MergeConfig(base, override)

	writer, closeWriter, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeWriter()
	req.OutputWriter = writer

	// Progress is suppressed for machine-readable output
	pm := service.NewProgressManager(!noProgress && format == domain.OutputFormatText && outputPath == "")
	defer pm.Close()

	svc := service.NewAnalyzeServiceWithProgress(cfg, pm)
	uc, err := app.NewAnalyzeUseCaseBuilder().
		WithService(svc).
		WithFormatter(service.NewAnalyzeFormatter()).
		WithFileHelper(app.NewFileHelperWithOptions(cfg.Analysis.RespectGitignore)).
		Build()
	if err != nil {
		return err
	}

	_, err = uc.Execute(context.Background(), req)
	return err
}

// resolveFormat maps flag values to the output format, with the bool
// shorthands taking precedence
func resolveFormat(format string, asJSON, asYAML bool) domain.OutputFormat {
	if asJSON {
		return domain.OutputFormatJSON
	}
	if asYAML {
		return domain.OutputFormatYAML
	}
	if format == "" {
		return domain.OutputFormatText
	}
	return domain.OutputFormat(format)
}

// loadAppConfig resolves the effective config, falling back to the
// default search locations when no path is given
func loadAppConfig(path string) (*config.Config, error) {
	return config.LoadConfig(path)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, func() { file.Close() }, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
