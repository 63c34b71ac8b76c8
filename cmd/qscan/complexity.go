package main

import (
	"context"
	"fmt"

	"github.com/qscan-dev/qscan/app"
	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/internal/config"
	"github.com/qscan-dev/qscan/service"
	"github.com/spf13/cobra"
)

func complexityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complexity [path...]",
		Short: "Analyze code complexity",
		Long: `Measure cyclomatic complexity, cognitive complexity, nesting depth,
Halstead metrics, and the maintainability index.

Examples:
  qscan complexity src/
  qscan complexity --min 10 src/
  qscan complexity --low-threshold 5 --medium-threshold 10 src/`,
		RunE: runComplexity,
	}

	cmd.Flags().StringP("format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringP("config", "c", "",
		"Path to config file")
	cmd.Flags().Int("min", config.DefaultMinComplexityFilter,
		"Minimum complexity to report")
	cmd.Flags().Int("max", config.DefaultMaxComplexityLimit,
		"Maximum complexity to report (0 = no limit)")
	cmd.Flags().Int("low-threshold", 0,
		"Complexity at or below this is low risk (0 = use config)")
	cmd.Flags().Int("medium-threshold", 0,
		"Complexity at or below this is medium risk (0 = use config)")
	cmd.Flags().String("sort", "complexity",
		"Sort functions by: complexity, name, location")
	cmd.Flags().Bool("no-progress", false,
		"Disable progress reporting")

	return cmd
}

// resolveMinComplexity applies output.min_complexity from the config
// file when the --min flag was left at its default.
func resolveMinComplexity(flagValue int, flagChanged bool, cfg *config.Config) int {
	if flagChanged || cfg == nil {
		return flagValue
	}
	if cfg.Output.MinComplexity > 0 {
		return cfg.Output.MinComplexity
	}
	return flagValue
}

func runComplexity(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	cfgPath, _ := cmd.Flags().GetString("config")
	minComplexity, _ := cmd.Flags().GetInt("min")
	maxComplexity, _ := cmd.Flags().GetInt("max")
	lowThreshold, _ := cmd.Flags().GetInt("low-threshold")
	mediumThreshold, _ := cmd.Flags().GetInt("medium-threshold")
	sortFlag, _ := cmd.Flags().GetString("sort")
	noProg, _ := cmd.Flags().GetBool("no-progress")

	format := resolveFormat(formatFlag, false, false)

	cfg, err := loadAppConfig(cfgPath)
	if err != nil {
		return err
	}

	// Flags win over the config file; zero falls back to it
	if lowThreshold <= 0 {
		lowThreshold = cfg.Complexity.LowThreshold
	}
	if mediumThreshold <= 0 {
		mediumThreshold = cfg.Complexity.MediumThreshold
	}
	minComplexity = resolveMinComplexity(minComplexity, cmd.Flags().Changed("min"), cfg)

	req := domain.ComplexityRequest{
		Paths:           args,
		OutputFormat:    format,
		MinComplexity:   minComplexity,
		MaxComplexity:   maxComplexity,
		SortBy:          domain.SortCriteria(sortFlag),
		LowThreshold:    lowThreshold,
		MediumThreshold: mediumThreshold,
		Language:        cfg.Analysis.Language,
		ConfigPath:      cfgPath,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}

	pm := service.NewProgressManager(!noProg && format == domain.OutputFormatText && outPath == "")
	defer pm.Close()

	svc := service.NewComplexityServiceWithProgress(cfg, pm)
	uc, err := app.NewComplexityUseCaseBuilder().
		WithService(svc).
		WithFileHelper(app.NewFileHelperWithOptions(cfg.Analysis.RespectGitignore)).
		Build()
	if err != nil {
		return err
	}

	resp, err := uc.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	writer, closeWriter, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeWriter()

	return service.NewComplexityFormatter().Write(resp, format, writer)
}
