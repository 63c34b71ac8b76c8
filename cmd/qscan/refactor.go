package main

import (
	"context"
	"fmt"

	"github.com/qscan-dev/qscan/app"
	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/service"
	"github.com/spf13/cobra"
)

func refactorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refactor [path...]",
		Short: "Suggest refactorings",
		Long: `Suggest prioritized refactorings such as extract method, split
parameter object, simplify conditionals, and rename unclear variables.

Examples:
  qscan refactor src/
  qscan refactor --min-priority high src/
  qscan refactor --format yaml src/`,
		RunE: runRefactor,
	}

	cmd.Flags().StringP("format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringP("config", "c", "",
		"Path to config file")
	cmd.Flags().String("min-priority", "",
		"Minimum priority to report: high, medium, low")
	cmd.Flags().String("sort", "",
		"Sort suggestions by: priority, location")
	cmd.Flags().Bool("no-progress", false,
		"Disable progress reporting")

	return cmd
}

func runRefactor(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	cfgPath, _ := cmd.Flags().GetString("config")
	minPriority, _ := cmd.Flags().GetString("min-priority")
	sortFlag, _ := cmd.Flags().GetString("sort")
	noProg, _ := cmd.Flags().GetBool("no-progress")

	format := resolveFormat(formatFlag, false, false)

	cfg, err := loadAppConfig(cfgPath)
	if err != nil {
		return err
	}

	req := domain.RefactorRequest{
		Paths:           args,
		OutputFormat:    format,
		MinPriority:     domain.Priority(minPriority),
		SortBy:          domain.SortCriteria(sortFlag),
		Language:        cfg.Analysis.Language,
		ConfigPath:      cfgPath,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}

	pm := service.NewProgressManager(!noProg && format == domain.OutputFormatText && outPath == "")
	defer pm.Close()

	svc := service.NewRefactorServiceWithProgress(cfg, pm)
	uc := app.NewRefactorUseCase(svc)

	resp, err := uc.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	writer, closeWriter, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeWriter()

	return service.NewRefactorFormatter().Write(resp, format, writer)
}
