package main

import (
	"context"
	"fmt"

	"github.com/qscan-dev/qscan/app"
	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/service"
	"github.com/spf13/cobra"
)

func smellsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smells [path...]",
		Short: "Detect code smells",
		Long: `Detect code smells such as long methods, long parameter lists,
duplicated lines, magic numbers, and god classes.

Examples:
  qscan smells src/
  qscan smells --min-severity medium src/
  qscan smells --format json src/`,
		RunE: runSmells,
	}

	cmd.Flags().StringP("format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringP("config", "c", "",
		"Path to config file")
	cmd.Flags().String("min-severity", "",
		"Minimum severity to report: high, medium, low")
	cmd.Flags().String("sort", "",
		"Sort findings by: severity, location")
	cmd.Flags().Bool("no-progress", false,
		"Disable progress reporting")

	return cmd
}

func runSmells(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	cfgPath, _ := cmd.Flags().GetString("config")
	minSeverity, _ := cmd.Flags().GetString("min-severity")
	sortFlag, _ := cmd.Flags().GetString("sort")
	noProg, _ := cmd.Flags().GetBool("no-progress")

	format := resolveFormat(formatFlag, false, false)

	cfg, err := loadAppConfig(cfgPath)
	if err != nil {
		return err
	}

	if minSeverity == "" {
		minSeverity = cfg.Smells.MinSeverity
	}

	req := domain.SmellRequest{
		Paths:           args,
		OutputFormat:    format,
		MinSeverity:     domain.Severity(minSeverity),
		SortBy:          domain.SortCriteria(sortFlag),
		Language:        cfg.Analysis.Language,
		ConfigPath:      cfgPath,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}

	pm := service.NewProgressManager(!noProg && format == domain.OutputFormatText && outPath == "")
	defer pm.Close()

	svc := service.NewSmellServiceWithProgress(cfg, pm)
	uc := app.NewSmellUseCase(svc)

	resp, err := uc.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	writer, closeWriter, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeWriter()

	return service.NewSmellFormatter().Write(resp, format, writer)
}
