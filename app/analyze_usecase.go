package app

import (
	"context"
	"fmt"

	"github.com/qscan-dev/qscan/domain"
)

// AnalyzeUseCase orchestrates the full analysis workflow
type AnalyzeUseCase struct {
	service    domain.AnalyzeService
	formatter  domain.AnalyzeOutputFormatter
	fileHelper *FileHelper
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(service domain.AnalyzeService, formatter domain.AnalyzeOutputFormatter) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute performs the full analysis workflow and writes the formatted
// result to the request's output writer.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}

	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no supported source files found in the specified paths", nil)
	}

	req.Paths = files

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, domain.NewAnalysisError("analysis failed", err)
	}

	if req.OutputWriter != nil {
		format := req.OutputFormat
		if format == "" {
			format = domain.OutputFormatText
		}
		if err := uc.formatter.Write(response, format, req.OutputWriter); err != nil {
			return nil, domain.NewOutputError("failed to write output", err)
		}
	}

	return response, nil
}

func (uc *AnalyzeUseCase) validateRequest(req domain.AnalyzeRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	switch req.OutputFormat {
	case "", domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
	default:
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}

	return nil
}

// AnalyzeUseCaseBuilder builds an AnalyzeUseCase
type AnalyzeUseCaseBuilder struct {
	service    domain.AnalyzeService
	formatter  domain.AnalyzeOutputFormatter
	fileHelper *FileHelper
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{}
}

// WithService sets the analyze service
func (b *AnalyzeUseCaseBuilder) WithService(service domain.AnalyzeService) *AnalyzeUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *AnalyzeUseCaseBuilder) WithFormatter(formatter domain.AnalyzeOutputFormatter) *AnalyzeUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithFileHelper sets the file helper
func (b *AnalyzeUseCaseBuilder) WithFileHelper(fh *FileHelper) *AnalyzeUseCaseBuilder {
	b.fileHelper = fh
	return b
}

// Build creates the AnalyzeUseCase
func (b *AnalyzeUseCaseBuilder) Build() (*AnalyzeUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("analyze service is required")
	}

	uc := &AnalyzeUseCase{
		service:    b.service,
		formatter:  b.formatter,
		fileHelper: b.fileHelper,
	}

	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}

	return uc, nil
}
