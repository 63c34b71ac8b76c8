package app

import (
	"context"
	"fmt"

	"github.com/qscan-dev/qscan/domain"
)

// SmellUseCase orchestrates the smell detection workflow
type SmellUseCase struct {
	service    domain.SmellService
	fileHelper *FileHelper
}

// NewSmellUseCase creates a new smell use case
func NewSmellUseCase(service domain.SmellService) *SmellUseCase {
	return &SmellUseCase{
		service:    service,
		fileHelper: NewFileHelper(),
	}
}

// Execute performs the complete smell detection workflow
func (uc *SmellUseCase) Execute(ctx context.Context, req domain.SmellRequest) (*domain.SmellResponse, error) {
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

	response, err := uc.service.Detect(ctx, req)
	if err != nil {
		return nil, domain.NewAnalysisError("smell detection failed", err)
	}

	return response, nil
}

func (uc *SmellUseCase) validateRequest(req domain.SmellRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	if req.MinSeverity != "" && !domain.SeverityAtLeast(req.MinSeverity, domain.SeverityLow) {
		return fmt.Errorf("unknown severity: %s", req.MinSeverity)
	}

	return nil
}
