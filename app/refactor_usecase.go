package app

import (
	"context"
	"fmt"

	"github.com/qscan-dev/qscan/domain"
)

// RefactorUseCase orchestrates the refactoring advisor workflow
type RefactorUseCase struct {
	service    domain.RefactorService
	fileHelper *FileHelper
}

// NewRefactorUseCase creates a new refactor use case
func NewRefactorUseCase(service domain.RefactorService) *RefactorUseCase {
	return &RefactorUseCase{
		service:    service,
		fileHelper: NewFileHelper(),
	}
}

// Execute performs the complete refactoring suggestion workflow
func (uc *RefactorUseCase) Execute(ctx context.Context, req domain.RefactorRequest) (*domain.RefactorResponse, error) {
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

	response, err := uc.service.Suggest(ctx, req)
	if err != nil {
		return nil, domain.NewAnalysisError("refactoring analysis failed", err)
	}

	return response, nil
}

func (uc *RefactorUseCase) validateRequest(req domain.RefactorRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	if req.MinPriority != "" && !domain.PriorityAtLeast(req.MinPriority, domain.PriorityLow) {
		return fmt.Errorf("unknown priority: %s", req.MinPriority)
	}

	return nil
}
