package app

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/qscan-dev/qscan/internal/lang"
)

// FileHelper provides file operation utilities
type FileHelper struct {
	respectGitignore bool
}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{respectGitignore: true}
}

// NewFileHelperWithOptions creates a FileHelper with explicit gitignore handling
func NewFileHelperWithOptions(respectGitignore bool) *FileHelper {
	return &FileHelper{respectGitignore: respectGitignore}
}

// CollectSourceFiles collects supported source files from paths
func (h *FileHelper) CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.IsValidSourceFile(path) && h.matchesInclude(path, includePatterns) && !h.isExcluded(path, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		matcher := h.loadGitignore(path)

		if recursive {
			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				// Skip excluded directories early
				if info.IsDir() {
					dirName := filepath.Base(filePath)
					for _, pattern := range excludePatterns {
						if pattern == dirName {
							return filepath.SkipDir
						}
						if matched, _ := filepath.Match(pattern, dirName); matched {
							return filepath.SkipDir
						}
					}
					return nil
				}

				if !h.IsValidSourceFile(filePath) || !h.matchesInclude(filePath, includePatterns) || h.isExcluded(filePath, excludePatterns) {
					return nil
				}
				if matcher != nil {
					if rel, relErr := filepath.Rel(path, filePath); relErr == nil && matcher.MatchesPath(rel) {
						return nil
					}
				}

				files = append(files, filePath)
				return nil
			})
		} else {
			entries, readErr := os.ReadDir(path)
			if readErr != nil {
				return nil, readErr
			}

			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				filePath := filepath.Join(path, entry.Name())
				if !h.IsValidSourceFile(filePath) || !h.matchesInclude(filePath, includePatterns) || h.isExcluded(filePath, excludePatterns) {
					continue
				}
				if matcher != nil && matcher.MatchesPath(entry.Name()) {
					continue
				}
				files = append(files, filePath)
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsValidSourceFile checks if a file has a supported extension
func (h *FileHelper) IsValidSourceFile(path string) bool {
	return lang.IsSupportedFile(path)
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// loadGitignore compiles the .gitignore at the directory root, if any
func (h *FileHelper) loadGitignore(root string) *ignore.GitIgnore {
	if !h.respectGitignore {
		return nil
	}
	matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return matcher
}

// matchesInclude reports whether the file matches any include pattern.
// An empty pattern list includes everything.
func (h *FileHelper) matchesInclude(path string, includePatterns []string) bool {
	if len(includePatterns) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range includePatterns {
		// Patterns like **/*.js constrain the file name only
		pattern = strings.TrimPrefix(pattern, "**/")
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// isExcluded checks if a path matches any exclude pattern
func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		// Also check full path matching
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// ResolveFilePaths resolves file paths, returning existing files directly
// or collecting files from directories
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	// Check if all paths are already files
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	// If all paths are already files, no need to collect again
	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectSourceFiles(paths, recursive, includePatterns, excludePatterns)
}
