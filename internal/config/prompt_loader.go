package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// promptDir holds prompt templates named by relative suggest.prompt values.
const promptDir = ".config/niche/prompts"

// categoryPlaceholder must appear in every keyword suggestion template.
const categoryPlaceholder = "{{CATEGORY}}"

// LoadPromptContent reads a keyword suggestion template. Absolute paths are
// read as is; relative or empty ones resolve under ~/.config/niche/prompts,
// falling back to defaultFilename.
func LoadPromptContent(configuredPath, defaultFilename string) (string, error) {
	path := configuredPath
	if !filepath.IsAbs(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		if path == "" {
			path = defaultFilename
		}
		path = filepath.Join(home, promptDir, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file '%s': %w", path, err)
	}
	if !strings.Contains(string(content), categoryPlaceholder) {
		return "", fmt.Errorf("prompt file '%s' does not reference %s", path, categoryPlaceholder)
	}
	return string(content), nil
}
