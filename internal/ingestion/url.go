package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/hiring-agent/internal/fetch"
)

// LoadFromURL fetches a remote page and extracts its main text using
// job-posting selectors with a body fallback.
func LoadFromURL(ctx context.Context, urlStr string) (string, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.JobPostingSelectors())
	if err != nil {
		return "", fmt.Errorf("content extraction failed: %w", err)
	}
	return text, nil
}

// LoadResumeFromURL fetches a candidate profile page and extracts its
// main text using profile selectors with a body fallback.
func LoadResumeFromURL(ctx context.Context, urlStr string) (string, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.ProfilePageSelectors())
	if err != nil {
		return "", fmt.Errorf("content extraction failed: %w", err)
	}
	return text, nil
}
