// Package outwriter renders analysis results in text, CSV, JSON, and
// Parquet formats.
package outwriter

import (
	"os"

	"github.com/gamelens/gamelens/internal/contract"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations. It
// encapsulates the output formats behind one API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// GetMaxTableTextWidth calculates the maximum width for free-text table
// cells (titles, descriptions) based on terminal width.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns plus borders and padding
	baseWidth := 40

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}
