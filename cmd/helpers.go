package cmd

import (
	"fmt"

	"github.com/rooftally/rooftally/internal/model"
	"github.com/rooftally/rooftally/internal/project"
)

// resolveQuotesDir returns the quote storage directory, honoring the
// --quotes-dir override.
func resolveQuotesDir() string {
	if quotesDir != "" {
		return quotesDir
	}
	return project.DefaultQuotesDir()
}

// loadQuoteByID loads one stored quote, with a readable error for typos.
func loadQuoteByID(id string) (model.Quote, error) {
	quote, err := project.LoadQuote(resolveQuotesDir(), id)
	if err != nil {
		return model.Quote{}, fmt.Errorf("cannot load quote %q: %w", id, err)
	}
	return quote, nil
}

// runConsistency parses the stored footprint (if any) and runs the
// measurement consistency check against it.
func runConsistency(s model.MeasurementSummary) model.ValidationResult {
	var footprint model.Ring
	if s.FootprintWKT != "" {
		if ring, ok := model.ParseFootprint(s.FootprintWKT); ok {
			footprint = ring
		}
	}
	return model.CheckConsistency(s, footprint)
}
