package model

import "fmt"

// Consistency check thresholds. Coverage bounds are inclusive: a summary
// sitting exactly on a bound is still valid.
const (
	minEdgeCoveragePercent = 70.0
	maxEdgeCoveragePercent = 130.0
	maxAreaVariancePercent = 15.0

	// Roofs above this area are expected to show interior line features.
	interiorFeatureAreaSqFt = 500.0
)

// CheckConsistency cross-validates independently measured linear features
// and reported area against geometry computed from the digitized footprint.
// A nil footprint skips the coverage check and leaves coverage at zero.
//
// The verdict is diagnostic only: callers surface it for manual review but
// proceed with material derivation regardless.
func CheckConsistency(s MeasurementSummary, footprint Ring) ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Warnings: []string{},
	}

	var perimeterFt, footprintAreaSqFt float64
	hasFootprint := len(footprint) > 0
	if hasFootprint {
		perimeterFt = footprint.PerimeterFt()
		footprintAreaSqFt = footprint.AreaSqFt()
	}

	edgeTotal := s.EdgeTotalLF()
	if hasFootprint && perimeterFt > 0 {
		result.EdgeCoveragePercent = edgeTotal / perimeterFt * 100

		if result.EdgeCoveragePercent < minEdgeCoveragePercent {
			result.Valid = false
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"eave+rake covers only %.1f%% of the footprint perimeter; linear features may be incomplete",
				result.EdgeCoveragePercent))
		} else if result.EdgeCoveragePercent > maxEdgeCoveragePercent {
			result.Valid = false
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"eave+rake covers %.1f%% of the footprint perimeter; possible duplicate edges",
				result.EdgeCoveragePercent))
		}
	}

	if hasFootprint && footprintAreaSqFt > 0 && s.AreaSqFt > 0 {
		result.AreaVariancePercent = (footprintAreaSqFt - s.AreaSqFt) / s.AreaSqFt * 100

		if result.AreaVariancePercent > maxAreaVariancePercent || result.AreaVariancePercent < -maxAreaVariancePercent {
			result.Valid = false
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"footprint area %.0f sq ft differs from reported area %.0f sq ft by %.1f%%",
				footprintAreaSqFt, s.AreaSqFt, result.AreaVariancePercent))
		}
	}

	// Advisory checks: never affect the verdict.
	if s.AreaSqFt > interiorFeatureAreaSqFt {
		if s.LFRidge == 0 {
			result.Warnings = append(result.Warnings,
				"no ridge detected on a roof over 500 sq ft; verify the measurement")
		}
		if s.LFRidge+s.LFHip+s.LFValley == 0 {
			result.Warnings = append(result.Warnings,
				"no interior features (ridge, hip, valley) detected on a roof over 500 sq ft")
		}
	}

	return result
}
