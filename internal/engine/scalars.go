package engine

import (
	"fmt"

	"github.com/rooftally/rooftally/internal/model"
)

// Scalar keys for packaged quantities, keyed by material category.
var quantityScalarKeys = map[model.MaterialCategory]string{
	model.CategoryShingles:     "bundles.shingles",
	model.CategoryRidgeCap:     "bundles.ridge_cap",
	model.CategoryStarter:      "bundles.starter",
	model.CategoryUnderlayment: "rolls.underlayment",
	model.CategoryIceWater:     "rolls.ice_water",
	model.CategoryValley:       "rolls.valley",
	model.CategoryDripEdge:     "sticks.drip_edge",
}

// buildScalars flattens a measurement and its derived lines into the
// name -> value table consumed by document templates. The table is built
// once per derivation; templates never parse measurement records directly.
func buildScalars(s model.MeasurementSummary, result model.TakeoffResult) map[string]float64 {
	squares := s.TotalSquares()

	scalars := map[string]float64{
		"roof.area_sqft": s.AreaSqFt,
		"roof.squares":   squares,
		"roof.pitch":     s.Pitch,
		"roof.stories":   float64(s.Stories),
		"lf.ridge":       s.LFRidge,
		"lf.hip":         s.LFHip,
		"lf.valley":      s.LFValley,
		"lf.eave":        s.LFEave,
		"lf.rake":        s.LFRake,
		"lf.step":        s.LFStep,
		"waste.percent":  s.WastePercent,
	}

	// Waste-adjusted square counts for every offered percentage, so
	// proposal templates can show material at alternative waste levels.
	for _, w := range model.AllowedWastePercents {
		key := fmt.Sprintf("waste.%dpct.squares", int(w))
		scalars[key] = squares * (1 + w/100)
	}

	for cat, count := range s.Penetrations {
		scalars["count."+string(cat)] = float64(count)
	}

	for _, line := range result.Lines {
		if key, ok := quantityScalarKeys[line.Category]; ok {
			scalars[key] = line.Quantity
		}
		scalars["cost."+string(line.Category)] = line.TotalCost
	}
	scalars["cost.total"] = result.TotalCost()

	return scalars
}
