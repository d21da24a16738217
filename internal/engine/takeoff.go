// Package engine derives packaged, priced material quantities from a
// validated roof measurement summary.
package engine

import (
	"fmt"
	"math"

	"github.com/rooftally/rooftally/internal/catalog"
	"github.com/rooftally/rooftally/internal/model"
)

// Takeoff derives material lines from measurements against a packaging
// catalog. It holds no mutable state; a single instance can serve
// concurrent derivations.
type Takeoff struct {
	catalog catalog.Catalog
}

// New creates a takeoff engine backed by the given catalog.
func New(c catalog.Catalog) *Takeoff {
	return &Takeoff{catalog: c}
}

// Run computes the full bill of materials for the summary. The summary's
// waste percentage applies to area- and length-derived materials only;
// penetration flashing counts pass through untouched. Brands come from the
// summary's selection with catalog-order fallback.
//
// Re-running on unchanged inputs reproduces the same output: the engine
// reads nothing outside its arguments.
func (t *Takeoff) Run(s model.MeasurementSummary) (model.TakeoffResult, error) {
	if !model.IsAllowedWaste(s.WastePercent) {
		return model.TakeoffResult{}, fmt.Errorf("unsupported waste percentage %.0f: must be one of %v",
			s.WastePercent, model.AllowedWastePercents)
	}

	squares := s.TotalSquares()
	result := model.TakeoffResult{
		WastePercent: s.WastePercent,
	}

	// Shingles: 3 bundles per square for all common brands; the catalog
	// factor carries brand exceptions.
	if entry, ok := t.catalog.Resolve(model.CategoryShingles, s.SelectedBrands[model.CategoryShingles]); ok && squares > 0 {
		base := squares * entry.PackagingFactor
		result.Lines = append(result.Lines, t.wasteAdjustedLine(entry, base, s.WastePercent))
	}

	// Ridge and hip cap share one bundled product.
	if entry, ok := t.catalog.Resolve(model.CategoryRidgeCap, s.SelectedBrands[model.CategoryRidgeCap]); ok && s.LFRidge+s.LFHip > 0 {
		base := math.Ceil((s.LFRidge + s.LFHip) / entry.PackagingFactor)
		result.Lines = append(result.Lines, t.wasteAdjustedLine(entry, base, s.WastePercent))
	}

	// Starter strip runs the full eave and rake length.
	if entry, ok := t.catalog.Resolve(model.CategoryStarter, s.SelectedBrands[model.CategoryStarter]); ok && s.EdgeTotalLF() > 0 {
		base := math.Ceil(s.EdgeTotalLF() / entry.PackagingFactor)
		result.Lines = append(result.Lines, t.wasteAdjustedLine(entry, base, s.WastePercent))
	}

	// Underlayment covers the whole deck.
	if entry, ok := t.catalog.Resolve(model.CategoryUnderlayment, s.SelectedBrands[model.CategoryUnderlayment]); ok && squares > 0 {
		base := math.Ceil(squares / entry.PackagingFactor)
		result.Lines = append(result.Lines, t.wasteAdjustedLine(entry, base, s.WastePercent))
	}

	// Ice & water shield: a 3 ft strip along eaves and valleys.
	if entry, ok := t.catalog.Resolve(model.CategoryIceWater, s.SelectedBrands[model.CategoryIceWater]); ok {
		protected := iceWaterSquares(s)
		if protected > 0 {
			base := math.Ceil(protected / entry.PackagingFactor)
			result.Lines = append(result.Lines, t.wasteAdjustedLine(entry, base, s.WastePercent))
		}
	}

	// Valley metal.
	if entry, ok := t.catalog.Resolve(model.CategoryValley, s.SelectedBrands[model.CategoryValley]); ok && s.LFValley > 0 {
		base := math.Ceil(s.LFValley / entry.PackagingFactor)
		result.Lines = append(result.Lines, t.wasteAdjustedLine(entry, base, s.WastePercent))
	}

	// Drip edge sticks follow the measured edge length exactly; no waste
	// adjustment on top of the ceiling.
	if entry, ok := t.catalog.Resolve(model.CategoryDripEdge, s.SelectedBrands[model.CategoryDripEdge]); ok && s.EdgeTotalLF() > 0 {
		base := math.Ceil(s.EdgeTotalLF() / entry.PackagingFactor)
		result.Lines = append(result.Lines, passThroughLine(entry, base))
	}

	// Penetration flashings: one per counted penetration, waste-invariant.
	for _, cat := range model.PenetrationCategories {
		count := s.Penetrations[cat]
		if count <= 0 {
			continue
		}
		entry, ok := t.catalog.Resolve(cat, s.SelectedBrands[cat])
		if !ok {
			continue
		}
		result.Lines = append(result.Lines, passThroughLine(entry, float64(count)))
	}

	result.Scalars = buildScalars(s, result)
	return result, nil
}

// iceWaterSquares returns the deck area, in squares, protected by a 3 ft
// ice & water strip along eaves and valleys.
func iceWaterSquares(s model.MeasurementSummary) float64 {
	eaveArea := s.LFEave * 3 / model.SqFtPerSquare
	valleyArea := s.LFValley * 3 / model.SqFtPerSquare
	return eaveArea + valleyArea
}

// wasteAdjustedLine builds a priced line with ceil(base * (1 + w/100)).
func (t *Takeoff) wasteAdjustedLine(entry catalog.Entry, base, wastePercent float64) model.MaterialLine {
	adjusted := ApplyWaste(base, wastePercent)
	return priceLine(entry, base, adjusted)
}

// passThroughLine builds a priced line whose quantity ignores waste.
func passThroughLine(entry catalog.Entry, qty float64) model.MaterialLine {
	return priceLine(entry, qty, qty)
}

func priceLine(entry catalog.Entry, base, qty float64) model.MaterialLine {
	return model.MaterialLine{
		Category:      entry.Category,
		Brand:         entry.Brand,
		ProductID:     entry.ProductID,
		ProductName:   entry.ProductName,
		ItemCode:      entry.ItemCode,
		QuantityBase:  base,
		Quantity:      qty,
		UnitOfMeasure: entry.UnitOfMeasure,
		UnitCost:      entry.UnitCost,
		TotalCost:     qty * entry.UnitCost,
	}
}

// ApplyWaste rounds a packaged quantity up after applying the waste
// surcharge. The result never drops below the un-adjusted ceiling.
func ApplyWaste(base, wastePercent float64) float64 {
	return math.Ceil(base * (1 + wastePercent/100))
}
