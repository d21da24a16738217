package model

import (
	"time"

	"github.com/google/uuid"
)

// MaterialCategory identifies a class of roofing material in the catalog
// and in derived material lines.
type MaterialCategory string

const (
	CategoryShingles     MaterialCategory = "shingles"
	CategoryRidgeCap     MaterialCategory = "ridge_cap"
	CategoryStarter      MaterialCategory = "starter"
	CategoryUnderlayment MaterialCategory = "underlayment"
	CategoryIceWater     MaterialCategory = "ice_water"
	CategoryValley       MaterialCategory = "valley"
	CategoryDripEdge     MaterialCategory = "drip_edge"
	CategoryPipeVent     MaterialCategory = "pipe_vent"
	CategorySkylight     MaterialCategory = "skylight"
	CategoryChimney      MaterialCategory = "chimney"
)

// PenetrationCategories lists the categories counted per penetration.
// Their quantities are never waste-adjusted.
var PenetrationCategories = []MaterialCategory{
	CategoryPipeVent,
	CategorySkylight,
	CategoryChimney,
}

// Vertex is a single footprint corner in WGS84 degrees.
type Vertex struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Ring is an ordered sequence of vertices forming a closed polygon.
// A valid ring is closed: the last vertex equals the first.
type Ring []Vertex

// AllowedWastePercents is the fixed set of waste percentages the sales
// flow offers. Any other value is rejected before quantity derivation.
var AllowedWastePercents = []float64{0, 8, 10, 12, 15, 17, 20}

// IsAllowedWaste reports whether w is one of the supported waste percentages.
func IsAllowedWaste(w float64) bool {
	for _, v := range AllowedWastePercents {
		if v == w {
			return true
		}
	}
	return false
}

// BrandSelection maps a material category to the brand the estimator chose.
// Categories without an entry fall back to the catalog default.
type BrandSelection map[MaterialCategory]string

// MeasurementSummary is the per-roof measurement record consumed by the
// takeoff engine. It comes from an upstream measurement provider or manual
// digitization and is treated as immutable during a derivation pass.
type MeasurementSummary struct {
	AreaSqFt     float64 `json:"total_area_sqft"`
	Squares      float64 `json:"total_squares"`
	LFRidge      float64 `json:"lf_ridge"`
	LFHip        float64 `json:"lf_hip"`
	LFValley     float64 `json:"lf_valley"`
	LFEave       float64 `json:"lf_eave"`
	LFRake       float64 `json:"lf_rake"`
	LFStep       float64 `json:"lf_step"`
	Pitch        float64 `json:"pitch"`
	Stories      int     `json:"stories"`
	WastePercent float64 `json:"waste_percentage"`

	// Penetrations maps a penetration category (pipe_vent, skylight,
	// chimney) to its count.
	Penetrations map[MaterialCategory]int `json:"penetration_counts"`

	// SelectedBrands records the estimator's brand choice per category.
	SelectedBrands BrandSelection `json:"selected_brands,omitempty"`

	// FootprintWKT is the optional digitized building outline in
	// POLYGON((lng lat, ...)) form.
	FootprintWKT string `json:"footprint_wkt,omitempty"`
}

// TotalSquares returns the roof area in squares (1 square = 100 sq ft),
// preferring the measured area and falling back to the reported square
// count when no area is present.
func (s MeasurementSummary) TotalSquares() float64 {
	if s.AreaSqFt > 0 {
		return s.AreaSqFt / SqFtPerSquare
	}
	return s.Squares
}

// EdgeTotalLF returns the combined eave and rake length, the quantity
// cross-checked against the footprint perimeter.
func (s MeasurementSummary) EdgeTotalLF() float64 {
	return s.LFEave + s.LFRake
}

// ValidationResult is the verdict of the perimeter/area consistency check.
// It annotates a MeasurementSummary for review routing; it never blocks
// the takeoff itself.
type ValidationResult struct {
	Valid               bool     `json:"valid"`
	EdgeCoveragePercent float64  `json:"edge_coverage_percent"`
	AreaVariancePercent float64  `json:"area_variance_percent"`
	Warnings            []string `json:"warnings"`
}

// MaterialLine is one priced row of the derived bill of materials.
// Lines are created fresh on every derivation and never mutated.
type MaterialLine struct {
	Category      MaterialCategory `json:"material_category"`
	Brand         string           `json:"brand"`
	ProductID     string           `json:"product_id"`
	ProductName   string           `json:"product_name"`
	ItemCode      string           `json:"item_code"`
	QuantityBase  float64          `json:"quantity_base"`
	Quantity      float64          `json:"quantity"`
	UnitOfMeasure string           `json:"unit_of_measure"`
	UnitCost      float64          `json:"unit_cost"`
	TotalCost     float64          `json:"total_cost"`
}

// TakeoffResult holds the full output of a quantity derivation: the priced
// material lines plus the flat scalar map used by document templates.
type TakeoffResult struct {
	Lines        []MaterialLine     `json:"lines"`
	Scalars      map[string]float64 `json:"scalars"`
	WastePercent float64            `json:"waste_percent"`
}

// TotalCost returns the summed cost of all material lines.
func (r TakeoffResult) TotalCost() float64 {
	var total float64
	for _, l := range r.Lines {
		total += l.TotalCost
	}
	return total
}

// LineFor returns the first material line of the given category, or nil.
func (r TakeoffResult) LineFor(cat MaterialCategory) *MaterialLine {
	for i := range r.Lines {
		if r.Lines[i].Category == cat {
			return &r.Lines[i]
		}
	}
	return nil
}

// Quote ties a measurement, its validation verdict, and the derived
// takeoff together for save/load.
type Quote struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
	Summary    MeasurementSummary `json:"summary"`
	Validation *ValidationResult  `json:"validation,omitempty"`
	Takeoff    *TakeoffResult     `json:"takeoff,omitempty"`
}

// NewQuote creates a quote for the given measurement with a generated ID.
func NewQuote(name string, summary MeasurementSummary) Quote {
	now := time.Now().UTC().Format(time.RFC3339)
	return Quote{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Summary:   summary,
	}
}

// Touch updates the quote's UpdatedAt timestamp.
func (q *Quote) Touch() {
	q.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}
