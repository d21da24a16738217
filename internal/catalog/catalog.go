// Package catalog holds the brand packaging reference data used to turn
// continuous roof measurements into packaged, priced material quantities.
package catalog

import "github.com/rooftally/rooftally/internal/model"

// Entry describes how one brand packages one material category.
//
// The meaning of PackagingFactor depends on the category:
//   - ridge_cap, starter: linear feet per bundle
//   - underlayment, ice_water: squares per roll
//   - valley: linear feet per roll
//   - drip_edge: linear feet per stick
//   - shingles: bundles per square (3 for all common brands)
//   - penetration flashings: unused (always 1:1 with the count)
type Entry struct {
	Category        model.MaterialCategory `json:"material_category"`
	Brand           string                 `json:"brand"`
	ProductID       string                 `json:"product_id"`
	ProductName     string                 `json:"product_name"`
	ItemCode        string                 `json:"item_code"`
	UnitOfMeasure   string                 `json:"unit_of_measure"`
	PackagingFactor float64                `json:"packaging_factor"`
	UnitCost        float64                `json:"unit_cost"`
}

// Catalog is the full set of brand packaging entries. It is read-only from
// the engine's perspective; callers own freshness.
type Catalog struct {
	Entries []Entry `json:"entries"`
}

// Resolve returns the entry for the given category and brand. When the
// brand has no entry for the category, it falls back to the first catalog
// entry for that category; catalog order is the documented default-brand
// order. The second result is false only when the category is entirely
// absent.
func (c *Catalog) Resolve(cat model.MaterialCategory, brand string) (Entry, bool) {
	var fallback *Entry
	for i := range c.Entries {
		e := &c.Entries[i]
		if e.Category != cat {
			continue
		}
		if fallback == nil {
			fallback = e
		}
		if brand != "" && e.Brand == brand {
			return *e, true
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Entry{}, false
}

// Brands returns the brands offering the given category, in catalog order.
func (c *Catalog) Brands(cat model.MaterialCategory) []string {
	var brands []string
	for _, e := range c.Entries {
		if e.Category == cat {
			brands = append(brands, e.Brand)
		}
	}
	return brands
}

// Categories returns the distinct material categories present, in catalog
// order.
func (c *Catalog) Categories() []model.MaterialCategory {
	seen := make(map[model.MaterialCategory]bool)
	var cats []model.MaterialCategory
	for _, e := range c.Entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, e.Category)
		}
	}
	return cats
}

// Merge appends entries from other, skipping (category, brand) pairs that
// already exist.
func (c *Catalog) Merge(other Catalog) {
	existing := make(map[model.MaterialCategory]map[string]bool, len(c.Entries))
	for _, e := range c.Entries {
		if existing[e.Category] == nil {
			existing[e.Category] = make(map[string]bool)
		}
		existing[e.Category][e.Brand] = true
	}
	for _, e := range other.Entries {
		if existing[e.Category][e.Brand] {
			continue
		}
		c.Entries = append(c.Entries, e)
		if existing[e.Category] == nil {
			existing[e.Category] = make(map[string]bool)
		}
		existing[e.Category][e.Brand] = true
	}
}

// Default returns the built-in catalog. Entry order within a category
// defines the default-brand fallback order.
//
// Ridge cap bundling defaults to 33 LF per bundle; brands that cut caps
// differently carry their own factor.
func Default() Catalog {
	return Catalog{Entries: []Entry{
		{Category: model.CategoryShingles, Brand: "GAF", ProductID: "gaf-tz-hd", ProductName: "GAF Timberline HDZ Shingles", ItemCode: "SH-GAF-HDZ", UnitOfMeasure: "BD", PackagingFactor: 3, UnitCost: 42.50},
		{Category: model.CategoryShingles, Brand: "Owens Corning", ProductID: "oc-dur-ds", ProductName: "Owens Corning Duration Shingles", ItemCode: "SH-OC-DUR", UnitOfMeasure: "BD", PackagingFactor: 3, UnitCost: 44.00},
		{Category: model.CategoryShingles, Brand: "CertainTeed", ProductID: "ct-land", ProductName: "CertainTeed Landmark Shingles", ItemCode: "SH-CT-LM", UnitOfMeasure: "BD", PackagingFactor: 3, UnitCost: 45.25},

		{Category: model.CategoryRidgeCap, Brand: "GAF", ProductID: "gaf-sar", ProductName: "GAF Seal-A-Ridge Cap Shingles", ItemCode: "RC-GAF-SAR", UnitOfMeasure: "BD", PackagingFactor: 33, UnitCost: 62.00},
		{Category: model.CategoryRidgeCap, Brand: "Owens Corning", ProductID: "oc-proedge", ProductName: "Owens Corning ProEdge Hip & Ridge", ItemCode: "RC-OC-PE", UnitOfMeasure: "BD", PackagingFactor: 25, UnitCost: 58.50},
		{Category: model.CategoryRidgeCap, Brand: "CertainTeed", ProductID: "ct-shadow", ProductName: "CertainTeed ShadowRidge", ItemCode: "RC-CT-SR", UnitOfMeasure: "BD", PackagingFactor: 20, UnitCost: 55.00},

		{Category: model.CategoryStarter, Brand: "GAF", ProductID: "gaf-prostart", ProductName: "GAF Pro-Start Starter Strip", ItemCode: "ST-GAF-PS", UnitOfMeasure: "BD", PackagingFactor: 100, UnitCost: 48.00},
		{Category: model.CategoryStarter, Brand: "Owens Corning", ProductID: "oc-starter", ProductName: "Owens Corning Starter Strip Plus", ItemCode: "ST-OC-SP", UnitOfMeasure: "BD", PackagingFactor: 105, UnitCost: 46.75},

		{Category: model.CategoryUnderlayment, Brand: "GAF", ProductID: "gaf-feltbuster", ProductName: "GAF FeltBuster Synthetic Underlayment", ItemCode: "UL-GAF-FB", UnitOfMeasure: "RL", PackagingFactor: 10, UnitCost: 95.00},
		{Category: model.CategoryUnderlayment, Brand: "CertainTeed", ProductID: "ct-roofrunner", ProductName: "CertainTeed RoofRunner Underlayment", ItemCode: "UL-CT-RR", UnitOfMeasure: "RL", PackagingFactor: 10, UnitCost: 99.50},

		{Category: model.CategoryIceWater, Brand: "GAF", ProductID: "gaf-wwatch", ProductName: "GAF WeatherWatch Ice & Water Shield", ItemCode: "IW-GAF-WW", UnitOfMeasure: "RL", PackagingFactor: 2, UnitCost: 110.00},
		{Category: model.CategoryIceWater, Brand: "Grace", ProductID: "grace-iws", ProductName: "Grace Ice & Water Shield", ItemCode: "IW-GR-IWS", UnitOfMeasure: "RL", PackagingFactor: 2, UnitCost: 125.00},

		{Category: model.CategoryValley, Brand: "Generic", ProductID: "gen-valley-w", ProductName: "W-Valley Metal 50ft Roll", ItemCode: "VL-GEN-W", UnitOfMeasure: "RL", PackagingFactor: 50, UnitCost: 85.00},

		{Category: model.CategoryDripEdge, Brand: "Generic", ProductID: "gen-dripedge", ProductName: "Aluminum Drip Edge 10ft", ItemCode: "DE-GEN-AL", UnitOfMeasure: "PC", PackagingFactor: 10, UnitCost: 8.75},

		{Category: model.CategoryPipeVent, Brand: "Generic", ProductID: "gen-pipeboot", ProductName: "Pipe Boot Flashing", ItemCode: "PF-GEN-PB", UnitOfMeasure: "EA", PackagingFactor: 1, UnitCost: 12.50},
		{Category: model.CategorySkylight, Brand: "Generic", ProductID: "gen-skylight", ProductName: "Skylight Flashing Kit", ItemCode: "PF-GEN-SK", UnitOfMeasure: "EA", PackagingFactor: 1, UnitCost: 78.00},
		{Category: model.CategoryChimney, Brand: "Generic", ProductID: "gen-chimney", ProductName: "Chimney Flashing Kit", ItemCode: "PF-GEN-CH", UnitOfMeasure: "EA", PackagingFactor: 1, UnitCost: 94.00},
	}}
}
