package model

// Preferences holds office-wide defaults applied to new quotes.
type Preferences struct {
	CompanyName         string         `json:"company_name"`
	CompanyPhone        string         `json:"company_phone"`
	DefaultWastePercent float64        `json:"default_waste_percent"`
	DefaultBrands       BrandSelection `json:"default_brands"`
	RecentQuotes        []string       `json:"recent_quotes"`
	MaxRecentQuotes     int            `json:"max_recent_quotes"`
}

// DefaultPreferences returns the initial preferences for a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultWastePercent: 10,
		DefaultBrands:       BrandSelection{},
		RecentQuotes:        []string{},
		MaxRecentQuotes:     10,
	}
}

// AddRecentQuote prepends a quote ID to the recent list, removing any
// previous occurrence and truncating to MaxRecentQuotes.
func (p *Preferences) AddRecentQuote(id string) {
	updated := []string{id}
	for _, existing := range p.RecentQuotes {
		if existing != id {
			updated = append(updated, existing)
		}
	}
	max := p.MaxRecentQuotes
	if max <= 0 {
		max = 10
	}
	if len(updated) > max {
		updated = updated[:max]
	}
	p.RecentQuotes = updated
}

// ApplyDefaults fills unset fields of a measurement summary from the
// preferences: the waste percentage when none was chosen and brand picks
// for categories without an explicit selection.
func (p Preferences) ApplyDefaults(s *MeasurementSummary) {
	if s.WastePercent == 0 && IsAllowedWaste(p.DefaultWastePercent) {
		s.WastePercent = p.DefaultWastePercent
	}
	if len(p.DefaultBrands) == 0 {
		return
	}
	if s.SelectedBrands == nil {
		s.SelectedBrands = BrandSelection{}
	}
	for cat, brand := range p.DefaultBrands {
		if _, ok := s.SelectedBrands[cat]; !ok {
			s.SelectedBrands[cat] = brand
		}
	}
}
