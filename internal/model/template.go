package model

import (
	"time"

	"github.com/google/uuid"
)

// DocTemplate is a reusable document snippet whose body contains
// {{ expression }} placeholders resolved against a takeoff's scalar map.
type DocTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Body        string `json:"body"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	IsBuiltIn   bool   `json:"is_built_in,omitempty"`
}

// NewDocTemplate creates a template with a generated ID.
func NewDocTemplate(name, description, body string) DocTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return DocTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		Body:        body,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TemplateStore holds a collection of document templates.
type TemplateStore struct {
	Templates []DocTemplate `json:"templates"`
}

// NewTemplateStore creates a store seeded with the built-in templates.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: BuiltInTemplates(),
	}
}

// BuiltInTemplates returns the document snippets shipped with the
// application. They cover the order summary and crew notes the office
// sends out with every job.
func BuiltInTemplates() []DocTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	mk := func(name, description, body string) DocTemplate {
		return DocTemplate{
			ID:          uuid.New().String()[:8],
			Name:        name,
			Description: description,
			Body:        body,
			CreatedAt:   now,
			UpdatedAt:   now,
			IsBuiltIn:   true,
		}
	}
	return []DocTemplate{
		mk("Order Summary", "One-line supplier order recap",
			"Order {{ bundles.shingles }} bundles of shingles, {{ bundles.ridge_cap }} bundles of cap, "+
				"{{ rolls.underlayment }} rolls of underlayment, and {{ sticks.drip_edge }} sticks of drip edge "+
				"for {{ roof.squares }} squares at {{ waste.percent }}% waste."),
		mk("Crew Notes", "Linear footage recap for the install crew",
			"Ridge {{ lf.ridge }} LF, hip {{ lf.hip }} LF, valley {{ lf.valley }} LF. "+
				"Eaves {{ lf.eave }} LF and rakes {{ lf.rake }} LF get starter and drip edge."),
		mk("Cost Recap", "Material cost summary",
			"Material total ${{ cost.total }} including ${{ cost.shingles }} of shingles."),
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t DocTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Built-in templates cannot be removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			if t.IsBuiltIn {
				return false
			}
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *DocTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *DocTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
