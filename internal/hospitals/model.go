package hospitals

import (
	"strings"
	"time"
)

// PriceRange buckets hospitals into the three tiers the concierge quotes.
type PriceRange string

const (
	PriceBudget   PriceRange = "budget"
	PriceMidRange PriceRange = "mid-range"
	PricePremium  PriceRange = "premium"

	// FilterAll is the wildcard value accepted anywhere a filter field is.
	FilterAll = "all"
)

// Hospital is one accredited facility in the catalog.
type Hospital struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	City              string     `json:"city"`
	Country           string     `json:"country"`
	Location          string     `json:"location"`
	Description       string     `json:"description"`
	Specialties       []string   `json:"specialties"`
	Procedures        []string   `json:"procedures"`
	ImageURL          string     `json:"image_url"`
	JCIAccredited     bool       `json:"jci_accredited"`
	AccreditationInfo string     `json:"accreditation_info"`
	PriceRange        PriceRange `json:"price_range"`
	EstimatedCostLow  int        `json:"estimated_cost_low"`
	EstimatedCostHigh int        `json:"estimated_cost_high"`
	Rating            float64    `json:"rating"`
	ContactEmail      string     `json:"contact_email"`
	WebsiteURL        string     `json:"website_url"`
	Verified          bool       `json:"is_verified"`
	UpdatedAt         time.Time  `json:"updated_at,omitempty"`
}

// SearchFilter narrows a catalog search. Zero values and "all" both mean
// unfiltered.
type SearchFilter struct {
	Country      string `json:"country,omitempty"`
	Procedure    string `json:"procedure,omitempty"`
	PriceRange   string `json:"priceRange,omitempty"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
}

func wildcard(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}

// Matches applies the filter in memory: country is a substring match,
// procedure matches either the procedure or specialty lists, price range is
// exact.
func (f SearchFilter) Matches(h Hospital) bool {
	if !wildcard(f.Country) && !strings.Contains(strings.ToLower(h.Country), strings.ToLower(f.Country)) {
		return false
	}
	if !wildcard(f.PriceRange) && !strings.EqualFold(string(h.PriceRange), f.PriceRange) {
		return false
	}
	if !wildcard(f.Procedure) {
		needle := strings.ToLower(f.Procedure)
		found := false
		for _, p := range append(append([]string{}, h.Procedures...), h.Specialties...) {
			if strings.Contains(strings.ToLower(p), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
