package web

import (
	"strings"

	"country-data/internal/domain"
)

// Regions are the options of the region selector, after "All Regions".
var Regions = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

// Filter keeps countries whose name contains searchTerm, ignoring case, and
// whose region equals region exactly. An empty region matches everything.
func Filter(countries []domain.Summary, searchTerm, region string) []domain.Summary {
	term := strings.ToLower(searchTerm)
	filtered := make([]domain.Summary, 0, len(countries))
	for _, c := range countries {
		if !strings.Contains(strings.ToLower(domain.Deref(c.Name)), term) {
			continue
		}
		if region != "" && domain.Deref(c.Region) != region {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
