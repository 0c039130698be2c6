package service

import (
	"strings"

	"country-data/internal/domain"
)

// Query holds the optional search parameters. Empty fields do not filter.
type Query struct {
	Name     string
	Capital  string
	Region   string
	Timezone string
}

// Predicate reports whether a country is kept.
type Predicate func(domain.Country) bool

// Predicates returns the filters for q in application order:
// region, name, capital, timezone.
func (q Query) Predicates() []Predicate {
	var preds []Predicate
	if q.Region != "" {
		preds = append(preds, RegionEquals(q.Region))
	}
	if q.Name != "" {
		preds = append(preds, NameContains(q.Name))
	}
	if q.Capital != "" {
		preds = append(preds, CapitalContains(q.Capital))
	}
	if q.Timezone != "" {
		preds = append(preds, HasTimezone(q.Timezone))
	}
	return preds
}

// Apply runs each predicate in turn, keeping upstream order.
func Apply(countries []domain.Country, preds ...Predicate) []domain.Country {
	for _, keep := range preds {
		filtered := make([]domain.Country, 0, len(countries))
		for _, c := range countries {
			if keep(c) {
				filtered = append(filtered, c)
			}
		}
		countries = filtered
	}
	return countries
}

// RegionEquals matches the region case-insensitively. Absent region never matches.
func RegionEquals(region string) Predicate {
	return func(c domain.Country) bool {
		return c.Region != nil && strings.EqualFold(*c.Region, region)
	}
}

// NameContains matches a case-insensitive substring of the common name.
func NameContains(name string) Predicate {
	needle := strings.ToLower(name)
	return func(c domain.Country) bool {
		return c.Name != nil && strings.Contains(strings.ToLower(*c.Name), needle)
	}
}

// CapitalContains matches a case-insensitive substring of the primary capital.
func CapitalContains(capital string) Predicate {
	needle := strings.ToLower(capital)
	return func(c domain.Country) bool {
		first := c.FirstCapital()
		return first != "" && strings.Contains(strings.ToLower(first), needle)
	}
}

// HasTimezone matches when any listed timezone equals tz, ignoring case.
func HasTimezone(tz string) Predicate {
	return func(c domain.Country) bool {
		for _, zone := range c.Timezones {
			if strings.EqualFold(zone, tz) {
				return true
			}
		}
		return false
	}
}
