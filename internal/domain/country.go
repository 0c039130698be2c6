package domain

// Country is one upstream REST Countries record. Every field is optional:
// the upstream schema is not under our control and absence is valid.
type Country struct {
	Name       *string
	Flag       *string
	Region     *string
	Capital    []string
	Timezones  []string
	Population *int64
	Languages  map[string]string
	Currencies map[string]Currency
}

// Currency describes one entry of the upstream "currencies" object.
type Currency struct {
	Name   *string `json:"name,omitempty"`
	Symbol *string `json:"symbol,omitempty"`
}

// Summary is the list view served by the gateway and rendered by the web client.
type Summary struct {
	Name   *string `json:"name,omitempty"`
	Flag   *string `json:"flag,omitempty"`
	Region *string `json:"region,omitempty"`
}

// Detail is the single-country view.
type Detail struct {
	Name       *string             `json:"name,omitempty"`
	Flag       *string             `json:"flag,omitempty"`
	Population *int64              `json:"population,omitempty"`
	Languages  map[string]string   `json:"languages,omitempty"`
	Region     *string             `json:"region,omitempty"`
	Currency   map[string]Currency `json:"currency,omitempty"`
}

// Summary projects the record to its list view.
func (c Country) Summary() Summary {
	return Summary{
		Name:   c.Name,
		Flag:   c.Flag,
		Region: c.Region,
	}
}

// Detail projects the record to its single-country view.
func (c Country) Detail() Detail {
	return Detail{
		Name:       c.Name,
		Flag:       c.Flag,
		Population: c.Population,
		Languages:  c.Languages,
		Region:     c.Region,
		Currency:   c.Currencies,
	}
}

// FirstCapital returns the primary capital, or "" when none is listed.
func (c Country) FirstCapital() string {
	if len(c.Capital) == 0 {
		return ""
	}
	return c.Capital[0]
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
