package domain

import "math"

// FromUpstream converts a raw REST Countries object into a Country.
// Missing or wrongly typed fields come back absent; it never fails.
func FromUpstream(data map[string]interface{}) Country {
	var c Country
	if data == nil {
		return c
	}

	if nameMap, ok := data["name"].(map[string]interface{}); ok {
		c.Name = stringField(nameMap, "common")
	}
	if flagsMap, ok := data["flags"].(map[string]interface{}); ok {
		c.Flag = stringField(flagsMap, "svg")
	}
	c.Region = stringField(data, "region")
	c.Capital = stringSlice(data["capital"])
	c.Timezones = stringSlice(data["timezones"])

	// encoding/json decodes numbers into float64
	if population, ok := data["population"].(float64); ok && population == math.Trunc(population) {
		p := int64(population)
		c.Population = &p
	}

	if languages, ok := data["languages"].(map[string]interface{}); ok {
		c.Languages = make(map[string]string, len(languages))
		for code, name := range languages {
			if s, ok := name.(string); ok {
				c.Languages[code] = s
			}
		}
	}

	if currencies, ok := data["currencies"].(map[string]interface{}); ok {
		c.Currencies = make(map[string]Currency, len(currencies))
		for code, raw := range currencies {
			cd, _ := raw.(map[string]interface{})
			c.Currencies[code] = Currency{
				Name:   stringField(cd, "name"),
				Symbol: stringField(cd, "symbol"),
			}
		}
	}

	return c
}

func stringField(data map[string]interface{}, key string) *string {
	if data == nil {
		return nil
	}
	s, ok := data[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
