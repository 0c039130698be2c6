package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestFromUpstream_FullRecord(t *testing.T) {
	data := decode(t, `{
		"name": {"common": "Australia", "official": "Commonwealth of Australia"},
		"flags": {"svg": "https://flagcdn.com/au.svg", "png": "https://flagcdn.com/w320/au.png"},
		"region": "Oceania",
		"capital": ["Canberra"],
		"timezones": ["UTC+05:00", "UTC+10:00"],
		"population": 25687041,
		"languages": {"eng": "English"},
		"currencies": {"AUD": {"name": "Australian dollar", "symbol": "$"}}
	}`)

	c := FromUpstream(data)

	assert.Equal(t, "Australia", Deref(c.Name))
	assert.Equal(t, "https://flagcdn.com/au.svg", Deref(c.Flag))
	assert.Equal(t, "Oceania", Deref(c.Region))
	assert.Equal(t, []string{"Canberra"}, c.Capital)
	assert.Equal(t, "Canberra", c.FirstCapital())
	assert.Equal(t, []string{"UTC+05:00", "UTC+10:00"}, c.Timezones)
	require.NotNil(t, c.Population)
	assert.Equal(t, int64(25687041), *c.Population)
	assert.Equal(t, map[string]string{"eng": "English"}, c.Languages)
	require.Contains(t, c.Currencies, "AUD")
	assert.Equal(t, "$", Deref(c.Currencies["AUD"].Symbol))
	assert.Equal(t, "Australian dollar", Deref(c.Currencies["AUD"].Name))
}

func TestFromUpstream_MissingAndMistypedFields(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"null nested objects", `{"name": null, "flags": null, "region": null}`},
		{"wrong types", `{"name": "Germany", "flags": ["x"], "region": 7, "capital": "Berlin", "population": "many"}`},
		{"nested key missing", `{"name": {"official": "Republic"}, "flags": {"png": "a.png"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := FromUpstream(decode(t, tc.raw))
			assert.Nil(t, c.Name)
			assert.Nil(t, c.Flag)
			assert.Nil(t, c.Region)
			assert.Empty(t, c.Capital)
			assert.Nil(t, c.Population)
			assert.Equal(t, "", c.FirstCapital())
		})
	}
}

func TestFromUpstream_NilMap(t *testing.T) {
	assert.Equal(t, Country{}, FromUpstream(nil))
}

func TestSummaryJSON_OmitsAbsentFields(t *testing.T) {
	c := FromUpstream(decode(t, `{"name": {"common": "Antarctica"}}`))

	out, err := json.Marshal(c.Summary())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Antarctica"}`, string(out))
}

func TestDetail_CarriesLookupFields(t *testing.T) {
	c := FromUpstream(decode(t, `{
		"name": {"common": "Japan"},
		"flags": {"svg": "jp.svg"},
		"region": "Asia",
		"population": 125836021,
		"languages": {"jpn": "Japanese"},
		"currencies": {"JPY": {"name": "Japanese yen", "symbol": "¥"}}
	}`))

	out, err := json.Marshal(c.Detail())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Japan",
		"flag": "jp.svg",
		"population": 125836021,
		"languages": {"jpn": "Japanese"},
		"region": "Asia",
		"currency": {"JPY": {"name": "Japanese yen", "symbol": "¥"}}
	}`, string(out))
}
