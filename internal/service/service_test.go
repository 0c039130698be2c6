package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"country-data/internal/domain"
)

// MockClient implements the CountryClient interface.
type MockClient struct {
	AllFunc    func(ctx context.Context) ([]domain.Country, error)
	ByCodeFunc func(ctx context.Context, code string) ([]domain.Country, error)

	mu    sync.Mutex
	calls int
}

func (m *MockClient) All(ctx context.Context) ([]domain.Country, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.AllFunc(ctx)
}

func (m *MockClient) ByCode(ctx context.Context, code string) ([]domain.Country, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.ByCodeFunc(ctx, code)
}

func str(s string) *string { return &s }

func fixture() []domain.Country {
	return []domain.Country{
		{Name: str("Australia"), Flag: str("au.svg"), Region: str("Oceania"), Capital: []string{"Canberra"}, Timezones: []string{"UTC+05:00", "UTC+10:00"}},
		{Name: str("Brazil"), Flag: str("br.svg"), Region: str("Americas"), Capital: []string{"Brasília"}, Timezones: []string{"UTC-03:00"}},
		{Name: str("Austria"), Flag: str("at.svg"), Region: str("Europe"), Capital: []string{"Vienna"}, Timezones: []string{"UTC+01:00"}},
		{Name: str("Fiji"), Region: str("Oceania"), Timezones: []string{"UTC+12:00"}},
		{Name: str("Heard Island"), Timezones: []string{"UTC+05:00"}},
		{Flag: str("nameless.svg"), Region: str("Antarctic")},
	}
}

func fixtureClient() *MockClient {
	return &MockClient{
		AllFunc: func(ctx context.Context) ([]domain.Country, error) { return fixture(), nil },
	}
}

func names(summaries []domain.Summary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, domain.Deref(s.Name))
	}
	return out
}

func TestList_ProjectsEveryRecord(t *testing.T) {
	svc := NewCountryService(fixtureClient(), zaptest.NewLogger(t))

	summaries, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 6)
	assert.Equal(t, domain.Summary{Name: str("Australia"), Flag: str("au.svg"), Region: str("Oceania")}, summaries[0])
	assert.Nil(t, summaries[3].Flag)
	assert.Nil(t, summaries[5].Name)
}

func TestList_ClientError(t *testing.T) {
	clientErr := errors.New("API is down")
	client := &MockClient{
		AllFunc: func(ctx context.Context) ([]domain.Country, error) { return nil, clientErr },
	}
	svc := NewCountryService(client, nil)

	summaries, err := svc.List(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, clientErr)
	assert.Nil(t, summaries, "no partial results on failure")
}

func TestByCode(t *testing.T) {
	population := int64(25687041)
	client := &MockClient{
		ByCodeFunc: func(ctx context.Context, code string) ([]domain.Country, error) {
			assert.Equal(t, "AU", code)
			return []domain.Country{{
				Name:       str("Australia"),
				Flag:       str("au.svg"),
				Region:     str("Oceania"),
				Population: &population,
				Languages:  map[string]string{"eng": "English"},
				Currencies: map[string]domain.Currency{"AUD": {Name: str("Australian dollar"), Symbol: str("$")}},
			}, {Name: str("Ignored")}}, nil
		},
	}
	svc := NewCountryService(client, zaptest.NewLogger(t))

	detail, err := svc.ByCode(context.Background(), "AU")

	require.NoError(t, err)
	assert.Equal(t, "Australia", domain.Deref(detail.Name))
	assert.Equal(t, &population, detail.Population)
	assert.Equal(t, "English", detail.Languages["eng"])
	assert.Equal(t, "$", domain.Deref(detail.Currency["AUD"].Symbol))
}

func TestByCode_EmptyUpstreamArray(t *testing.T) {
	client := &MockClient{
		ByCodeFunc: func(ctx context.Context, code string) ([]domain.Country, error) { return nil, nil },
	}
	svc := NewCountryService(client, zaptest.NewLogger(t))

	_, err := svc.ByCode(context.Background(), "zz")

	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestByCode_ClientError(t *testing.T) {
	clientErr := errors.New("timeout")
	client := &MockClient{
		ByCodeFunc: func(ctx context.Context, code string) ([]domain.Country, error) { return nil, clientErr },
	}
	svc := NewCountryService(client, zaptest.NewLogger(t))

	_, err := svc.ByCode(context.Background(), "fr")

	assert.ErrorIs(t, err, clientErr)
}

func TestByRegion_CaseInsensitive(t *testing.T) {
	svc := NewCountryService(fixtureClient(), zaptest.NewLogger(t))

	lower, err := svc.ByRegion(context.Background(), "oceania")
	require.NoError(t, err)
	title, err := svc.ByRegion(context.Background(), "Oceania")
	require.NoError(t, err)

	assert.Equal(t, []string{"Australia", "Fiji"}, names(lower))
	assert.Equal(t, lower, title)
}

func TestByRegion_AbsentRegionDoesNotMatch(t *testing.T) {
	svc := NewCountryService(fixtureClient(), zaptest.NewLogger(t))

	summaries, err := svc.ByRegion(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSearch(t *testing.T) {
	testCases := []struct {
		name     string
		query    Query
		expected []string
	}{
		{"no parameters returns everything", Query{}, []string{"Australia", "Brazil", "Austria", "Fiji", "Heard Island", ""}},
		{"name substring", Query{Name: "aus"}, []string{"Australia", "Austria"}},
		{"name is case-insensitive", Query{Name: "BRA"}, []string{"Brazil"}},
		{"region", Query{Region: "europe"}, []string{"Austria"}},
		{"region then name", Query{Region: "Oceania", Name: "aus"}, []string{"Australia"}},
		{"capital substring", Query{Capital: "berra"}, []string{"Australia"}},
		{"capital skips countries without one", Query{Capital: "a"}, []string{"Australia", "Brazil", "Austria"}},
		{"timezone membership", Query{Timezone: "UTC+05:00"}, []string{"Australia", "Heard Island"}},
		{"timezone ignores case", Query{Timezone: "utc+12:00"}, []string{"Fiji"}},
		{"timezone is not substring", Query{Timezone: "UTC+05"}, []string{}},
		{"all filters", Query{Name: "a", Capital: "can", Region: "OCEANIA", Timezone: "UTC+10:00"}, []string{"Australia"}},
		{"no match", Query{Name: "atlantis"}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewCountryService(fixtureClient(), zaptest.NewLogger(t))

			summaries, err := svc.Search(context.Background(), tc.query)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, names(summaries))
		})
	}
}

func TestSearch_Idempotent(t *testing.T) {
	client := fixtureClient()
	svc := NewCountryService(client, zaptest.NewLogger(t))
	q := Query{Name: "a", Timezone: "UTC+05:00"}

	first, err := svc.Search(context.Background(), q)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, client.calls, "every call re-fetches upstream")
}

func TestSearch_ClientError(t *testing.T) {
	client := &MockClient{
		AllFunc: func(ctx context.Context) ([]domain.Country, error) { return nil, errors.New("bad gateway") },
	}
	svc := NewCountryService(client, zaptest.NewLogger(t))

	summaries, err := svc.Search(context.Background(), Query{Name: "aus"})

	require.Error(t, err)
	assert.Nil(t, summaries)
}

func TestSearch_ConcurrentAccess(t *testing.T) {
	client := fixtureClient()
	svc := NewCountryService(client, zaptest.NewLogger(t))

	var wg sync.WaitGroup
	numRequests := 20
	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summaries, err := svc.Search(context.Background(), Query{Name: "aus"})
			assert.NoError(t, err)
			assert.Equal(t, []string{"Australia", "Austria"}, names(summaries))
		}()
	}
	wg.Wait()

	assert.Equal(t, numRequests, client.calls)
}
