package web

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"country-data/internal/domain"
)

// MsgLoadFailed is shown when the gateway call fails for any reason.
const MsgLoadFailed = "Failed to load countries"

// CountrySource supplies the country list once.
type CountrySource interface {
	Countries(ctx context.Context) ([]domain.Summary, error)
}

// Store is a thread-safe holder of the page state.
type Store struct {
	source CountrySource
	logger *zap.Logger

	once  sync.Once
	mu    sync.RWMutex
	state State
}

// NewStore creates a Store in the Loading state.
func NewStore(source CountrySource, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		source: source,
		logger: logger,
		state:  Loading{},
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load performs the single gateway call. Calls after the first do nothing.
// The outcome is recorded in the state, so Load always returns nil and can
// run as a server background task.
func (s *Store) Load(ctx context.Context) error {
	s.once.Do(func() {
		s.set(s.fetch(ctx))
	})
	return nil
}

func (s *Store) fetch(ctx context.Context) State {
	countries, err := s.source.Countries(ctx)
	if err != nil {
		s.logger.Error("failed to load countries", zap.Error(err))
		return Failed{Message: MsgLoadFailed}
	}
	sortByName(countries)
	s.logger.Info("countries loaded", zap.Int("count", len(countries)))
	return Loaded{Countries: countries}
}

func (s *Store) set(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func sortByName(countries []domain.Summary) {
	cl := collate.New(language.English)
	sort.SliceStable(countries, func(i, j int) bool {
		return cl.CompareString(domain.Deref(countries[i].Name), domain.Deref(countries[j].Name)) < 0
	})
}
