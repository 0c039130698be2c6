package web

import "country-data/internal/domain"

// State is the view state of the page. Exactly one of Loading, Failed or
// Loaded.
type State interface {
	isState()
}

// Loading is the state before the gateway call has completed.
type Loading struct{}

// Failed carries the message shown in place of the grid.
type Failed struct {
	Message string
}

// Loaded holds the full, sorted country list.
type Loaded struct {
	Countries []domain.Summary
}

func (Loading) isState() {}
func (Failed) isState() {}
func (Loaded) isState() {}
