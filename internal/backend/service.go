// Package backend is the bridge to whatever owns the game state. It only
// delivers full snapshots of the rows the panel lists; the panel never
// mutates backend state.
package backend

import (
	"context"

	"github.com/Akashdeep-Patra/modpanel/internal/rows"
)

// Reward is one accumulated reward total.
type Reward struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Snapshot is the complete state the panel displays.
type Snapshot struct {
	Items   []rows.Record `json:"items" yaml:"items"`
	History []rows.Record `json:"history" yaml:"history"`
	Totals  []Reward      `json:"totals,omitempty" yaml:"totals,omitempty"`
}

// Rows returns the records of list id.
func (s *Snapshot) Rows(id rows.ListID) []rows.Record {
	if s == nil {
		return nil
	}
	switch id {
	case rows.ListItems:
		return s.Items
	case rows.ListHistory:
		return s.History
	default:
		return nil
	}
}

// Apply replaces every list of store with the snapshot's rows.
func (s *Snapshot) Apply(store *rows.Store) {
	for _, id := range rows.AllLists {
		store.Replace(id, s.Rows(id))
	}
}

// Service delivers snapshots.
type Service interface {
	// Snapshot returns the current state. Each call is a full replacement.
	Snapshot(ctx context.Context) (*Snapshot, error)
	// Source describes where snapshots come from, for display.
	Source() string
}
