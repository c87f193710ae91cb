// Package rows holds the row data the panel lists render. Lists are only
// ever replaced wholesale; there are no incremental updates.
package rows

import "slices"

// Record is one application row. The panel treats it as opaque apart from
// its display fields.
type Record struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Badge  string `json:"badge,omitempty" yaml:"badge,omitempty"`
}

// ListID identifies one of the panel's two independent lists.
type ListID int

const (
	ListItems   ListID = iota // registered items ("list A")
	ListHistory               // action history ("list B")

	listCount
)

// AllLists is every list in display order.
var AllLists = []ListID{ListItems, ListHistory}

func (id ListID) String() string {
	switch id {
	case ListItems:
		return "items"
	case ListHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Store holds the current row sequence of each list. It is owned by the
// UI loop and is not safe for concurrent use.
type Store struct {
	lists   [listCount][]Record
	version [listCount]uint64

	subs   map[int]func(ListID)
	nextID int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{subs: make(map[int]func(ListID))}
}

// Replace substitutes the whole row sequence of id, bumps its version and
// notifies subscribers. The records are copied.
func (s *Store) Replace(id ListID, records []Record) {
	if id < 0 || id >= listCount {
		return
	}
	s.lists[id] = slices.Clone(records)
	s.version[id]++
	for _, key := range s.subscriberKeys() {
		if fn, ok := s.subs[key]; ok {
			fn(id)
		}
	}
}

// Rows returns the current rows of id. The slice must not be modified.
func (s *Store) Rows(id ListID) []Record {
	if id < 0 || id >= listCount {
		return nil
	}
	return s.lists[id]
}

// Version returns the replacement counter of id.
func (s *Store) Version(id ListID) uint64 {
	if id < 0 || id >= listCount {
		return 0
	}
	return s.version[id]
}

// Subscribe registers fn to be called after every replacement. The
// returned func unsubscribes and is safe to call more than once.
func (s *Store) Subscribe(fn func(ListID)) func() {
	key := s.nextID
	s.nextID++
	s.subs[key] = fn
	return func() { delete(s.subs, key) }
}

// subscriberKeys returns keys in registration order.
func (s *Store) subscriberKeys() []int {
	keys := make([]int, 0, len(s.subs))
	for k := range s.subs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
