package memory

import (
	"strings"

	"github.com/elliotchance/pie/v2"

	"shoppingagent/app/service/classify"
)

const priorityMarker = classify.PriorityMarker

// Store is the ordered, deduplicated list of preference statements for
// one session. It is not safe for concurrent use; the owning session
// serializes turns.
type Store struct {
	items []Item
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) Items() []Item {
	result := make([]Item, len(s.items))
	copy(result, s.items)

	return result
}

// Texts returns the rendered statements in insertion order.
func (s *Store) Texts() []string {
	return pie.Map(s.items, func(it Item) string {
		return it.String()
	})
}

// Format renders the store for prompt context, one statement per line.
func (s *Store) Format() string {
	return strings.Join(s.Texts(), "\n")
}

// Contains reports whether the rendered statement is present verbatim.
func (s *Store) Contains(text string) bool {
	for _, it := range s.items {
		if it.String() == text {
			return true
		}
	}

	return false
}

func (s *Store) Clone() *Store {
	clone := &Store{items: make([]Item, len(s.items))}
	copy(clone.items, s.items)

	return clone
}

func (s *Store) demoteAll() {
	for i := range s.items {
		s.items[i].Priority = false
	}
}

// Add normalizes and inserts a statement, enforcing category
// exclusivity for budget and color, substring-containment dedup, and
// single-priority promotion. announce=false is used for bootstrap
// seeding.
func (s *Store) Add(raw string, announce bool) Change {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Change{Kind: ChangeNone}
	}

	norm := classify.Normalize(raw)
	priority := classify.HasPriority(norm)
	stripped := classify.StripPriority(norm)

	if classify.IsBudgetStatement(stripped) {
		s.items = pie.Filter(s.items, func(it Item) bool {
			return !classify.IsBudgetStatement(it.Text)
		})
	}

	if classify.IsColorStatement(stripped) {
		s.items = pie.Filter(s.items, func(it Item) bool {
			return !classify.IsColorStatement(it.Text)
		})
	}

	for i, it := range s.items {
		if !strings.Contains(it.Text, stripped) && !strings.Contains(stripped, it.Text) {
			continue
		}

		// Restating an existing criterion with the marker promotes it.
		if priority && !it.Priority {
			s.demoteAll()
			s.items[i] = Item{Text: stripped, Priority: true}

			return Change{Kind: ChangePromoted, Text: s.items[i].String(), Index: i, Announce: announce}
		}

		return Change{Kind: ChangeNone}
	}

	if priority {
		s.demoteAll()
	}

	s.items = append(s.items, Item{Text: stripped, Priority: priority})

	return Change{
		Kind:     ChangeAdded,
		Text:     s.items[len(s.items)-1].String(),
		Index:    len(s.items) - 1,
		Announce: announce,
	}
}

// Delete removes the item at index. Out-of-range indexes are a benign
// no-op: a stale UI reference racing a same-turn mutation.
func (s *Store) Delete(index int) Change {
	if index < 0 || index >= len(s.items) {
		return Change{Kind: ChangeNone}
	}

	old := s.items[index].String()
	s.items = append(s.items[:index], s.items[index+1:]...)

	return Change{Kind: ChangeDeleted, OldText: old, Index: index, Announce: true}
}

// Update replaces the item at index with the normalized new text. A
// priority marker on the new text demotes every other item first.
func (s *Store) Update(index int, raw string) Change {
	if index < 0 || index >= len(s.items) {
		return Change{Kind: ChangeNone}
	}

	norm := classify.Normalize(raw)
	priority := classify.HasPriority(norm)
	old := s.items[index].String()

	if priority {
		s.demoteAll()
	}

	s.items[index] = Item{Text: classify.StripPriority(norm), Priority: priority}

	return Change{
		Kind:     ChangeUpdated,
		Text:     s.items[index].String(),
		OldText:  old,
		Index:    index,
		Announce: true,
	}
}
