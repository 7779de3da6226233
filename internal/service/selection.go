package service

import "sort"

// Selection is the page-scoped bulk-selection state of a list page. It only
// ever holds confirmed row ids: optimistic placeholders are filtered out
// before they reach it, and the whole selection is cleared whenever the
// search text or a filter changes.
type Selection struct {
	ids map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

// Toggle flips the selection state of one id.
func (s *Selection) Toggle(id string) {
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

// Set replaces the selection with the given ids.
func (s *Selection) Set(ids []string) {
	s.ids = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.ids[id] = true
	}
}

// Remove drops one id from the selection.
func (s *Selection) Remove(id string) {
	delete(s.ids, id)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]bool)
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected ids in stable order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
