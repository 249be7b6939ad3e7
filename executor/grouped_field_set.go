package executor

import (
	"github.com/nilsbr/gqlcore/ast"
)

// GroupedFieldSetItem pairs a response key with every selected field that
// contributes to it, per the CollectFields algorithm: two fields with the
// same alias (or the same name, unaliased) under one selection set are
// collected together so they can be merged at execution time.
type GroupedFieldSetItem struct {
	Key    string
	Fields []*ast.Field
}

// GroupedFieldSet holds the result of collecting a selection set's fields
// against a concrete object type: an insertion-ordered map from response
// key to the colocated Field nodes that produce it.
type GroupedFieldSet struct {
	indexByKey map[string]int
	items      []GroupedFieldSetItem
}

// NewGroupedFieldSetWithCapacity allocates a GroupedFieldSet with room for
// n distinct response keys.
func NewGroupedFieldSetWithCapacity(n int) *GroupedFieldSet {
	return &GroupedFieldSet{
		indexByKey: make(map[string]int, n),
		items:      make([]GroupedFieldSetItem, 0, n),
	}
}

// Append adds field to the list collected under key, creating a new slot
// the first time key is seen.
func (s *GroupedFieldSet) Append(key string, field *ast.Field) {
	if idx, ok := s.indexByKey[key]; ok {
		s.items[idx].Fields = append(s.items[idx].Fields, field)
		return
	}
	s.indexByKey[key] = len(s.items)
	s.items = append(s.items, GroupedFieldSetItem{
		Key:    key,
		Fields: []*ast.Field{field},
	})
}

// Len returns the number of distinct response keys collected.
func (s *GroupedFieldSet) Len() int {
	return len(s.items)
}

// Items returns the collected key/fields pairs in the order their keys
// were first introduced.
func (s *GroupedFieldSet) Items() []GroupedFieldSetItem {
	return s.items
}
