package checklist

import (
	"bytes"
	"encoding/json"
	"sort"
)

// State records which equipment items are packed. A State is immutable: every
// operation that changes it returns a new value. Only checked ids are stored,
// so an absent id and an unchecked id are the same thing.
type State struct {
	checked map[string]struct{}
}

// NewState returns a state with the given ids checked.
func NewState(ids ...string) State {
	s := State{checked: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.checked[id] = struct{}{}
	}
	return s
}

func (s State) Checked(id string) bool {
	_, ok := s.checked[id]
	return ok
}

// Len is the number of checked ids, including ids that no longer exist in the
// catalog.
func (s State) Len() int {
	return len(s.checked)
}

// IDs returns the checked ids in sorted order.
func (s State) IDs() []string {
	ids := make([]string, 0, len(s.checked))
	for id := range s.checked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s State) Equal(o State) bool {
	if len(s.checked) != len(o.checked) {
		return false
	}
	for id := range s.checked {
		if !o.Checked(id) {
			return false
		}
	}
	return true
}

func (s State) clone() State {
	c := State{checked: make(map[string]struct{}, len(s.checked)+1)}
	for id := range s.checked {
		c.checked[id] = struct{}{}
	}
	return c
}

// Encode serialises s as a JSON object of id to true, keys sorted.
func Encode(s State) []byte {
	m := make(map[string]bool, len(s.checked))
	for id := range s.checked {
		m[id] = true
	}
	// map[string]bool cannot fail to marshal
	b, _ := json.Marshal(m)
	return b
}

// Decode parses a persisted state. It accepts the boolean object written by
// Encode and the older array-of-ids form. Anything else, including invalid
// JSON or non-boolean values, decodes to the empty state.
func Decode(b []byte) State {
	s, _ := DecodeReport(b)
	return s
}

// DecodeReport is Decode that also reports whether b was well formed. Empty
// input is well formed.
func DecodeReport(b []byte) (State, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return State{}, true
	}

	switch b[0] {
	case '{':
		var m map[string]bool
		if err := json.Unmarshal(b, &m); err != nil {
			return State{}, false
		}
		s := State{checked: make(map[string]struct{}, len(m))}
		for id, v := range m {
			if v {
				s.checked[id] = struct{}{}
			}
		}
		return s, true
	case '[':
		var ids []string
		if err := json.Unmarshal(b, &ids); err != nil {
			return State{}, false
		}
		return NewState(ids...), true
	default:
		return State{}, false
	}
}
