package search

import (
	"encoding/json"
	"strconv"
)

// Wire values used by the UI and by persisted saved searches. "alle" means
// "any value", "keine_angabe" means the record must have no value at all —
// a real filter, distinct from not filtering.
const (
	WireAny  = "alle"
	WireNone = "keine_angabe"
)

type selectionKind int

const (
	kindUnset selectionKind = iota
	kindAny
	kindNone
	kindID
)

// Selection is a three-state dropdown filter: unset, explicitly "any",
// explicitly "no value", or a concrete reference id.
type Selection struct {
	kind selectionKind
	id   int
}

func SelectAny() Selection  { return Selection{kind: kindAny} }
func SelectNone() Selection { return Selection{kind: kindNone} }
func SelectID(id int) Selection {
	if id <= 0 {
		return Selection{}
	}
	return Selection{kind: kindID, id: id}
}

// ParseSelection maps a raw wire value onto a Selection. Unknown or
// non-positive values fall back to unset so a bad filter never narrows
// the result set.
func ParseSelection(raw string) Selection {
	switch raw {
	case "":
		return Selection{}
	case WireAny:
		return SelectAny()
	case WireNone:
		return SelectNone()
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return Selection{}
	}
	return SelectID(id)
}

func (s Selection) IsUnset() bool { return s.kind == kindUnset }
func (s Selection) IsAny() bool   { return s.kind == kindAny }
func (s Selection) IsNone() bool  { return s.kind == kindNone }

// ID returns the selected reference id, if one is set.
func (s Selection) ID() (int, bool) {
	if s.kind != kindID {
		return 0, false
	}
	return s.id, true
}

// Filters reports whether the selection narrows results at all.
func (s Selection) Filters() bool {
	return s.kind == kindNone || s.kind == kindID
}

// Wire returns the value as the UI and the saved-search payload carry it.
// Unset and "any" both come back empty: neither is worth persisting.
func (s Selection) Wire() string {
	switch s.kind {
	case kindNone:
		return WireNone
	case kindID:
		return strconv.Itoa(s.id)
	default:
		return ""
	}
}

func (s Selection) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case kindAny:
		return json.Marshal(WireAny)
	case kindNone:
		return json.Marshal(WireNone)
	case kindID:
		return json.Marshal(s.id)
	default:
		return []byte("null"), nil
	}
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var num int
	if err := json.Unmarshal(data, &num); err == nil {
		*s = SelectID(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ParseSelection(str)
		return nil
	}
	// null or anything unexpected: unset, never an error
	*s = Selection{}
	return nil
}
