package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// MediaSet is an ordered list of blob keys owned by one record. Order is kept
// for display; set operations ignore it.
type MediaSet []string

// Contains reports whether ref belongs to the set.
func (m MediaSet) Contains(ref string) bool {
	return slices.Contains(m, ref)
}

// Dedupe returns the set without blank or repeated entries, keeping first occurrences.
func (m MediaSet) Dedupe() MediaSet {
	out := make(MediaSet, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, ref := range m {
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// Without returns the members of m that are not in other.
func (m MediaSet) Without(other MediaSet) MediaSet {
	out := make(MediaSet, 0, len(m))
	for _, ref := range m {
		if !other.Contains(ref) {
			out = append(out, ref)
		}
	}
	return out
}

// Intersect returns the members of m that are also in other.
func (m MediaSet) Intersect(other MediaSet) MediaSet {
	out := make(MediaSet, 0, len(m))
	for _, ref := range m {
		if other.Contains(ref) {
			out = append(out, ref)
		}
	}
	return out
}

func (m MediaSet) Value() (driver.Value, error) {
	if m == nil {
		m = MediaSet{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal MediaSet: %w", err)
	}
	return b, nil
}

func (m *MediaSet) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = MediaSet{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("MediaSet.Scan: expected []byte, got %T", src)
	}
	var out MediaSet
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal MediaSet: %w", err)
	}
	if out == nil {
		out = MediaSet{}
	}
	*m = out
	return nil
}

// singleMedia adapts a single-reference column to the MediaSet view used by the
// upload lifecycle.
func singleMedia(ref string) MediaSet {
	if ref == "" {
		return MediaSet{}
	}
	return MediaSet{ref}
}

func firstOf(m MediaSet) string {
	if len(m) == 0 {
		return ""
	}
	return m[0]
}
