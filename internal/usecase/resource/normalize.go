package resource

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/fhuszti/tourism-ms-go/internal/model"
)

// RawUploads is what the upload layer attaches to a request: slot name → nil,
// a single key, or a list of keys.
type RawUploads map[string]any

// UploadBundle is RawUploads after normalization.
type UploadBundle struct {
	Slots map[string]model.MediaSet
	// Malformed lists the slots whose raw value had an unexpected shape.
	Malformed []string
}

// Slot returns the media for name, empty when absent.
func (b UploadBundle) Slot(name string) model.MediaSet {
	if s, ok := b.Slots[name]; ok {
		return s
	}
	return model.MediaSet{}
}

// All returns every staged reference across slots, in slot-name order.
func (b UploadBundle) All() model.MediaSet {
	names := make([]string, 0, len(b.Slots))
	for name := range b.Slots {
		names = append(names, name)
	}
	sort.Strings(names)

	var all model.MediaSet
	for _, name := range names {
		all = append(all, b.Slots[name]...)
	}
	return all.Dedupe()
}

// Normalize coerces every slot to a MediaSet. It never fails: unexpected
// shapes are recorded in Malformed and surface at validation.
func Normalize(raw RawUploads) UploadBundle {
	b := UploadBundle{Slots: make(map[string]model.MediaSet, len(raw))}
	for name, v := range raw {
		set, ok := NormalizeSlot(v)
		b.Slots[name] = set
		if !ok {
			b.Malformed = append(b.Malformed, name)
		}
	}
	sort.Strings(b.Malformed)
	return b
}

// NormalizeSlot turns one raw slot value into a MediaSet. The boolean is false
// when part of the value could not be interpreted; whatever keys could be read
// are still returned so they can be cleaned up.
func NormalizeSlot(v any) (model.MediaSet, bool) {
	switch val := v.(type) {
	case nil:
		return model.MediaSet{}, true
	case string:
		return model.MediaSet{val}.Dedupe(), true
	case []string:
		return model.MediaSet(val).Dedupe(), true
	case model.MediaSet:
		return val.Dedupe(), true
	case []any:
		ok := true
		out := make(model.MediaSet, 0, len(val))
		for _, e := range val {
			s, isStr := e.(string)
			if !isStr {
				ok = false
				continue
			}
			out = append(out, s)
		}
		return out.Dedupe(), ok
	default:
		return model.MediaSet{}, false
	}
}

// SlotRule selects the media a resource keeps out of a bundle.
type SlotRule func(UploadBundle) model.MediaSet

// Precedence keeps the first non-empty slot.
func Precedence(slots ...string) SlotRule {
	return func(b UploadBundle) model.MediaSet {
		for _, s := range slots {
			if set := b.Slot(s); len(set) > 0 {
				return set
			}
		}
		return model.MediaSet{}
	}
}

// Flatten concatenates the slots in order.
func Flatten(slots ...string) SlotRule {
	return func(b UploadBundle) model.MediaSet {
		var out model.MediaSet
		for _, s := range slots {
			out = append(out, b.Slot(s)...)
		}
		return out.Dedupe()
	}
}

// ParseKeepList reads a keep list submitted as repeated form values, a
// JSON-encoded array, or both. It returns nil when the field was not sent.
func ParseKeepList(values []string, present bool) *model.MediaSet {
	if !present {
		return nil
	}
	out := model.MediaSet{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(v), &arr); err == nil {
				for _, s := range arr {
					out = append(out, strings.TrimSpace(s))
				}
				continue
			}
		}
		out = append(out, v)
	}
	out = out.Dedupe()
	return &out
}
