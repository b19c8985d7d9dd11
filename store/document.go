package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"
)

// Document is a persisted record in its JSON form: string, float64, bool,
// nil, []any and nested map[string]any values only.
type Document map[string]any

// Where is a conjunctive equality filter: every listed field must equal the
// given value. No ranges, no disjunction.
type Where map[string]any

// Order sorts a result set by a single field.
type Order struct {
	Field string
	Desc  bool
}

// FindOptions narrows and orders a FindMany result.
type FindOptions struct {
	Where   Where
	OrderBy *Order
}

// Encode converts any JSON-marshalable value into a Document.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return doc, nil
}

// Decode converts a Document back into a typed record.
func Decode(doc Document, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// normalizeValue round-trips a value through JSON so comparisons see the same
// types a stored document would (ints become float64, time.Time becomes an
// RFC 3339 string, and so on).
func normalizeValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func normalizeDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (d Document) id() (string, bool) {
	id, ok := d["id"].(string)
	return id, ok && id != ""
}

// matches reports whether every field listed in where equals the document's
// value for that field.
func matches(doc Document, where Where) bool {
	for field, want := range where {
		if !reflect.DeepEqual(doc[field], normalizeValue(want)) {
			return false
		}
	}
	return true
}

// mergePatch lays patch over existing, field by field. Nested values are
// replaced wholesale, not deep-merged. The record identity and creation time
// never change.
func mergePatch(existing, patch Document) Document {
	out := existing.clone()
	for k, v := range patch {
		if k == "id" || k == "createdAt" {
			continue
		}
		out[k] = v
	}
	return out
}

// stamp writes createdAt/updatedAt on a fresh document, keeping any
// caller-supplied values. Both default to the same instant so a new record
// has createdAt == updatedAt.
func stamp(doc Document, now time.Time) {
	ts := now.UTC().Format(time.RFC3339Nano)
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = ts
	}
	if _, ok := doc["updatedAt"]; !ok {
		doc["updatedAt"] = doc["createdAt"]
	}
}

// touch advances updatedAt, guaranteeing it strictly increases even when the
// clock has not moved between writes.
func touch(doc Document, now time.Time) {
	now = now.UTC()
	if prev, ok := doc["updatedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, prev); err == nil && !now.After(t) {
			now = t.Add(time.Microsecond)
		}
	}
	doc["updatedAt"] = now.Format(time.RFC3339Nano)
}

// sortDocs orders docs by a single field. Values of mismatched or
// non-comparable types keep their relative position only as far as the
// comparison below defines it.
func sortDocs(docs []Document, order *Order) {
	if order == nil || order.Field == "" {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		less := compareValues(docs[i][order.Field], docs[j][order.Field]) < 0
		if order.Desc {
			return compareValues(docs[i][order.Field], docs[j][order.Field]) > 0
		}
		return less
	})
}

func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case !av && bv:
				return -1
			case av && !bv:
				return 1
			}
			return 0
		}
	}
	return 0
}
