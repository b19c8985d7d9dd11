package store

import (
	"context"
	"time"
)

// Mock is the backend used where persistence is unavailable (pre-render and
// other server-side contexts). It fabricates plausible records without
// storing anything: reads come back empty, writes echo the caller's payload
// with a fresh id and timestamps. No call ever fails.
type Mock struct {
	now func() time.Time
}

var _ Backend = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{now: time.Now}
}

func (m *Mock) FindUnique(ctx context.Context, collection string, where Where) (Document, error) {
	return nil, nil
}

func (m *Mock) FindMany(ctx context.Context, collection string, opts FindOptions) ([]Document, error) {
	return []Document{}, nil
}

func (m *Mock) Create(ctx context.Context, collection string, data Document) (Document, error) {
	return m.fabricate(data, nil), nil
}

// Update fabricates a merged record even for ids nothing has ever created;
// missing records are not an error here.
func (m *Mock) Update(ctx context.Context, collection string, id string, patch Document) (Document, error) {
	return m.fabricate(patch, Document{"id": id}), nil
}

func (m *Mock) Delete(ctx context.Context, collection string, id string) (string, error) {
	return id, nil
}

func (m *Mock) Upsert(ctx context.Context, collection string, where Where, create, update Document) (Document, error) {
	return m.fabricate(create, Document(where)), nil
}

func (m *Mock) Close() error {
	return nil
}

func (m *Mock) fabricate(data, keys Document) Document {
	doc := normalizeDoc(data)
	for k, v := range keys {
		doc[k] = normalizeValue(v)
	}
	if _, ok := doc.id(); !ok {
		doc["id"] = NewID()
	}
	stamp(doc, m.now())
	return doc
}
