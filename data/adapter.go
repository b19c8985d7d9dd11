// Package data exposes one typed CRUD facade per entity over whichever
// backend the runtime selected. Callers write identical code against the
// durable store and the mock store; errors pass through unchanged.
package data

import (
	"context"
	"sync"
	"time"

	"planora/models"
	"planora/store"
)

// Adapter is the entity-typed face of the data layer. Construct one per
// runtime via Factory.For.
type Adapter struct {
	rt *store.Runtime

	Tasks         *Collection[models.Task]
	Events        *Collection[models.Event]
	Bills         *Collection[models.Bill]
	Expenses      *Collection[models.Expense]
	Notes         *Collection[models.Note]
	Pomodoro      *Collection[models.PomodoroSession]
	Notifications *Collection[models.Notification]
	Users         *Collection[models.User]
	Settings      *Settings
}

func newAdapter(rt *store.Runtime) *Adapter {
	a := &Adapter{rt: rt}
	a.Tasks = newCollection[models.Task](rt, store.CollectionTasks)
	a.Events = newCollection[models.Event](rt, store.CollectionEvents)
	a.Bills = newCollection[models.Bill](rt, store.CollectionBills)
	a.Expenses = newCollection[models.Expense](rt, store.CollectionExpenses)
	a.Notes = newCollection[models.Note](rt, store.CollectionNotes)
	a.Pomodoro = newCollection[models.PomodoroSession](rt, store.CollectionPomodoroSessions)
	a.Notifications = newCollection[models.Notification](rt, store.CollectionNotifications)
	a.Users = newCollection[models.User](rt, store.CollectionUsers)
	a.Settings = newSettings(rt)
	return a
}

// Factory hands out exactly one Adapter per runtime. Runtimes for different
// execution contexts therefore never share an adapter instance.
type Factory struct {
	mu       sync.Mutex
	adapters map[*store.Runtime]*Adapter
}

func NewFactory() *Factory {
	return &Factory{adapters: make(map[*store.Runtime]*Adapter)}
}

func (f *Factory) For(rt *store.Runtime) *Adapter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.adapters[rt]; ok {
		return a
	}
	a := newAdapter(rt)
	f.adapters[rt] = a
	return a
}

// Collection forwards typed CRUD calls to the backend's generic operations
// with the entity's collection name fixed.
type Collection[T any] struct {
	rt   *store.Runtime
	name string
}

func newCollection[T any](rt *store.Runtime, name string) *Collection[T] {
	return &Collection[T]{rt: rt, name: name}
}

func (c *Collection[T]) FindMany(ctx context.Context, opts store.FindOptions) ([]T, error) {
	backend, err := c.rt.Backend()
	if err != nil {
		return nil, err
	}
	docs, err := backend.FindMany(ctx, c.name, opts)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var record T
		if err := store.Decode(doc, &record); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

// FindUnique returns the record by id, or nil when absent.
func (c *Collection[T]) FindUnique(ctx context.Context, id string) (*T, error) {
	backend, err := c.rt.Backend()
	if err != nil {
		return nil, err
	}
	doc, err := backend.FindUnique(ctx, c.name, store.Where{"id": id})
	if err != nil || doc == nil {
		return nil, err
	}
	return decodeRecord[T](doc)
}

func (c *Collection[T]) Create(ctx context.Context, record T) (*T, error) {
	backend, err := c.rt.Backend()
	if err != nil {
		return nil, err
	}
	doc, err := store.Encode(record)
	if err != nil {
		return nil, err
	}
	stripEmptyEnvelope(doc)
	created, err := backend.Create(ctx, c.name, doc)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](created)
}

// Update patches only the supplied fields; everything else keeps its stored
// value.
func (c *Collection[T]) Update(ctx context.Context, id string, patch store.Document) (*T, error) {
	backend, err := c.rt.Backend()
	if err != nil {
		return nil, err
	}
	updated, err := backend.Update(ctx, c.name, id, patch)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](updated)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) (string, error) {
	backend, err := c.rt.Backend()
	if err != nil {
		return "", err
	}
	return backend.Delete(ctx, c.name, id)
}

func decodeRecord[T any](doc store.Document) (*T, error) {
	var record T
	if err := store.Decode(doc, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// stripEmptyEnvelope drops an unset id and zero-value timestamps from an
// encoded record so the store generates them instead of persisting zeros.
func stripEmptyEnvelope(doc store.Document) {
	if id, ok := doc["id"].(string); ok && id == "" {
		delete(doc, "id")
	}
	for _, field := range []string{"createdAt", "updatedAt"} {
		if s, ok := doc[field].(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil && t.IsZero() {
				delete(doc, field)
			}
		}
	}
}
