package store

import "fmt"

// Collection names used across the store and adapter.
const (
	CollectionTasks            = "tasks"
	CollectionEvents           = "events"
	CollectionBills            = "bills"
	CollectionExpenses         = "expenses"
	CollectionNotes            = "notes"
	CollectionPomodoroSessions = "pomodoroSessions"
	CollectionUserSettings     = "userSettings"
	CollectionNotifications    = "notifications"
	CollectionUsers            = "users"
)

// Collection describes one named set of records. SingletonKey names the
// secondary field that identifies a record uniquely per owner (at most one
// record per distinct value); it changes how FindUnique and Upsert resolve
// their lookup. Indexes lists fields that get a secondary index on
// provisioning.
type Collection struct {
	Name         string
	Table        string
	SingletonKey string
	Indexes      []string
}

// Collections is the fixed registry of provisioned collections.
var Collections = []Collection{
	{Name: CollectionTasks, Table: "tasks", Indexes: []string{"userId", "completed", "dueDate"}},
	{Name: CollectionEvents, Table: "events", Indexes: []string{"userId", "startDate"}},
	{Name: CollectionBills, Table: "bills", Indexes: []string{"userId", "dueDate"}},
	{Name: CollectionExpenses, Table: "expenses", Indexes: []string{"userId"}},
	{Name: CollectionNotes, Table: "notes", Indexes: []string{"userId"}},
	{Name: CollectionPomodoroSessions, Table: "pomodoro_sessions", Indexes: []string{"userId"}},
	{Name: CollectionUserSettings, Table: "user_settings", SingletonKey: "userId"},
	{Name: CollectionNotifications, Table: "notifications", Indexes: []string{"userId"}},
	{Name: CollectionUsers, Table: "users"},
}

var collectionsByName = func() map[string]Collection {
	m := make(map[string]Collection, len(Collections))
	for _, c := range Collections {
		m[c.Name] = c
	}
	return m
}()

func collectionFor(name string) (Collection, error) {
	c, ok := collectionsByName[name]
	if !ok {
		return Collection{}, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return c, nil
}

func (c Collection) hasIndex(field string) bool {
	for _, f := range c.Indexes {
		if f == field {
			return true
		}
	}
	return false
}
