package data

import (
	"context"

	"golang.org/x/sync/singleflight"

	"planora/models"
	"planora/store"
)

// Settings is the facade for the per-user settings singleton. Lookups key on
// userId rather than the record id, and a user with no settings yet gets a
// default record seeded on first read.
type Settings struct {
	rt   *store.Runtime
	seed singleflight.Group
}

func newSettings(rt *store.Runtime) *Settings {
	return &Settings{rt: rt}
}

// DefaultSettings is the record seeded for a user with no settings yet.
func DefaultSettings(userID string) models.UserSettings {
	return models.UserSettings{
		UserID:               userID,
		Theme:                "light",
		WorkDuration:         25,
		ShortBreakDuration:   5,
		LongBreakDuration:    15,
		Currency:             "USD",
		NotificationsEnabled: true,
		Language:             "en",
	}
}

// ForUser returns the user's settings, seeding defaults on first read so
// callers never observe a missing-settings state. Concurrent first reads
// collapse into a single seeding upsert.
func (s *Settings) ForUser(ctx context.Context, userID string) (*models.UserSettings, error) {
	backend, err := s.rt.Backend()
	if err != nil {
		return nil, err
	}

	doc, err := backend.FindUnique(ctx, store.CollectionUserSettings, store.Where{"userId": userID})
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return decodeRecord[models.UserSettings](doc)
	}

	v, err, _ := s.seed.Do(userID, func() (any, error) {
		return s.Upsert(ctx, userID, DefaultSettings(userID), store.Document{})
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.UserSettings), nil
}

// Upsert updates the user's existing settings record in place, or creates one
// from create when none exists. The lookup runs on userId, so at most one
// settings record ever exists per user.
func (s *Settings) Upsert(ctx context.Context, userID string, create models.UserSettings, update store.Document) (*models.UserSettings, error) {
	backend, err := s.rt.Backend()
	if err != nil {
		return nil, err
	}

	createDoc, err := store.Encode(create)
	if err != nil {
		return nil, err
	}
	stripEmptyEnvelope(createDoc)

	doc, err := backend.Upsert(ctx, store.CollectionUserSettings,
		store.Where{"userId": userID}, createDoc, update)
	if err != nil {
		return nil, err
	}
	return decodeRecord[models.UserSettings](doc)
}

// Apply patches the user's settings, creating them from defaults plus the
// patch when the user has none yet.
func (s *Settings) Apply(ctx context.Context, userID string, patch store.Document) (*models.UserSettings, error) {
	create := DefaultSettings(userID)
	createDoc, err := store.Encode(create)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		createDoc[k] = v
	}
	var seeded models.UserSettings
	if err := store.Decode(createDoc, &seeded); err != nil {
		return nil, err
	}
	return s.Upsert(ctx, userID, seeded, patch)
}
