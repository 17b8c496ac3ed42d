// Package store implements durable, single-owner storage for one user
// aggregate on top of the key-value capability. Writes are best-effort by
// policy: the aggregate is a cache of presentation state, so a rejected
// write is logged and swallowed rather than propagated.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hostelmate/marketplace-api/internal/kvstore"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/pkg/logger"
)

const (
	// DefaultUserKey is the well-known key for single-user deployments,
	// kept distinct from the request/notification namespaces owned by the
	// request service.
	DefaultUserKey = "hostelmate:current_user"

	userKeyPrefix = "hostelmate:user:"

	// notificationCap bounds the aggregate's notification list. Insertion
	// prepends, so truncation discards the oldest entries.
	notificationCap = 50
)

// UserStore owns exactly one aggregate under one key.
type UserStore struct {
	kv     kvstore.Store
	key    string
	logger *logger.Logger
}

func NewUserStore(kv kvstore.Store, log *logger.Logger) *UserStore {
	return &UserStore{kv: kv, key: DefaultUserKey, logger: log}
}

// Factory derives per-user stores for the HTTP layer, which serves many
// accounts; each derived store still has a single logical writer.
type Factory struct {
	kv     kvstore.Store
	logger *logger.Logger
}

func NewFactory(kv kvstore.Store, log *logger.Logger) *Factory {
	return &Factory{kv: kv, logger: log}
}

func (f *Factory) ForUser(userID string) *UserStore {
	return &UserStore{kv: f.kv, key: userKeyPrefix + userID, logger: f.logger}
}

// Save overwrites the stored aggregate unconditionally. A rejected write is
// logged, not returned: losing this cache is not catastrophic to callers.
func (s *UserStore) Save(ctx context.Context, aggregate *model.UserAggregate) error {
	payload, err := json.Marshal(aggregate)
	if err != nil {
		s.logger.Error(err, "failed to serialize user aggregate")
		return nil
	}
	if err := s.kv.Set(ctx, s.key, string(payload)); err != nil {
		s.logger.Error(err, "failed to persist user aggregate", "key", s.key)
	}
	return nil
}

// Load returns the stored aggregate, or nil if never saved or the stored
// value no longer deserializes. Availability dates come back as time values
// via the aggregate's typed fields.
func (s *UserStore) Load(ctx context.Context) (*model.UserAggregate, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Error(err, "failed to read user aggregate", "key", s.key)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	var aggregate model.UserAggregate
	if err := json.Unmarshal([]byte(raw), &aggregate); err != nil {
		s.logger.Error(err, "discarding corrupt user aggregate", "key", s.key)
		return nil, nil
	}
	return &aggregate, nil
}

// Update loads the aggregate, applies the patch and saves the result. A
// missing aggregate makes this a no-op: there must be something to update.
func (s *UserStore) Update(ctx context.Context, apply func(*model.UserAggregate)) error {
	aggregate, err := s.Load(ctx)
	if err != nil || aggregate == nil {
		return err
	}
	apply(aggregate)
	return s.Save(ctx, aggregate)
}

// AddSavedItem inserts id into the saved-items set. Already-present ids are
// left alone.
func (s *UserStore) AddSavedItem(ctx context.Context, id string) error {
	return s.Update(ctx, func(a *model.UserAggregate) {
		for _, existing := range a.SavedItems {
			if existing == id {
				return
			}
		}
		a.SavedItems = append(a.SavedItems, id)
	})
}

func (s *UserStore) RemoveSavedItem(ctx context.Context, id string) error {
	return s.Update(ctx, func(a *model.UserAggregate) {
		items := a.SavedItems[:0]
		for _, existing := range a.SavedItems {
			if existing != id {
				items = append(items, existing)
			}
		}
		a.SavedItems = items
	})
}

// AddApplication appends an application with a fresh id, pending status and
// the current time. Duplicate applications are allowed.
func (s *UserStore) AddApplication(ctx context.Context, app model.Application) (*model.Application, error) {
	app.ID = uuid.New().String()
	app.Status = model.ApplicationStatusPending
	app.AppliedDate = time.Now()

	err := s.Update(ctx, func(a *model.UserAggregate) {
		a.Applications = append(a.Applications, app)
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *UserStore) AddMessage(ctx context.Context, msg model.Message) (*model.Message, error) {
	msg.ID = uuid.New().String()
	msg.Timestamp = time.Now()
	msg.Read = false

	err := s.Update(ctx, func(a *model.UserAggregate) {
		a.Messages = append(a.Messages, msg)
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// AddNotification prepends so the list stays most-recent-first, then trims
// to the retention cap.
func (s *UserStore) AddNotification(ctx context.Context, n model.Notification) (*model.Notification, error) {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()
	n.Read = false

	err := s.Update(ctx, func(a *model.UserAggregate) {
		a.Notifications = append([]model.Notification{n}, a.Notifications...)
		if len(a.Notifications) > notificationCap {
			a.Notifications = a.Notifications[:notificationCap]
		}
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *UserStore) MarkNotificationAsRead(ctx context.Context, id string) error {
	return s.Update(ctx, func(a *model.UserAggregate) {
		for i := range a.Notifications {
			if a.Notifications[i].ID == id {
				a.Notifications[i].Read = true
				return
			}
		}
	})
}

func (s *UserStore) MarkMessageAsRead(ctx context.Context, id string) error {
	return s.Update(ctx, func(a *model.UserAggregate) {
		for i := range a.Messages {
			if a.Messages[i].ID == id {
				a.Messages[i].Read = true
				return
			}
		}
	})
}

func (s *UserStore) UnreadNotificationCount(ctx context.Context) (int, error) {
	aggregate, err := s.Load(ctx)
	if err != nil || aggregate == nil {
		return 0, err
	}
	count := 0
	for _, n := range aggregate.Notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *UserStore) UnreadMessageCount(ctx context.Context) (int, error) {
	aggregate, err := s.Load(ctx)
	if err != nil || aggregate == nil {
		return 0, err
	}
	count := 0
	for _, m := range aggregate.Messages {
		if !m.Read {
			count++
		}
	}
	return count, nil
}

// Clear removes the stored aggregate. Exposed so tests and logout flows can
// reset state.
func (s *UserStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
