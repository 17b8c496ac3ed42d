package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmate/marketplace-api/internal/kvstore"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/pkg/logger"
)

func newTestStore(t *testing.T) (*UserStore, context.Context) {
	t.Helper()
	s := NewUserStore(kvstore.NewMemory(), logger.Nop())
	return s, context.Background()
}

func volunteerAggregate() *model.UserAggregate {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	return &model.UserAggregate{
		ID:   "vol-1",
		Type: model.UserTypeVolunteer,
		Volunteer: &model.VolunteerProfile{
			Name:          "Ana Silva",
			Email:         "ana@example.com",
			Country:       "Portugal",
			Skills:        []string{"reception", "tours"},
			Experience:    "intermediate",
			AvailableFrom: &from,
			AvailableTo:   &to,
		},
		SavedItems:    []string{},
		Applications:  []model.Application{},
		Messages:      []model.Message{},
		Notifications: []model.Notification{},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, ctx := newTestStore(t)
	original := volunteerAggregate()

	require.NoError(t, s.Save(ctx, original))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.Type, loaded.Type)
	require.NotNil(t, loaded.Volunteer)
	assert.Equal(t, original.Volunteer.Name, loaded.Volunteer.Name)
	assert.Equal(t, original.Volunteer.Skills, loaded.Volunteer.Skills)

	// Availability dates survive serialization by instant.
	require.NotNil(t, loaded.Volunteer.AvailableFrom)
	assert.True(t, loaded.Volunteer.AvailableFrom.Equal(*original.Volunteer.AvailableFrom))
	require.NotNil(t, loaded.Volunteer.AvailableTo)
	assert.True(t, loaded.Volunteer.AvailableTo.Equal(*original.Volunteer.AvailableTo))
}

func TestLoadAbsentReturnsNil(t *testing.T) {
	s, ctx := newTestStore(t)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadCorruptReturnsNil(t *testing.T) {
	kv := kvstore.NewMemory()
	s := NewUserStore(kv, logger.Nop())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, DefaultUserKey, "{not json"))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestUpdateIsNoOpWhenAbsent(t *testing.T) {
	s, ctx := newTestStore(t)

	called := false
	require.NoError(t, s.Update(ctx, func(*model.UserAggregate) { called = true }))
	assert.False(t, called)

	loaded, _ := s.Load(ctx)
	assert.Nil(t, loaded)
}

func TestAddSavedItemIsIdempotent(t *testing.T) {
	s, ctx := newTestStore(t)
	require.NoError(t, s.Save(ctx, volunteerAggregate()))

	require.NoError(t, s.AddSavedItem(ctx, "hostel-7"))
	require.NoError(t, s.AddSavedItem(ctx, "hostel-7"))
	require.NoError(t, s.AddSavedItem(ctx, "hostel-9"))

	loaded, _ := s.Load(ctx)
	assert.ElementsMatch(t, []string{"hostel-7", "hostel-9"}, loaded.SavedItems)

	require.NoError(t, s.RemoveSavedItem(ctx, "hostel-7"))
	loaded, _ = s.Load(ctx)
	assert.Equal(t, []string{"hostel-9"}, loaded.SavedItems)

	// Removing an absent item is a no-op.
	require.NoError(t, s.RemoveSavedItem(ctx, "hostel-7"))
}

func TestAddApplicationFillsDefaults(t *testing.T) {
	s, ctx := newTestStore(t)
	require.NoError(t, s.Save(ctx, volunteerAggregate()))

	app, err := s.AddApplication(ctx, model.Application{
		HostelID:   "hostel-1",
		HostelName: "Sunset Hostel",
		Position:   "reception",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	assert.False(t, app.AppliedDate.IsZero())

	// Applications are never deduplicated.
	_, err = s.AddApplication(ctx, model.Application{HostelID: "hostel-1", HostelName: "Sunset Hostel"})
	require.NoError(t, err)

	loaded, _ := s.Load(ctx)
	assert.Len(t, loaded.Applications, 2)
}

func TestNotificationPrependAndCap(t *testing.T) {
	s, ctx := newTestStore(t)
	require.NoError(t, s.Save(ctx, volunteerAggregate()))

	total := notificationCap + 5
	for i := 1; i <= total; i++ {
		_, err := s.AddNotification(ctx, model.Notification{
			Type:  model.NotificationTypeInfo,
			Title: fmt.Sprintf("n%d", i),
		})
		require.NoError(t, err)
	}

	loaded, _ := s.Load(ctx)
	require.Len(t, loaded.Notifications, notificationCap)

	// Most-recent-first: the head is the last insert, the tail is the
	// oldest survivor.
	assert.Equal(t, fmt.Sprintf("n%d", total), loaded.Notifications[0].Title)
	assert.Equal(t, fmt.Sprintf("n%d", total-notificationCap+1),
		loaded.Notifications[notificationCap-1].Title)
}

func TestMarkAsReadAndCounts(t *testing.T) {
	s, ctx := newTestStore(t)
	require.NoError(t, s.Save(ctx, volunteerAggregate()))

	n1, err := s.AddNotification(ctx, model.Notification{Type: model.NotificationTypeInfo, Title: "a"})
	require.NoError(t, err)
	_, err = s.AddNotification(ctx, model.Notification{Type: model.NotificationTypeInfo, Title: "b"})
	require.NoError(t, err)

	count, err := s.UnreadNotificationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, s.MarkNotificationAsRead(ctx, n1.ID))
	count, _ = s.UnreadNotificationCount(ctx)
	assert.Equal(t, 1, count)

	// Marking an unknown id is a no-op.
	require.NoError(t, s.MarkNotificationAsRead(ctx, "nope"))
	count, _ = s.UnreadNotificationCount(ctx)
	assert.Equal(t, 1, count)
}

func TestMessageReadTracking(t *testing.T) {
	s, ctx := newTestStore(t)
	require.NoError(t, s.Save(ctx, volunteerAggregate()))

	msg, err := s.AddMessage(ctx, model.Message{
		SenderID:   "hostel-1",
		SenderName: "Sunset Hostel",
		SenderRole: model.SenderRoleHostel,
		Content:    "hello",
	})
	require.NoError(t, err)
	assert.False(t, msg.Read)

	count, err := s.UnreadMessageCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, s.MarkMessageAsRead(ctx, msg.ID))
	count, _ = s.UnreadMessageCount(ctx)
	assert.Equal(t, 0, count)
}

func TestCountsAreZeroWhenAbsent(t *testing.T) {
	s, ctx := newTestStore(t)

	count, err := s.UnreadNotificationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = s.UnreadMessageCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestClear(t *testing.T) {
	s, ctx := newTestStore(t)
	require.NoError(t, s.Save(ctx, volunteerAggregate()))
	require.NoError(t, s.Clear(ctx))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFactoryScopesKeysPerUser(t *testing.T) {
	kv := kvstore.NewMemory()
	f := NewFactory(kv, logger.Nop())
	ctx := context.Background()

	a := volunteerAggregate()
	require.NoError(t, f.ForUser("vol-1").Save(ctx, a))

	other, err := f.ForUser("vol-2").Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, other)

	mine, err := f.ForUser("vol-1").Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, "vol-1", mine.ID)
}
