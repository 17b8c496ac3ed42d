// Package request manages the volunteer-request lifecycle and the
// notifications emitted as its side effects. Requests and notifications live
// in their own key-value namespaces, separate from the per-user aggregate
// store.
package request

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hostelmate/marketplace-api/internal/kvstore"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/internal/service/directory"
	"github.com/hostelmate/marketplace-api/pkg/errors"
	"github.com/hostelmate/marketplace-api/pkg/logger"
	"github.com/hostelmate/marketplace-api/pkg/metrics"
)

const (
	requestStoreKey      = "hostelmate:volunteer_requests"
	notificationStoreKey = "hostelmate:notifications"

	// notificationCap bounds the service-side notification feed. This list
	// is intentionally independent of the per-user aggregate's capped list;
	// it is the canonical store for request-lifecycle notifications.
	notificationCap = 100
)

type Service struct {
	kv        kvstore.Store
	directory directory.Provider
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(kv kvstore.Store, dir directory.Provider, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{kv: kv, directory: dir, logger: log, metrics: m}
}

// SendVolunteerRequest creates a pending request from a hostel to a
// volunteer and notifies the volunteer. The empty-message check is
// re-validated here; the UI cannot be trusted as the sole guard.
func (s *Service) SendVolunteerRequest(ctx context.Context, draft model.RequestDraft) (*model.VolunteerRequest, error) {
	if strings.TrimSpace(draft.Message) == "" {
		return nil, errors.NewValidation("request message is required")
	}

	requests, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}

	req := model.VolunteerRequest{
		ID:            uuid.New().String(),
		HostelID:      draft.HostelID,
		HostelName:    draft.HostelName,
		VolunteerID:   draft.VolunteerID,
		VolunteerName: draft.VolunteerName,
		Message:       draft.Message,
		Status:        model.RequestStatusPending,
		RequestedDate: time.Now(),
		Position:      draft.Position,
		Duration:      draft.Duration,
		StartDate:     draft.StartDate,
	}

	requests = append(requests, req)
	if err := s.saveRequests(ctx, requests); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RequestsSent.Inc()
	}

	s.AddNotification(ctx, model.Notification{
		RecipientID: req.VolunteerID,
		Type:        model.NotificationTypeVolunteerRequest,
		Title:       "New volunteer request",
		Message:     fmt.Sprintf("%s sent you a volunteer request", req.HostelName),
		Priority:    model.NotificationPriorityHigh,
		RelatedID:   req.ID,
	})

	s.logger.Info("volunteer request sent",
		"request_id", req.ID, "hostel_id", req.HostelID, "volunteer_id", req.VolunteerID)

	return &req, nil
}

// RespondToVolunteerRequest applies the single allowed status transition and
// notifies the hostel side. Requests already answered stay answered.
func (s *Service) RespondToVolunteerRequest(ctx context.Context, requestID string, decision model.RequestStatus, responseMessage string) (*model.VolunteerRequest, error) {
	if decision != model.RequestStatusAccepted && decision != model.RequestStatusDeclined {
		return nil, errors.NewValidation(fmt.Sprintf("invalid decision %q", decision))
	}

	requests, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range requests {
		if requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.NewNotFound("volunteer request", nil)
	}

	req := &requests[idx]
	if req.Status != model.RequestStatusPending {
		return nil, errors.NewInvalidState("request was already answered")
	}

	now := time.Now()
	req.Status = decision
	req.ResponseDate = &now

	if err := s.saveRequests(ctx, requests); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RequestResponses.WithLabelValues(string(decision)).Inc()
	}

	message := fmt.Sprintf("%s %s your volunteer request", req.VolunteerName, decision)
	if responseMessage != "" {
		message = fmt.Sprintf("%s: %q", message, responseMessage)
	}
	s.AddNotification(ctx, model.Notification{
		RecipientID: req.HostelID,
		Type:        model.NotificationTypeRequestResponse,
		Title:       "Volunteer request response",
		Message:     message,
		Priority:    model.NotificationPriorityHigh,
		RelatedID:   req.ID,
	})

	s.logger.Info("volunteer request answered",
		"request_id", req.ID, "decision", string(decision))

	result := requests[idx]
	return &result, nil
}

// GetVolunteerRequests returns every request addressed to the volunteer, in
// insertion order.
func (s *Service) GetVolunteerRequests(ctx context.Context, volunteerID string) ([]model.VolunteerRequest, error) {
	return s.filterRequests(ctx, func(r *model.VolunteerRequest) bool {
		return r.VolunteerID == volunteerID
	})
}

// GetHostelRequests returns every request sent by the hostel, in insertion
// order.
func (s *Service) GetHostelRequests(ctx context.Context, hostelID string) ([]model.VolunteerRequest, error) {
	return s.filterRequests(ctx, func(r *model.VolunteerRequest) bool {
		return r.HostelID == hostelID
	})
}

// GetAllRequests is the unfiltered administrative view.
func (s *Service) GetAllRequests(ctx context.Context) ([]model.VolunteerRequest, error) {
	return s.loadRequests(ctx)
}

// GetRequest returns the request with the given id.
func (s *Service) GetRequest(ctx context.Context, requestID string) (*model.VolunteerRequest, error) {
	requests, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == requestID {
			req := requests[i]
			return &req, nil
		}
	}
	return nil, errors.NewNotFound("volunteer request", nil)
}

func (s *Service) filterRequests(ctx context.Context, keep func(*model.VolunteerRequest) bool) ([]model.VolunteerRequest, error) {
	requests, err := s.loadRequests(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.VolunteerRequest, 0, len(requests))
	for i := range requests {
		if keep(&requests[i]) {
			filtered = append(filtered, requests[i])
		}
	}
	return filtered, nil
}

// AddNotification prepends a notification to the service feed and trims to
// the retention cap. Bookkeeping is fail-open: a rejected write is logged
// and the notification is still returned.
func (s *Service) AddNotification(ctx context.Context, n model.Notification) *model.Notification {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()
	n.Read = false

	notifications := s.loadNotifications(ctx)
	notifications = append([]model.Notification{n}, notifications...)
	if len(notifications) > notificationCap {
		notifications = notifications[:notificationCap]
	}
	s.saveNotifications(ctx, notifications)

	if s.metrics != nil {
		s.metrics.NotificationsEmitted.WithLabelValues(string(n.Type)).Inc()
	}
	return &n
}

// GetNotifications returns the most-recent-first feed for a recipient. An
// empty recipientID returns the whole feed; limit <= 0 means no limit.
func (s *Service) GetNotifications(ctx context.Context, recipientID string, limit int) []model.Notification {
	notifications := s.loadNotifications(ctx)

	result := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		if recipientID != "" && n.RecipientID != recipientID {
			continue
		}
		result = append(result, n)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

// MarkNotificationAsRead flips one notification to read. A non-empty
// recipientID only matches that recipient's notifications; ids addressed to
// someone else are left alone.
func (s *Service) MarkNotificationAsRead(ctx context.Context, recipientID, id string) {
	notifications := s.loadNotifications(ctx)
	for i := range notifications {
		if notifications[i].ID != id {
			continue
		}
		if recipientID != "" && notifications[i].RecipientID != recipientID {
			return
		}
		if !notifications[i].Read {
			notifications[i].Read = true
			s.saveNotifications(ctx, notifications)
		}
		return
	}
}

func (s *Service) MarkAllNotificationsAsRead(ctx context.Context, recipientID string) {
	notifications := s.loadNotifications(ctx)
	changed := false
	for i := range notifications {
		if recipientID != "" && notifications[i].RecipientID != recipientID {
			continue
		}
		if !notifications[i].Read {
			notifications[i].Read = true
			changed = true
		}
	}
	if changed {
		s.saveNotifications(ctx, notifications)
	}
}

func (s *Service) UnreadNotificationCount(ctx context.Context, recipientID string) int {
	count := 0
	for _, n := range s.loadNotifications(ctx) {
		if recipientID != "" && n.RecipientID != recipientID {
			continue
		}
		if !n.Read {
			count++
		}
	}
	return count
}

// ClearOldNotifications drops feed entries older than daysOld days and
// reports how many were removed.
func (s *Service) ClearOldNotifications(ctx context.Context, daysOld int) int {
	cutoff := time.Now().AddDate(0, 0, -daysOld)

	notifications := s.loadNotifications(ctx)
	kept := notifications[:0]
	for _, n := range notifications {
		if n.CreatedAt.After(cutoff) {
			kept = append(kept, n)
		}
	}

	removed := len(notifications) - len(kept)
	if removed > 0 {
		s.saveNotifications(ctx, kept)
	}
	return removed
}

// SearchVolunteers delegates to the injected directory provider. A real
// search index plugs in behind the same interface.
func (s *Service) SearchVolunteers(ctx context.Context, criteria model.SearchCriteria) ([]model.VolunteerSummary, error) {
	return s.directory.Query(ctx, criteria)
}

// Clear tears down both namespaces owned by the service.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, requestStoreKey); err != nil {
		return errors.NewStorage(err)
	}
	if err := s.kv.Delete(ctx, notificationStoreKey); err != nil {
		return errors.NewStorage(err)
	}
	return nil
}

// loadRequests reads the request namespace. Requests are the primary
// entities here, so storage failures propagate.
func (s *Service) loadRequests(ctx context.Context) ([]model.VolunteerRequest, error) {
	raw, ok, err := s.kv.Get(ctx, requestStoreKey)
	if err != nil {
		return nil, errors.NewStorage(err)
	}
	if !ok {
		return nil, nil
	}

	var requests []model.VolunteerRequest
	if err := json.Unmarshal([]byte(raw), &requests); err != nil {
		return nil, errors.NewStorage(fmt.Errorf("corrupt request store: %w", err))
	}
	return requests, nil
}

func (s *Service) saveRequests(ctx context.Context, requests []model.VolunteerRequest) error {
	payload, err := json.Marshal(requests)
	if err != nil {
		return errors.NewStorage(err)
	}
	if err := s.kv.Set(ctx, requestStoreKey, string(payload)); err != nil {
		return errors.NewStorage(err)
	}
	return nil
}

// loadNotifications reads the notification namespace with the fail-open
// posture of a best-effort cache: errors are logged and an empty feed is
// returned.
func (s *Service) loadNotifications(ctx context.Context) []model.Notification {
	raw, ok, err := s.kv.Get(ctx, notificationStoreKey)
	if err != nil {
		s.logger.Error(err, "failed to read notification store")
		return nil
	}
	if !ok {
		return nil
	}

	var notifications []model.Notification
	if err := json.Unmarshal([]byte(raw), &notifications); err != nil {
		s.logger.Error(err, "discarding corrupt notification store")
		return nil
	}
	return notifications
}

func (s *Service) saveNotifications(ctx context.Context, notifications []model.Notification) {
	payload, err := json.Marshal(notifications)
	if err != nil {
		s.logger.Error(err, "failed to serialize notifications")
		return
	}
	if err := s.kv.Set(ctx, notificationStoreKey, string(payload)); err != nil {
		s.logger.Error(err, "failed to persist notifications")
		if s.metrics != nil {
			s.metrics.NotificationsDropped.Inc()
		}
	}
}
