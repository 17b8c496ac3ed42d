package model

import "time"

type NotificationType string

const (
	NotificationTypeVolunteerRequest  NotificationType = "volunteer_request"
	NotificationTypeRequestResponse   NotificationType = "request_response"
	NotificationTypeApplicationStatus NotificationType = "application_status"
	NotificationTypeMessage           NotificationType = "message"
	NotificationTypeSystem            NotificationType = "system"
	NotificationTypeError             NotificationType = "error"
	NotificationTypeSuccess           NotificationType = "success"
	NotificationTypeInfo              NotificationType = "info"
	NotificationTypeWarning           NotificationType = "warning"
)

type NotificationPriority string

const (
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityLow    NotificationPriority = "low"
)

// Notification is an in-app record produced as a side effect of a lifecycle
// event. Read starts false and only ever flips to true. RelatedID is a
// navigation hint back to the triggering entity and is never dereferenced
// by the core.
type Notification struct {
	ID          string               `json:"id"`
	RecipientID string               `json:"recipientId,omitempty"`
	Type        NotificationType     `json:"type"`
	Title       string               `json:"title"`
	Message     string               `json:"message"`
	Priority    NotificationPriority `json:"priority"`
	Read        bool                 `json:"read"`
	CreatedAt   time.Time            `json:"createdAt"`
	RelatedID   string               `json:"relatedId,omitempty"`
}
