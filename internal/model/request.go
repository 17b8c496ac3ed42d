package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusDeclined RequestStatus = "declined"
)

// VolunteerRequest is an invitation from a hostel to a volunteer. Status
// starts at pending and transitions to accepted or declined exactly once;
// reopening requires a new request. Identity fields are denormalized at
// creation time and never re-synced against the referenced profiles.
type VolunteerRequest struct {
	ID            string        `json:"id"`
	HostelID      string        `json:"hostelId"`
	HostelName    string        `json:"hostelName"`
	VolunteerID   string        `json:"volunteerId"`
	VolunteerName string        `json:"volunteerName"`
	Message       string        `json:"message"`
	Status        RequestStatus `json:"status"`
	RequestedDate time.Time     `json:"requestedDate"`
	ResponseDate  *time.Time    `json:"responseDate,omitempty"`

	// Optional descriptive metadata, never validated against any
	// calendar or duration grammar.
	Position  string `json:"position,omitempty"`
	Duration  string `json:"duration,omitempty"`
	StartDate string `json:"startDate,omitempty"`
}

// RequestDraft is the caller-supplied part of a new volunteer request.
type RequestDraft struct {
	HostelID      string `json:"hostelId" binding:"required"`
	HostelName    string `json:"hostelName" binding:"required"`
	VolunteerID   string `json:"volunteerId" binding:"required"`
	VolunteerName string `json:"volunteerName" binding:"required"`
	Message       string `json:"message"`
	Position      string `json:"position,omitempty"`
	Duration      string `json:"duration,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
}
