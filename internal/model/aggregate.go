package model

import "time"

type UserType string

const (
	UserTypeVolunteer UserType = "volunteer"
	UserTypeHostel    UserType = "hostel"
)

// SenderRole tags who authored a message. An explicit field rather than
// anything inferred from id formats.
type SenderRole string

const (
	SenderRoleVolunteer SenderRole = "volunteer"
	SenderRoleHostel    SenderRole = "hostel"
)

// UserAggregate is the single unit of storage for one account: profile plus
// four independently growing lists. Exactly one of Volunteer or Hostel is
// set, keyed by Type. Every mutation reads the full aggregate, patches one
// field and writes the whole record back.
type UserAggregate struct {
	ID            string            `json:"id"`
	Type          UserType          `json:"type"`
	Volunteer     *VolunteerProfile `json:"volunteerProfile,omitempty"`
	Hostel        *HostelProfile    `json:"hostelProfile,omitempty"`
	SavedItems    []string          `json:"savedItems"`
	Applications  []Application     `json:"applications"`
	Messages      []Message         `json:"messages"`
	Notifications []Notification    `json:"notifications"`
}

// VolunteerProfile holds the volunteer-side profile shape. The availability
// dates are the only date fields rehydrated into time values on load; other
// date-like fields stay strings and are formatted by the presentation layer.
type VolunteerProfile struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Country       string     `json:"country,omitempty"`
	Skills        []string   `json:"skills,omitempty"`
	Experience    string     `json:"experience,omitempty"`
	Bio           string     `json:"bio,omitempty"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	AvailableTo   *time.Time `json:"availableTo,omitempty"`
}

type HostelProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a volunteer-initiated application to a hostel position.
// Applications are never deduplicated.
type Application struct {
	ID          string            `json:"id"`
	HostelID    string            `json:"hostelId"`
	HostelName  string            `json:"hostelName"`
	Position    string            `json:"position,omitempty"`
	Message     string            `json:"message,omitempty"`
	Status      ApplicationStatus `json:"status"`
	AppliedDate time.Time         `json:"appliedDate"`
}

type Message struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"senderId"`
	SenderName string     `json:"senderName"`
	SenderRole SenderRole `json:"senderRole"`
	Content    string     `json:"content"`
	Read       bool       `json:"read"`
	Timestamp  time.Time  `json:"timestamp"`
}
