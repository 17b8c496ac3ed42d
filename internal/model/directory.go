package model

// SearchCriteria filters the volunteer directory. Every supplied criterion
// must be satisfied; empty fields match everything.
type SearchCriteria struct {
	Country      string   `json:"country,omitempty" form:"country"`
	Skills       []string `json:"skills,omitempty" form:"skills"`
	Experience   string   `json:"experience,omitempty" form:"experience"`
	Availability string   `json:"availability,omitempty" form:"availability"`
}

// VolunteerSummary is the directory's lightweight view of a volunteer.
type VolunteerSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Country    string   `json:"country"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Bio        string   `json:"bio,omitempty"`
}
