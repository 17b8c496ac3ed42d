package directory

import "github.com/hostelmate/marketplace-api/internal/model"

// sampleVolunteers is the default dataset backing SampleProvider until a
// real index is plugged in.
var sampleVolunteers = []model.VolunteerSummary{
	{
		ID:         "vol-1001",
		Name:       "Ana Silva",
		Country:    "Portugal",
		Skills:     []string{"reception", "social media", "tours"},
		Experience: "intermediate",
		Bio:        "Former tour guide from Porto who loves meeting travellers.",
	},
	{
		ID:         "vol-1002",
		Name:       "Tom Becker",
		Country:    "Germany",
		Skills:     []string{"bar", "events", "reception"},
		Experience: "experienced",
		Bio:        "Five seasons of hostel bars across South America.",
	},
	{
		ID:         "vol-1003",
		Name:       "Mariana Lopez",
		Country:    "Argentina",
		Skills:     []string{"photography", "social media"},
		Experience: "beginner",
		Bio:        "Travel photographer looking for a first volunteering stay.",
	},
	{
		ID:         "vol-1004",
		Name:       "Kenji Watanabe",
		Country:    "Japan",
		Skills:     []string{"cooking", "cleaning", "gardening"},
		Experience: "intermediate",
		Bio:        "Home cook happy to run breakfast shifts.",
	},
	{
		ID:         "vol-1005",
		Name:       "Sofia Rossi",
		Country:    "Italy",
		Skills:     []string{"reception", "tours", "languages"},
		Experience: "experienced",
		Bio:        "Speaks four languages, has managed front desks in Lisbon and Rome.",
	},
	{
		ID:         "vol-1006",
		Name:       "Lucas Oliveira",
		Country:    "Brazil",
		Skills:     []string{"surf lessons", "bar", "events"},
		Experience: "intermediate",
		Bio:        "Surf instructor from Florianópolis.",
	},
}
