// Package directory abstracts the volunteer search index. The core depends
// on the Provider capability only; the sample-backed implementation stands
// in for a real index and carries no scalability guarantee.
package directory

import (
	"context"

	"github.com/hostelmate/marketplace-api/internal/model"
)

type Provider interface {
	Query(ctx context.Context, criteria model.SearchCriteria) ([]model.VolunteerSummary, error)
}

// SampleProvider filters a fixed in-memory dataset. A match must satisfy
// every supplied criterion: country and experience compare exactly, skills
// match on any overlap. Availability is accepted but not matched against
// the sample data.
type SampleProvider struct {
	volunteers []model.VolunteerSummary
}

func NewSampleProvider(volunteers []model.VolunteerSummary) *SampleProvider {
	if volunteers == nil {
		volunteers = sampleVolunteers
	}
	return &SampleProvider{volunteers: volunteers}
}

func (p *SampleProvider) Query(_ context.Context, criteria model.SearchCriteria) ([]model.VolunteerSummary, error) {
	matches := []model.VolunteerSummary{}
	for _, v := range p.volunteers {
		if matchesCriteria(&v, criteria) {
			matches = append(matches, v)
		}
	}
	return matches, nil
}

func matchesCriteria(v *model.VolunteerSummary, c model.SearchCriteria) bool {
	if c.Country != "" && v.Country != c.Country {
		return false
	}
	if c.Experience != "" && v.Experience != c.Experience {
		return false
	}
	if len(c.Skills) > 0 && !anyOverlap(v.Skills, c.Skills) {
		return false
	}
	return true
}

func anyOverlap(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
