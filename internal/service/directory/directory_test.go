package directory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmate/marketplace-api/internal/model"
)

var testVolunteers = []model.VolunteerSummary{
	{ID: "v1", Name: "Ana", Country: "Portugal", Skills: []string{"reception", "tours"}, Experience: "intermediate"},
	{ID: "v2", Name: "Tom", Country: "Germany", Skills: []string{"bar"}, Experience: "experienced"},
	{ID: "v3", Name: "Sofia", Country: "Portugal", Skills: []string{"cooking"}, Experience: "experienced"},
}

func TestQueryMatchesAllSuppliedCriteria(t *testing.T) {
	p := NewSampleProvider(testVolunteers)
	ctx := context.Background()

	results, err := p.Query(ctx, model.SearchCriteria{Country: "Portugal"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = p.Query(ctx, model.SearchCriteria{Country: "Portugal", Experience: "experienced"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "v3", results[0].ID)

	// Skills match on any overlap.
	results, err = p.Query(ctx, model.SearchCriteria{Skills: []string{"tours", "surfing"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "v1", results[0].ID)
}

func TestQueryEmptyCriteriaMatchesEverything(t *testing.T) {
	p := NewSampleProvider(testVolunteers)

	results, err := p.Query(context.Background(), model.SearchCriteria{})
	require.NoError(t, err)
	assert.Len(t, results, len(testVolunteers))
}

func TestQueryNoMatchReturnsEmptySlice(t *testing.T) {
	p := NewSampleProvider(testVolunteers)

	results, err := p.Query(context.Background(), model.SearchCriteria{Country: "Iceland"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestAvailabilityCriterionAlwaysPasses(t *testing.T) {
	p := NewSampleProvider(testVolunteers)

	results, err := p.Query(context.Background(), model.SearchCriteria{Availability: "summer"})
	require.NoError(t, err)
	assert.Len(t, results, len(testVolunteers))
}

// countingProvider records how often the inner index is hit.
type countingProvider struct {
	inner Provider
	calls int
}

func (p *countingProvider) Query(ctx context.Context, c model.SearchCriteria) ([]model.VolunteerSummary, error) {
	p.calls++
	return p.inner.Query(ctx, c)
}

func TestCachedProviderMemoizes(t *testing.T) {
	counting := &countingProvider{inner: NewSampleProvider(testVolunteers)}
	cached := NewCachedProvider(counting, time.Minute)
	ctx := context.Background()

	criteria := model.SearchCriteria{Country: "Portugal", Skills: []string{"tours", "reception"}}

	first, err := cached.Query(ctx, criteria)
	require.NoError(t, err)
	second, err := cached.Query(ctx, criteria)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, counting.calls)

	// Skill order does not defeat the cache key.
	_, err = cached.Query(ctx, model.SearchCriteria{Country: "Portugal", Skills: []string{"reception", "tours"}})
	require.NoError(t, err)
	assert.Equal(t, 1, counting.calls)

	_, err = cached.Query(ctx, model.SearchCriteria{Country: "Germany"})
	require.NoError(t, err)
	assert.Equal(t, 2, counting.calls)
}

func TestDefaultSampleDataset(t *testing.T) {
	p := NewSampleProvider(nil)

	results, err := p.Query(context.Background(), model.SearchCriteria{})
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	for i, v := range results {
		assert.NotEmpty(t, v.ID, fmt.Sprintf("volunteer %d has no id", i))
		assert.NotEmpty(t, v.Name)
	}
}
