package costs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvoy/medvoy-platform/internal/hospitals"
)

func testCatalog() *hospitals.Service {
	return hospitals.NewService(hospitals.NewInMemoryRepository(hospitals.Seed()), nil, nil, nil)
}

func TestEstimateAggregatesBands(t *testing.T) {
	saved := NewInMemoryRepository()
	svc := NewService(testCatalog(), saved, nil)

	est, err := svc.Estimate(context.Background(), EstimateRequest{Procedure: "heart surgery"})
	require.NoError(t, err)

	assert.NotEmpty(t, est.ID)
	assert.Equal(t, "USD", est.Currency)
	assert.Positive(t, est.Facilities)
	assert.Less(t, est.Low, est.High)

	// Tiers appear in budget, mid-range, premium order.
	var lastIdx int
	order := map[string]int{"budget": 0, "mid-range": 1, "premium": 2}
	for i, tier := range est.Tiers {
		idx, ok := order[tier.Tier]
		require.True(t, ok, tier.Tier)
		if i > 0 {
			assert.Greater(t, idx, lastIdx)
		}
		lastIdx = idx
		assert.LessOrEqual(t, tier.Low, tier.High)
	}

	recent, err := saved.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, est.ID, recent[0].ID)
}

func TestEstimateFiltersByCountry(t *testing.T) {
	svc := NewService(testCatalog(), NewInMemoryRepository(), nil)

	est, err := svc.Estimate(context.Background(), EstimateRequest{Procedure: "heart surgery", Country: "Thailand"})
	require.NoError(t, err)
	assert.Equal(t, "Thailand", est.Country)
	assert.Equal(t, 1, est.Facilities)
	assert.Equal(t, 5000, est.Low)
	assert.Equal(t, 50000, est.High)
}

func TestEstimateNoMatches(t *testing.T) {
	svc := NewService(testCatalog(), NewInMemoryRepository(), nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{Procedure: "teleportation"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestEstimateRequiresProcedure(t *testing.T) {
	svc := NewService(testCatalog(), NewInMemoryRepository(), nil)

	_, err := svc.Estimate(context.Background(), EstimateRequest{Procedure: "  "})
	assert.Error(t, err)
}

func TestInMemoryRecentIsNewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	require.NoError(t, repo.Save(context.Background(), &Estimate{ID: "a"}))
	require.NoError(t, repo.Save(context.Background(), &Estimate{ID: "b"}))
	require.NoError(t, repo.Save(context.Background(), &Estimate{ID: "c"}))

	recent, err := repo.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
}
