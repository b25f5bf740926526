package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotel-booking-server/domain"
)

func featured(name string, rating float64, count int) *domain.FeaturedRoom {
	return &domain.FeaturedRoom{
		Room:          domain.Room{ID: primitive.NewObjectID(), Name: name},
		AverageRating: rating,
		ReviewCount:   count,
	}
}

func TestMergeFeaturedSortsByRatingThenCount(t *testing.T) {
	reviewed := []*domain.FeaturedRoom{
		featured("mid", 3.0, 1),
		featured("top", 4.6666, 3),
	}
	fallback := []*domain.FeaturedRoom{
		featured("unrated", 0, 0),
	}

	merged := mergeFeatured(reviewed, fallback)

	assert.Len(t, merged, 3)
	assert.Equal(t, "top", merged[0].Name)
	assert.Equal(t, "mid", merged[1].Name)
	assert.Equal(t, "unrated", merged[2].Name)
}

func TestMergeFeaturedBreaksTiesByReviewCount(t *testing.T) {
	merged := mergeFeatured([]*domain.FeaturedRoom{
		featured("few", 4.0, 2),
		featured("many", 4.0, 9),
	}, nil)

	assert.Equal(t, "many", merged[0].Name)
	assert.Equal(t, "few", merged[1].Name)
}

func TestMergeFeaturedTruncatesToSix(t *testing.T) {
	var reviewed []*domain.FeaturedRoom
	for i := 0; i < 5; i++ {
		reviewed = append(reviewed, featured("rated", 5.0, i+1))
	}
	var fallback []*domain.FeaturedRoom
	for i := 0; i < 6; i++ {
		fallback = append(fallback, featured("unrated", 0, 0))
	}

	merged := mergeFeatured(reviewed, fallback)

	assert.Len(t, merged, 6)
	for i := 1; i < len(merged); i++ {
		prev, cur := merged[i-1], merged[i]
		if prev.AverageRating == cur.AverageRating {
			assert.GreaterOrEqual(t, prev.ReviewCount, cur.ReviewCount)
		} else {
			assert.Greater(t, prev.AverageRating, cur.AverageRating)
		}
	}
}

func TestMergeFeaturedEmptyInputs(t *testing.T) {
	assert.Empty(t, mergeFeatured(nil, nil))
}
