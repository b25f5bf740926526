package services

import (
	"context"

	"hotel-booking-server/domain"
)

type ReviewService interface {
	GetReviewsByRoom(roomID string, ctx context.Context) ([]*domain.Review, error)
	InsertReview(review *domain.Review, ctx context.Context) (string, error)
	UpdateReview(reviewID, userEmail string, comment *string, rating *int, ctx context.Context) (int64, error)
	DeleteReview(reviewID, userEmail string, ctx context.Context) (int64, error)
	GetLatestReviews(ctx context.Context) ([]*domain.Review, error)
}
