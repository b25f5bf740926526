package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel-booking-server/domain"
)

type ReviewServiceImpl struct {
	reviews *mongo.Collection
	ctx     context.Context
	Tracer  trace.Tracer
}

func NewReviewServiceImpl(reviews *mongo.Collection, ctx context.Context, tr trace.Tracer) ReviewService {
	return &ReviewServiceImpl{reviews, ctx, tr}
}

func (s *ReviewServiceImpl) GetReviewsByRoom(roomID string, ctx context.Context) ([]*domain.Review, error) {
	ctx, span := s.Tracer.Start(ctx, "ReviewService.GetReviewsByRoom")
	defer span.End()

	cursor, err := s.reviews.Find(ctx,
		bson.M{"roomId": roomID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*domain.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return reviews, nil
}

// InsertReview stamps the timestamp server-side, whatever the client sent
// for it is ignored.
func (s *ReviewServiceImpl) InsertReview(review *domain.Review, ctx context.Context) (string, error) {
	ctx, span := s.Tracer.Start(ctx, "ReviewService.InsertReview")
	defer span.End()

	review.Timestamp = primitive.NewDateTimeFromTime(time.Now())

	result, err := s.reviews.InsertOne(ctx, review)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return insertedID.Hex(), nil
}

// UpdateReview sets comment and/or rating on the review, but only when it
// is owned by userEmail. The returned count is zero both when the review
// does not exist and when it belongs to someone else, the two cases are
// not told apart.
func (s *ReviewServiceImpl) UpdateReview(reviewID, userEmail string, comment *string, rating *int, ctx context.Context) (int64, error) {
	ctx, span := s.Tracer.Start(ctx, "ReviewService.UpdateReview")
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	set := bson.M{}
	if comment != nil {
		set["comment"] = *comment
	}
	if rating != nil {
		set["rating"] = *rating
	}

	result, err := s.reviews.UpdateOne(ctx,
		bson.M{"_id": objID, "userEmail": userEmail},
		bson.M{"$set": set})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *ReviewServiceImpl) DeleteReview(reviewID, userEmail string, ctx context.Context) (int64, error) {
	ctx, span := s.Tracer.Start(ctx, "ReviewService.DeleteReview")
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	result, err := s.reviews.DeleteOne(ctx, bson.M{"_id": objID, "userEmail": userEmail})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return result.DeletedCount, nil
}

func (s *ReviewServiceImpl) GetLatestReviews(ctx context.Context) ([]*domain.Review, error) {
	ctx, span := s.Tracer.Start(ctx, "ReviewService.GetLatestReviews")
	defer span.End()

	cursor, err := s.reviews.Find(ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*domain.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return reviews, nil
}
