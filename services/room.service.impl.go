package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel-booking-server/domain"
)

const featuredRoomLimit = 6

type RoomServiceImpl struct {
	rooms    *mongo.Collection
	bookings *mongo.Collection
	reviews  *mongo.Collection
	ctx      context.Context
	Tracer   trace.Tracer
}

func NewRoomServiceImpl(rooms, bookings, reviews *mongo.Collection, ctx context.Context, tr trace.Tracer) RoomService {
	return &RoomServiceImpl{rooms, bookings, reviews, ctx, tr}
}

func (s *RoomServiceImpl) InsertRoom(room *domain.Room, ctx context.Context) (string, error) {
	ctx, span := s.Tracer.Start(ctx, "RoomService.InsertRoom")
	defer span.End()

	result, err := s.rooms.InsertOne(ctx, room)
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

func (s *RoomServiceImpl) GetAllRooms(email string, minPrice, maxPrice *float64, ctx context.Context) ([]*domain.Room, error) {
	ctx, span := s.Tracer.Start(ctx, "RoomService.GetAllRooms")
	defer span.End()

	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	if minPrice != nil && maxPrice != nil {
		filter["price"] = bson.M{"$gte": *minPrice, "$lte": *maxPrice}
	}

	cursor, err := s.rooms.Find(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []*domain.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rooms, nil
}

func (s *RoomServiceImpl) GetRoomByID(roomID string, ctx context.Context) (*domain.Room, error) {
	ctx, span := s.Tracer.Start(ctx, "RoomService.GetRoomByID")
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(roomID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var room domain.Room
	err = s.rooms.FindOne(ctx, bson.M{"_id": objID}).Decode(&room)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &room, nil
}

func (s *RoomServiceImpl) GetRoomsByEmail(email string, ctx context.Context) ([]*domain.Room, error) {
	ctx, span := s.Tracer.Start(ctx, "RoomService.GetRoomsByEmail")
	defer span.End()

	cursor, err := s.rooms.Find(ctx, bson.M{"email": email})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []*domain.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rooms, nil
}

// GetFeaturedRooms groups reviews by room, takes the six best average
// ratings, merges in rooms that have no reviews yet, sorts and truncates.
// Recomputed on every request, no caching.
func (s *RoomServiceImpl) GetFeaturedRooms(ctx context.Context) ([]*domain.FeaturedRoom, error) {
	ctx, span := s.Tracer.Start(ctx, "RoomService.GetFeaturedRooms")
	defer span.End()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$roomId"},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "reviewCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "averageRating", Value: -1},
			{Key: "reviewCount", Value: -1},
		}}},
		bson.D{{Key: "$limit", Value: featuredRoomLimit}},
	}

	cursor, err := s.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var topReviewed []struct {
		RoomID        string  `bson:"_id"`
		AverageRating float64 `bson:"averageRating"`
		ReviewCount   int     `bson:"reviewCount"`
	}
	if err := cursor.All(ctx, &topReviewed); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	reviewedIDs := make([]primitive.ObjectID, 0, len(topReviewed))
	ratingByID := make(map[string]struct {
		rating float64
		count  int
	})
	for _, r := range topReviewed {
		objID, err := primitive.ObjectIDFromHex(r.RoomID)
		if err != nil {
			// reviews can reference ids that were never rooms, skip them
			continue
		}
		reviewedIDs = append(reviewedIDs, objID)
		ratingByID[r.RoomID] = struct {
			rating float64
			count  int
		}{r.AverageRating, r.ReviewCount}
	}

	var reviewed []*domain.FeaturedRoom
	if len(reviewedIDs) > 0 {
		roomCursor, err := s.rooms.Find(ctx, bson.M{"_id": bson.M{"$in": reviewedIDs}})
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		defer roomCursor.Close(ctx)

		var rooms []*domain.Room
		if err := roomCursor.All(ctx, &rooms); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		for _, room := range rooms {
			stats := ratingByID[room.ID.Hex()]
			reviewed = append(reviewed, &domain.FeaturedRoom{
				Room:          *room,
				AverageRating: stats.rating,
				ReviewCount:   stats.count,
			})
		}
	}

	fallbackCursor, err := s.rooms.Find(ctx,
		bson.M{"_id": bson.M{"$nin": reviewedIDs}},
		options.Find().SetLimit(featuredRoomLimit))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer fallbackCursor.Close(ctx)

	var fallbackRooms []*domain.Room
	if err := fallbackCursor.All(ctx, &fallbackRooms); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var fallback []*domain.FeaturedRoom
	for _, room := range fallbackRooms {
		fallback = append(fallback, &domain.FeaturedRoom{Room: *room})
	}

	return mergeFeatured(reviewed, fallback), nil
}

// mergeFeatured concatenates the rated and unrated rooms, sorts
// non-increasing by (averageRating, reviewCount) and keeps the top six.
func mergeFeatured(reviewed, fallback []*domain.FeaturedRoom) []*domain.FeaturedRoom {
	merged := make([]*domain.FeaturedRoom, 0, len(reviewed)+len(fallback))
	merged = append(merged, reviewed...)
	merged = append(merged, fallback...)

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].AverageRating != merged[j].AverageRating {
			return merged[i].AverageRating > merged[j].AverageRating
		}
		return merged[i].ReviewCount > merged[j].ReviewCount
	})

	if len(merged) > featuredRoomLimit {
		merged = merged[:featuredRoomLimit]
	}
	return merged
}

func (s *RoomServiceImpl) SetAvailability(roomID string, available bool, ctx context.Context) error {
	ctx, span := s.Tracer.Start(ctx, "RoomService.SetAvailability")
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(roomID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_, err = s.rooms.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"available": available}})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// DeleteRoomCascade removes the room and every review and booking that
// references it. The three deletes are independent operations, a fault
// partway through leaves the remaining children in place.
func (s *RoomServiceImpl) DeleteRoomCascade(roomID string, ctx context.Context) (*domain.CascadeResult, error) {
	ctx, span := s.Tracer.Start(ctx, "RoomService.DeleteRoomCascade")
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(roomID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	roomResult, err := s.rooms.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	reviewResult, err := s.reviews.DeleteMany(ctx, bson.M{"roomId": roomID})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	bookingResult, err := s.bookings.DeleteMany(ctx, bson.M{"roomId": roomID})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &domain.CascadeResult{
		DeletedRoom:     roomResult.DeletedCount,
		DeletedReviews:  reviewResult.DeletedCount,
		DeletedBookings: bookingResult.DeletedCount,
	}, nil
}
