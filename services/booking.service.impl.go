package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel-booking-server/domain"
)

type BookingServiceImpl struct {
	bookings *mongo.Collection
	ctx      context.Context
	Tracer   trace.Tracer
}

func NewBookingServiceImpl(bookings *mongo.Collection, ctx context.Context, tr trace.Tracer) BookingService {
	return &BookingServiceImpl{bookings, ctx, tr}
}

// ExistingBooking reports whether a booking already holds this room for
// this date. The (roomId, date) pair is the conflict key, a room can be
// booked again for a different date. The check and the later insert are
// not atomic, concurrent requests can still slip through.
func (s *BookingServiceImpl) ExistingBooking(roomID string, date time.Time, ctx context.Context) (bool, error) {
	ctx, span := s.Tracer.Start(ctx, "BookingService.ExistingBooking")
	defer span.End()

	filter := bson.M{
		"roomId": roomID,
		"date":   primitive.NewDateTimeFromTime(date),
	}

	err := s.bookings.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return true, nil
}

func (s *BookingServiceImpl) InsertBooking(booking *domain.Booking, ctx context.Context) (string, error) {
	ctx, span := s.Tracer.Start(ctx, "BookingService.InsertBooking")
	defer span.End()

	result, err := s.bookings.InsertOne(ctx, booking)
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

func (s *BookingServiceImpl) GetBookingsByUser(userEmail string, ctx context.Context) ([]*domain.Booking, error) {
	ctx, span := s.Tracer.Start(ctx, "BookingService.GetBookingsByUser")
	defer span.End()

	cursor, err := s.bookings.Find(ctx, bson.M{"userEmail": userEmail})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*domain.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return bookings, nil
}

func (s *BookingServiceImpl) GetBookingByID(bookingID string, ctx context.Context) (*domain.Booking, error) {
	ctx, span := s.Tracer.Start(ctx, "BookingService.GetBookingByID")
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var booking domain.Booking
	err = s.bookings.FindOne(ctx, bson.M{"_id": objID}).Decode(&booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &booking, nil
}

func (s *BookingServiceImpl) HasBooking(roomID, userEmail string, ctx context.Context) (bool, error) {
	ctx, span := s.Tracer.Start(ctx, "BookingService.HasBooking")
	defer span.End()

	filter := bson.M{"roomId": roomID}
	if userEmail != "" {
		filter["userEmail"] = userEmail
	}

	err := s.bookings.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return true, nil
}

func (s *BookingServiceImpl) UpdateBookingDate(bookingID string, date time.Time, ctx context.Context) (int64, error) {
	ctx, span := s.Tracer.Start(ctx, "BookingService.UpdateBookingDate")
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	result, err := s.bookings.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"date": primitive.NewDateTimeFromTime(date)}})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *BookingServiceImpl) DeleteBooking(bookingID string, ctx context.Context) error {
	ctx, span := s.Tracer.Start(ctx, "BookingService.DeleteBooking")
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_, err = s.bookings.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// GetExpiredBookings returns every booking dated strictly before the
// given instant, used by the daily expiry sweep.
func (s *BookingServiceImpl) GetExpiredBookings(before time.Time, ctx context.Context) ([]*domain.Booking, error) {
	ctx, span := s.Tracer.Start(ctx, "BookingService.GetExpiredBookings")
	defer span.End()

	filter := bson.M{"date": bson.M{"$lt": primitive.NewDateTimeFromTime(before)}}

	cursor, err := s.bookings.Find(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*domain.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return bookings, nil
}
