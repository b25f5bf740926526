package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotel-booking-server/domain"
)

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, 8, 10, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), startOfDay(at))
}

func TestNextMidnight(t *testing.T) {
	at := time.Date(2026, 8, 10, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC), nextMidnight(at))
}

type sweepBookingService struct {
	expired []*domain.Booking
	deleted []string
}

func (s *sweepBookingService) ExistingBooking(roomID string, date time.Time, ctx context.Context) (bool, error) {
	return false, nil
}

func (s *sweepBookingService) InsertBooking(booking *domain.Booking, ctx context.Context) (string, error) {
	return "", nil
}

func (s *sweepBookingService) GetBookingsByUser(userEmail string, ctx context.Context) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *sweepBookingService) GetBookingByID(bookingID string, ctx context.Context) (*domain.Booking, error) {
	return nil, nil
}

func (s *sweepBookingService) HasBooking(roomID, userEmail string, ctx context.Context) (bool, error) {
	return false, nil
}

func (s *sweepBookingService) UpdateBookingDate(bookingID string, date time.Time, ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *sweepBookingService) DeleteBooking(bookingID string, ctx context.Context) error {
	s.deleted = append(s.deleted, bookingID)
	return nil
}

func (s *sweepBookingService) GetExpiredBookings(before time.Time, ctx context.Context) ([]*domain.Booking, error) {
	return s.expired, nil
}

type sweepRoomService struct {
	availability map[string]bool
}

func (s *sweepRoomService) InsertRoom(room *domain.Room, ctx context.Context) (string, error) {
	return "", nil
}

func (s *sweepRoomService) GetAllRooms(email string, minPrice, maxPrice *float64, ctx context.Context) ([]*domain.Room, error) {
	return nil, nil
}

func (s *sweepRoomService) GetRoomByID(roomID string, ctx context.Context) (*domain.Room, error) {
	return nil, nil
}

func (s *sweepRoomService) GetRoomsByEmail(email string, ctx context.Context) ([]*domain.Room, error) {
	return nil, nil
}

func (s *sweepRoomService) GetFeaturedRooms(ctx context.Context) ([]*domain.FeaturedRoom, error) {
	return nil, nil
}

func (s *sweepRoomService) SetAvailability(roomID string, available bool, ctx context.Context) error {
	s.availability[roomID] = available
	return nil
}

func (s *sweepRoomService) DeleteRoomCascade(roomID string, ctx context.Context) (*domain.CascadeResult, error) {
	return nil, nil
}

func TestSweepDeletesExpiredAndFreesRooms(t *testing.T) {
	log := logger.New()
	log.SetOutput(io.Discard)

	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	bookingSvc := &sweepBookingService{expired: []*domain.Booking{
		{ID: first, RoomID: "room-1"},
		{ID: second, RoomID: "room-2"},
	}}
	roomSvc := &sweepRoomService{availability: map[string]bool{}}

	sweepExpiredBookings(bookingSvc, roomSvc, log)

	assert.Equal(t, []string{first.Hex(), second.Hex()}, bookingSvc.deleted)
	assert.Equal(t, map[string]bool{"room-1": true, "room-2": true}, roomSvc.availability)
}

func TestSweepWithNothingExpired(t *testing.T) {
	log := logger.New()
	log.SetOutput(io.Discard)

	bookingSvc := &sweepBookingService{}
	roomSvc := &sweepRoomService{availability: map[string]bool{}}

	sweepExpiredBookings(bookingSvc, roomSvc, log)

	assert.Empty(t, bookingSvc.deleted)
	assert.Empty(t, roomSvc.availability)
}
