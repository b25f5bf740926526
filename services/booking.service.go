package services

import (
	"context"
	"time"

	"hotel-booking-server/domain"
)

type BookingService interface {
	ExistingBooking(roomID string, date time.Time, ctx context.Context) (bool, error)
	InsertBooking(booking *domain.Booking, ctx context.Context) (string, error)
	GetBookingsByUser(userEmail string, ctx context.Context) ([]*domain.Booking, error)
	GetBookingByID(bookingID string, ctx context.Context) (*domain.Booking, error)
	HasBooking(roomID, userEmail string, ctx context.Context) (bool, error)
	UpdateBookingDate(bookingID string, date time.Time, ctx context.Context) (int64, error)
	DeleteBooking(bookingID string, ctx context.Context) error
	GetExpiredBookings(before time.Time, ctx context.Context) ([]*domain.Booking, error)
}
