package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"hotel-booking-server/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logger.Logger {
	log := logger.New()
	log.SetOutput(io.Discard)
	return log
}

func testContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, body)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

type stubRoomService struct {
	rooms        []*domain.Room
	room         *domain.Room
	roomErr      error
	inserted     []*domain.Room
	availability map[string]bool
	featured     []*domain.FeaturedRoom
	cascade      *domain.CascadeResult
}

func newStubRoomService() *stubRoomService {
	return &stubRoomService{availability: map[string]bool{}}
}

func (s *stubRoomService) InsertRoom(room *domain.Room, ctx context.Context) (string, error) {
	s.inserted = append(s.inserted, room)
	return "inserted-id", nil
}

func (s *stubRoomService) GetAllRooms(email string, minPrice, maxPrice *float64, ctx context.Context) ([]*domain.Room, error) {
	return s.rooms, nil
}

func (s *stubRoomService) GetRoomByID(roomID string, ctx context.Context) (*domain.Room, error) {
	return s.room, s.roomErr
}

func (s *stubRoomService) GetRoomsByEmail(email string, ctx context.Context) ([]*domain.Room, error) {
	return s.rooms, nil
}

func (s *stubRoomService) GetFeaturedRooms(ctx context.Context) ([]*domain.FeaturedRoom, error) {
	return s.featured, nil
}

func (s *stubRoomService) SetAvailability(roomID string, available bool, ctx context.Context) error {
	s.availability[roomID] = available
	return nil
}

func (s *stubRoomService) DeleteRoomCascade(roomID string, ctx context.Context) (*domain.CascadeResult, error) {
	return s.cascade, nil
}

type stubBookingService struct {
	existing   bool
	hasBooking bool
	booking    *domain.Booking
	bookingErr error
	bookings   []*domain.Booking
	inserted   []*domain.Booking
	deleted    []string
	modified   int64
}

func (s *stubBookingService) ExistingBooking(roomID string, date time.Time, ctx context.Context) (bool, error) {
	return s.existing, nil
}

func (s *stubBookingService) InsertBooking(booking *domain.Booking, ctx context.Context) (string, error) {
	s.inserted = append(s.inserted, booking)
	return "booking-id", nil
}

func (s *stubBookingService) GetBookingsByUser(userEmail string, ctx context.Context) ([]*domain.Booking, error) {
	return s.bookings, nil
}

func (s *stubBookingService) GetBookingByID(bookingID string, ctx context.Context) (*domain.Booking, error) {
	return s.booking, s.bookingErr
}

func (s *stubBookingService) HasBooking(roomID, userEmail string, ctx context.Context) (bool, error) {
	return s.hasBooking, nil
}

func (s *stubBookingService) UpdateBookingDate(bookingID string, date time.Time, ctx context.Context) (int64, error) {
	return s.modified, nil
}

func (s *stubBookingService) DeleteBooking(bookingID string, ctx context.Context) error {
	s.deleted = append(s.deleted, bookingID)
	return nil
}

func (s *stubBookingService) GetExpiredBookings(before time.Time, ctx context.Context) ([]*domain.Booking, error) {
	return s.bookings, nil
}

type stubReviewService struct {
	reviews  []*domain.Review
	inserted []*domain.Review
	matched  int64
	deleted  int64
}

func (s *stubReviewService) GetReviewsByRoom(roomID string, ctx context.Context) ([]*domain.Review, error) {
	return s.reviews, nil
}

func (s *stubReviewService) InsertReview(review *domain.Review, ctx context.Context) (string, error) {
	s.inserted = append(s.inserted, review)
	return "review-id", nil
}

func (s *stubReviewService) UpdateReview(reviewID, userEmail string, comment *string, rating *int, ctx context.Context) (int64, error) {
	return s.matched, nil
}

func (s *stubReviewService) DeleteReview(reviewID, userEmail string, ctx context.Context) (int64, error) {
	return s.deleted, nil
}

func (s *stubReviewService) GetLatestReviews(ctx context.Context) ([]*domain.Review, error) {
	return s.reviews, nil
}

var testTracer = otel.Tracer("handlers-test")
