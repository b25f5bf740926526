package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel-booking-server/domain"
	error2 "hotel-booking-server/error"
	"hotel-booking-server/services"
)

type BookingHandler struct {
	bookingService services.BookingService
	roomService    services.RoomService
	Tracer         trace.Tracer
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, roomService services.RoomService, tr trace.Tracer, log *logger.Logger) BookingHandler {
	return BookingHandler{bookingService, roomService, tr, log}
}

// BookRoom creates a booking unless one already exists for the same room
// and date, then flips the room unavailable. Extra fields in the payload
// are stored with the booking untouched.
func (s *BookingHandler) BookRoom(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "BookingHandler.BookRoom")
	defer span.End()
	rw := c.Writer

	var body map[string]interface{}
	if err := c.BindJSON(&body); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON request"})
		return
	}

	roomID, _ := body["roomId"].(string)
	userEmail, _ := body["userEmail"].(string)
	dateStr, _ := body["date"].(string)
	if roomID == "" || userEmail == "" || dateStr == "" {
		span.SetStatus(codes.Error, "Missing roomId, userEmail or date")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing roomId, userEmail or date"})
		return
	}

	date, err := parseBookingDate(dateStr)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}

	exists, err := s.bookingService.ExistingBooking(roomID, date, spanCtx)
	if err != nil {
		s.logger.WithFields(logger.Fields{"roomId": roomID}).Error("conflict check failed: ", err)
		span.SetStatus(codes.Error, err.Error())
		errorMsg := map[string]string{"error": "Failed to check existing bookings"}
		error2.ReturnJSONError(rw, errorMsg, http.StatusInternalServerError)
		return
	}
	if exists {
		span.SetStatus(codes.Error, "Room already booked for this date")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Room already booked for this date."})
		return
	}

	delete(body, "roomId")
	delete(body, "userEmail")
	delete(body, "date")

	booking := &domain.Booking{
		RoomID:           roomID,
		UserEmail:        userEmail,
		Date:             primitive.NewDateTimeFromTime(date),
		ConfirmationCode: uuid.New().String(),
		Extra:            body,
	}

	bookingID, err := s.bookingService.InsertBooking(booking, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to book room"})
		return
	}

	if err := s.roomService.SetAvailability(roomID, false, spanCtx); err != nil {
		// booking is already stored, only the flag flip failed
		s.logger.WithFields(logger.Fields{"roomId": roomID}).Error("failed to flip availability: ", err)
	}

	span.SetStatus(codes.Ok, "Room booked successfully")
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Room booked successfully.",
		"bookingId":        bookingID,
		"confirmationCode": booking.ConfirmationCode,
	})
}

// parseBookingDate accepts the formats the site sends, full timestamps or
// bare dates.
func parseBookingDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// GetMyBookings lists the caller's bookings. The requested email must
// match the verified identity.
func (s *BookingHandler) GetMyBookings(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "BookingHandler.GetMyBookings")
	defer span.End()

	currentUser, ok := CurrentUserFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userEmail := c.Query("userEmail")
	if userEmail == "" {
		span.SetStatus(codes.Error, "Missing userEmail")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing userEmail"})
		return
	}
	if userEmail != currentUser.Email {
		span.SetStatus(codes.Error, "Requested email does not match the verified identity")
		c.JSON(http.StatusForbidden, gin.H{"error": "Requested email does not match the verified identity"})
		return
	}

	bookings, err := s.bookingService.GetBookingsByUser(userEmail, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bookings"})
		return
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}

	span.SetStatus(codes.Ok, "Got bookings successfully")
	c.JSON(http.StatusOK, bookings)
}

// CheckBooking reports whether a booking exists for the room, optionally
// narrowed to one user. Served on both /my-booking and /already-booking.
func (s *BookingHandler) CheckBooking(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "BookingHandler.CheckBooking")
	defer span.End()

	roomID := c.Query("roomId")
	if roomID == "" {
		span.SetStatus(codes.Error, "Missing roomId")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing roomId"})
		return
	}
	userEmail := c.Query("userEmail")

	booked, err := s.bookingService.HasBooking(roomID, userEmail, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check booking"})
		return
	}

	span.SetStatus(codes.Ok, "Checked booking successfully")
	c.JSON(http.StatusOK, gin.H{"alreadyBooked": booked})
}

// UpdateBooking sets a new date on the booking and reports whether
// anything was modified.
func (s *BookingHandler) UpdateBooking(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "BookingHandler.UpdateBooking")
	defer span.End()

	bookingID := c.Param("id")

	var requestBody struct {
		Date string `json:"date"`
	}
	if err := c.BindJSON(&requestBody); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON request"})
		return
	}

	date, err := parseBookingDate(requestBody.Date)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}

	modified, err := s.bookingService.UpdateBookingDate(bookingID, date, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update booking"})
		return
	}

	if modified > 0 {
		span.SetStatus(codes.Ok, "Booking date updated successfully")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking date updated successfully."})
		return
	}
	span.SetStatus(codes.Ok, "No changes made")
	c.JSON(http.StatusOK, gin.H{"success": false, "message": "No changes made or booking not found."})
}

// CancelBooking deletes a booking when cancellation is still open, one
// full day before the booked date, and makes the room available again.
func (s *BookingHandler) CancelBooking(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "BookingHandler.CancelBooking")
	defer span.End()

	bookingID := c.Param("id")

	booking, err := s.bookingService.GetBookingByID(bookingID, spanCtx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			span.SetStatus(codes.Error, "Booking not found")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found."})
			return
		}
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking id"})
		return
	}

	if !canStillCancel(booking.Date.Time(), time.Now()) {
		span.SetStatus(codes.Error, "Cancellation window has closed")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cancellation window has closed."})
		return
	}

	if err := s.bookingService.DeleteBooking(bookingID, spanCtx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel booking"})
		return
	}

	if err := s.roomService.SetAvailability(booking.RoomID, true, spanCtx); err != nil {
		s.logger.WithFields(logger.Fields{"roomId": booking.RoomID}).Error("failed to flip availability: ", err)
	}

	span.SetStatus(codes.Ok, "Booking cancelled successfully")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled successfully."})
}

// canStillCancel requires now to be strictly before one day ahead of the
// booked date.
func canStillCancel(bookingDate, now time.Time) bool {
	deadline := bookingDate.AddDate(0, 0, -1)
	return now.Before(deadline)
}
