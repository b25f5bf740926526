package routes

import (
	"github.com/gin-gonic/gin"

	"hotel-booking-server/handlers"
)

type BookingRouteHandler struct {
	bookingHandler handlers.BookingHandler
	auth           *handlers.AuthVerifier
}

func NewBookingRouteHandler(bookingHandler handlers.BookingHandler, auth *handlers.AuthVerifier) BookingRouteHandler {
	return BookingRouteHandler{bookingHandler, auth}
}

func (rc *BookingRouteHandler) BookingRoute(rg *gin.RouterGroup) {
	router := rg.Group("")
	router.Use(handlers.ExtractTraceInfoMiddleware())
	router.POST("/book-room", rc.bookingHandler.BookRoom)
	router.GET("/my-bookings", rc.auth.VerifyToken(), rc.bookingHandler.GetMyBookings)
	router.GET("/my-booking", rc.bookingHandler.CheckBooking)
	router.GET("/already-booking", rc.bookingHandler.CheckBooking)
	router.PATCH("/update-booking/:id", rc.bookingHandler.UpdateBooking)
	router.DELETE("/cancel-booking/:id", rc.bookingHandler.CancelBooking)
}
