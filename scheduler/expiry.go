package scheduler

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"hotel-booking-server/services"
)

// StartExpirySweep deletes bookings dated before the current day, once
// at the next midnight and every 24 hours after. Each expired booking is
// removed and its room flipped back to available; failures are logged
// and left for the next run.
func StartExpirySweep(bookingService services.BookingService, roomService services.RoomService, log *logger.Logger) {
	go func() {
		timer := time.NewTimer(time.Until(nextMidnight(time.Now())))
		defer timer.Stop()
		<-timer.C

		sweepExpiredBookings(bookingService, roomService, log)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			sweepExpiredBookings(bookingService, roomService, log)
		}
	}()
}

func sweepExpiredBookings(bookingService services.BookingService, roomService services.RoomService, log *logger.Logger) {
	ctx := context.Background()
	startOfDay := startOfDay(time.Now())

	expired, err := bookingService.GetExpiredBookings(startOfDay, ctx)
	if err != nil {
		log.WithFields(logger.Fields{"path": "scheduler/expiry"}).Error("failed to list expired bookings: ", err)
		return
	}

	removed := 0
	for _, booking := range expired {
		if err := bookingService.DeleteBooking(booking.ID.Hex(), ctx); err != nil {
			log.WithFields(logger.Fields{"bookingId": booking.ID.Hex()}).Error("failed to delete expired booking: ", err)
			continue
		}
		if err := roomService.SetAvailability(booking.RoomID, true, ctx); err != nil {
			log.WithFields(logger.Fields{"roomId": booking.RoomID}).Error("failed to flip availability: ", err)
		}
		removed++
	}

	log.WithFields(logger.Fields{"expired": len(expired), "removed": removed}).Info("expiry sweep completed")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func nextMidnight(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1)
}
