package routes

import (
	"github.com/gin-gonic/gin"

	"hotel-booking-server/handlers"
)

type RoomRouteHandler struct {
	roomHandler handlers.RoomHandler
	auth        *handlers.AuthVerifier
}

func NewRoomRouteHandler(roomHandler handlers.RoomHandler, auth *handlers.AuthVerifier) RoomRouteHandler {
	return RoomRouteHandler{roomHandler, auth}
}

func (rc *RoomRouteHandler) RoomRoute(rg *gin.RouterGroup) {
	router := rg.Group("")
	router.Use(handlers.ExtractTraceInfoMiddleware())
	router.GET("/rooms", rc.roomHandler.GetAllRooms)
	router.POST("/rooms", rc.auth.VerifyToken(), rc.roomHandler.CreateRoom)
	// GetRoomByID also dispatches /rooms/myAdded-rooms, the path shares
	// the :id segment
	router.GET("/rooms/:id", rc.roomHandler.GetRoomByID)
	router.DELETE("/rooms/:id", rc.roomHandler.DeleteRoom)
	router.GET("/featured-rooms", rc.roomHandler.GetFeaturedRooms)
}
