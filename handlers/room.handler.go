package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel-booking-server/domain"
	error2 "hotel-booking-server/error"
	"hotel-booking-server/services"
)

type RoomHandler struct {
	roomService services.RoomService
	auth        *AuthVerifier
	Tracer      trace.Tracer
	logger      *logger.Logger
}

func NewRoomHandler(roomService services.RoomService, auth *AuthVerifier, tr trace.Tracer, log *logger.Logger) RoomHandler {
	return RoomHandler{roomService, auth, tr, log}
}

// GetAllRooms lists rooms, optionally filtered by owner email or by an
// inclusive price range. The range only applies when both bounds are
// present.
func (s *RoomHandler) GetAllRooms(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "RoomHandler.GetAllRooms")
	defer span.End()

	email := c.Query("email")

	minPrice, maxPrice, err := parsePriceRange(c.Query("minPrice"), c.Query("maxPrice"))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rooms, err := s.roomService.GetAllRooms(email, minPrice, maxPrice, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rooms"})
		return
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}

	span.SetStatus(codes.Ok, "Got rooms successfully")
	c.JSON(http.StatusOK, rooms)
}

// parsePriceRange activates the price filter only when both bounds are
// given, rejecting a half-open range.
func parsePriceRange(minStr, maxStr string) (*float64, *float64, error) {
	if minStr == "" && maxStr == "" {
		return nil, nil, nil
	}
	if minStr == "" || maxStr == "" {
		return nil, nil, errors.New("minPrice and maxPrice must be provided together")
	}

	minPrice, err := strconv.ParseFloat(minStr, 64)
	if err != nil {
		return nil, nil, errors.New("failed to parse minPrice")
	}
	maxPrice, err := strconv.ParseFloat(maxStr, 64)
	if err != nil {
		return nil, nil, errors.New("failed to parse maxPrice")
	}
	return &minPrice, &maxPrice, nil
}

// GetRoomByID also serves /rooms/myAdded-rooms, which shares the wildcard
// segment of this route.
func (s *RoomHandler) GetRoomByID(c *gin.Context) {
	roomID := c.Param("id")
	if roomID == "myAdded-rooms" {
		s.GetMyRooms(c)
		return
	}

	spanCtx, span := s.Tracer.Start(c.Request.Context(), "RoomHandler.GetRoomByID")
	defer span.End()

	room, err := s.roomService.GetRoomByID(roomID, spanCtx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			span.SetStatus(codes.Error, "Room not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room id"})
		return
	}

	span.SetStatus(codes.Ok, "Got room successfully")
	c.JSON(http.StatusOK, room)
}

// GetMyRooms lists the rooms owned by the verified caller. The token is
// resolved here rather than by middleware because the route rides on the
// /rooms/:id wildcard.
func (s *RoomHandler) GetMyRooms(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "RoomHandler.GetMyRooms")
	defer span.End()

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		span.SetStatus(codes.Error, "Missing or malformed Authorization header")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
		return
	}

	currentUser, err := s.auth.CurrentUser(authHeader, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, "Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rooms, err := s.roomService.GetRoomsByEmail(currentUser.Email, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rooms"})
		return
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}

	span.SetStatus(codes.Ok, "Got added rooms successfully")
	c.JSON(http.StatusOK, rooms)
}

type createRoomRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Location    string  `json:"location"`
	Guests      int     `json:"guests"`
}

// CreateRoom inserts a room for the verified caller. Submitting someone
// else's email as the owner is rejected before anything is persisted.
func (s *RoomHandler) CreateRoom(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "RoomHandler.CreateRoom")
	defer span.End()

	currentUser, ok := CurrentUserFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createRoomRequest
	if err := c.BindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	if req.Email != currentUser.Email {
		s.logger.WithFields(logger.Fields{"submitted": req.Email, "verified": currentUser.Email}).
			Warn("room owner email does not match verified identity")
		span.SetStatus(codes.Error, "Owner email does not match the verified identity")
		c.JSON(http.StatusForbidden, gin.H{"error": "Owner email does not match the verified identity"})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	room := &domain.Room{
		Name:        req.Name,
		Email:       req.Email,
		Price:       req.Price,
		Available:   available,
		Description: req.Description,
		Image:       req.Image,
		Location:    req.Location,
		Guests:      req.Guests,
	}

	insertedID, err := s.roomService.InsertRoom(room, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	span.SetStatus(codes.Ok, "Room created successfully")
	c.JSON(http.StatusCreated, gin.H{"insertedId": insertedID})
}

// DeleteRoom removes the room and cascades over its reviews and bookings.
// The three deletes run independently, there is no transaction around
// them.
func (s *RoomHandler) DeleteRoom(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "RoomHandler.DeleteRoom")
	defer span.End()
	rw := c.Writer

	roomID := c.Param("id")

	result, err := s.roomService.DeleteRoomCascade(roomID, spanCtx)
	if err != nil {
		s.logger.WithFields(logger.Fields{"roomId": roomID}).Error("cascade delete failed: ", err)
		span.SetStatus(codes.Error, err.Error())
		errorMsg := map[string]string{"error": "Failed to delete room"}
		error2.ReturnJSONError(rw, errorMsg, http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "Room deleted successfully")
	c.JSON(http.StatusOK, result)
}

func (s *RoomHandler) GetFeaturedRooms(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "RoomHandler.GetFeaturedRooms")
	defer span.End()

	featured, err := s.roomService.GetFeaturedRooms(spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get featured rooms"})
		return
	}
	if featured == nil {
		featured = []*domain.FeaturedRoom{}
	}

	span.SetStatus(codes.Ok, "Got featured rooms successfully")
	c.JSON(http.StatusOK, featured)
}
