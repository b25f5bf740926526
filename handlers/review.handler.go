package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	logger "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel-booking-server/domain"
	"hotel-booking-server/services"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	validator     *validator.Validate
	Tracer        trace.Tracer
	logger        *logger.Logger
}

func NewReviewHandler(reviewService services.ReviewService, tr trace.Tracer, log *logger.Logger) ReviewHandler {
	return ReviewHandler{reviewService, validator.New(), tr, log}
}

// GetReviews lists the reviews of one room, newest first.
func (s *ReviewHandler) GetReviews(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReviewHandler.GetReviews")
	defer span.End()

	roomID := c.Query("roomId")
	if roomID == "" {
		span.SetStatus(codes.Error, "Missing roomId")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing roomId"})
		return
	}

	reviews, err := s.reviewService.GetReviewsByRoom(roomID, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}

	span.SetStatus(codes.Ok, "Got reviews successfully")
	c.JSON(http.StatusOK, reviews)
}

// CreateReview stores a review as submitted, rating 1 to 5, with a
// server-side timestamp. There is no ownership check at creation.
func (s *ReviewHandler) CreateReview(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReviewHandler.CreateReview")
	defer span.End()

	var review domain.Review
	if err := c.BindJSON(&review); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	if err := s.validator.Struct(&review); err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review must have roomId, a valid userEmail and a rating between 1 and 5"})
		return
	}

	insertedID, err := s.reviewService.InsertReview(&review, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	span.SetStatus(codes.Ok, "Review created successfully")
	c.JSON(http.StatusCreated, gin.H{"insertedId": insertedID})
}

type updateReviewRequest struct {
	Comment *string `json:"comment"`
	Rating  *int    `json:"rating"`
}

// UpdateReview edits a review the caller owns. A zero match hides whether
// the review is missing or owned by someone else, both come back 404.
func (s *ReviewHandler) UpdateReview(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReviewHandler.UpdateReview")
	defer span.End()

	currentUser, ok := CurrentUserFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID := c.Param("id")

	var req updateReviewRequest
	if err := c.BindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	if req.Comment == nil && req.Rating == nil {
		span.SetStatus(codes.Error, "Nothing to update")
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one of comment or rating is required"})
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		span.SetStatus(codes.Error, "Rating out of range")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	matched, err := s.reviewService.UpdateReview(reviewID, currentUser.Email, req.Comment, req.Rating, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update review"})
		return
	}
	if matched == 0 {
		span.SetStatus(codes.Error, "Review not found or not owned")
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	span.SetStatus(codes.Ok, "Review updated successfully")
	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully"})
}

// DeleteReview removes a review the caller owns, with the same combined
// not-found / not-owned 404 as UpdateReview.
func (s *ReviewHandler) DeleteReview(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReviewHandler.DeleteReview")
	defer span.End()

	currentUser, ok := CurrentUserFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID := c.Param("id")

	deleted, err := s.reviewService.DeleteReview(reviewID, currentUser.Email, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to delete review"})
		return
	}
	if deleted == 0 {
		span.SetStatus(codes.Error, "Review not found or not owned")
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	span.SetStatus(codes.Ok, "Review deleted successfully")
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// GetLatestReviews is the homepage feed, every review newest first.
func (s *ReviewHandler) GetLatestReviews(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReviewHandler.GetLatestReviews")
	defer span.End()

	reviews, err := s.reviewService.GetLatestReviews(spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get latest reviews"})
		return
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}

	span.SetStatus(codes.Ok, "Got latest reviews successfully")
	c.JSON(http.StatusOK, reviews)
}
