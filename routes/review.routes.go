package routes

import (
	"github.com/gin-gonic/gin"

	"hotel-booking-server/handlers"
)

type ReviewRouteHandler struct {
	reviewHandler handlers.ReviewHandler
	auth          *handlers.AuthVerifier
}

func NewReviewRouteHandler(reviewHandler handlers.ReviewHandler, auth *handlers.AuthVerifier) ReviewRouteHandler {
	return ReviewRouteHandler{reviewHandler, auth}
}

func (rc *ReviewRouteHandler) ReviewRoute(rg *gin.RouterGroup) {
	router := rg.Group("")
	router.Use(handlers.ExtractTraceInfoMiddleware())
	router.GET("/reviews", rc.reviewHandler.GetReviews)
	router.POST("/reviews", rc.reviewHandler.CreateReview)
	router.PATCH("/reviews/:id", rc.auth.VerifyToken(), rc.reviewHandler.UpdateReview)
	router.DELETE("/reviews/:id", rc.auth.VerifyToken(), rc.reviewHandler.DeleteReview)
	router.GET("/latest-reviews", rc.reviewHandler.GetLatestReviews)
}
