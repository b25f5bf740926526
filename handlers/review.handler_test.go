package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking-server/domain"
)

func TestGetReviewsRequiresRoomID(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{}, testTracer, testLogger())

	c, w := testContext(http.MethodGet, "/reviews", nil)
	h.GetReviews(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReviewValidatesRating(t *testing.T) {
	svc := &stubReviewService{}
	h := NewReviewHandler(svc, testTracer, testLogger())

	body := `{"roomId":"abc","userEmail":"me@example.com","rating":6,"comment":"great"}`
	c, w := testContext(http.MethodPost, "/reviews", strings.NewReader(body))

	h.CreateReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.inserted)
}

func TestCreateReviewInserts(t *testing.T) {
	svc := &stubReviewService{}
	h := NewReviewHandler(svc, testTracer, testLogger())

	body := `{"roomId":"abc","userEmail":"me@example.com","rating":4,"comment":"great"}`
	c, w := testContext(http.MethodPost, "/reviews", strings.NewReader(body))

	h.CreateReview(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.inserted, 1)
	assert.Equal(t, 4, svc.inserted[0].Rating)
}

func TestUpdateReviewRequiresCommentOrRating(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{matched: 1}, testTracer, testLogger())

	c, w := testContext(http.MethodPatch, "/reviews/abc", strings.NewReader(`{}`))
	c.Params = []gin.Param{{Key: "id", Value: "abc"}}
	c.Set(currentUserKey, &domain.User{Email: "me@example.com"})

	h.UpdateReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateReviewRejectsOutOfRangeRating(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{matched: 1}, testTracer, testLogger())

	c, w := testContext(http.MethodPatch, "/reviews/abc", strings.NewReader(`{"rating":0}`))
	c.Params = []gin.Param{{Key: "id", Value: "abc"}}
	c.Set(currentUserKey, &domain.User{Email: "me@example.com"})

	h.UpdateReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// an update that matches nothing comes back 404 whether the review is
// missing or owned by someone else
func TestUpdateReviewNotOwnedIsNotFound(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{matched: 0}, testTracer, testLogger())

	c, w := testContext(http.MethodPatch, "/reviews/abc", strings.NewReader(`{"rating":3}`))
	c.Params = []gin.Param{{Key: "id", Value: "abc"}}
	c.Set(currentUserKey, &domain.User{Email: "me@example.com"})

	h.UpdateReview(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReviewSucceeds(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{matched: 1}, testTracer, testLogger())

	c, w := testContext(http.MethodPatch, "/reviews/abc", strings.NewReader(`{"comment":"updated"}`))
	c.Params = []gin.Param{{Key: "id", Value: "abc"}}
	c.Set(currentUserKey, &domain.User{Email: "me@example.com"})

	h.UpdateReview(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteReviewNotOwnedIsNotFound(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{deleted: 0}, testTracer, testLogger())

	c, w := testContext(http.MethodDelete, "/reviews/abc", nil)
	c.Params = []gin.Param{{Key: "id", Value: "abc"}}
	c.Set(currentUserKey, &domain.User{Email: "me@example.com"})

	h.DeleteReview(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReviewSucceeds(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{deleted: 1}, testTracer, testLogger())

	c, w := testContext(http.MethodDelete, "/reviews/abc", nil)
	c.Params = []gin.Param{{Key: "id", Value: "abc"}}
	c.Set(currentUserKey, &domain.User{Email: "me@example.com"})

	h.DeleteReview(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
