package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hotel-booking-server/config"
)

func newAuthTestRouter(authURL, apiKey string) (*gin.Engine, *AuthVerifier) {
	cfg := &config.Config{AuthServiceURL: authURL, AuthAPIKey: apiKey}
	verifier := NewAuthVerifier(cfg, testTracer, testLogger())

	router := gin.New()
	router.GET("/probe", verifier.VerifyToken(), func(c *gin.Context) {
		user, _ := CurrentUserFromContext(c)
		c.JSON(http.StatusOK, user)
	})
	return router, verifier
}

func TestVerifyTokenMissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter("http://auth.invalid", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyTokenMalformedHeader(t *testing.T) {
	router, _ := newAuthTestRouter("http://auth.invalid", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "token-without-scheme")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyTokenRejectedByIdentityService(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer authServer.Close()

	router, _ := newAuthTestRouter(authServer.URL, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyTokenAttachesVerifiedUser(t *testing.T) {
	var gotAuth, gotKey string
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":"u1","username":"guest","email":"guest@example.com"}}`))
	}))
	defer authServer.Close()

	router, _ := newAuthTestRouter(authServer.URL, "bundle-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "guest@example.com")
	assert.Equal(t, "Bearer good-token", gotAuth)
	assert.Equal(t, "bundle-secret", gotKey)
}

func TestVerifyTokenUnreachableIdentityService(t *testing.T) {
	router, _ := newAuthTestRouter("http://127.0.0.1:1", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer any-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
