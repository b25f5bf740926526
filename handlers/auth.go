package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"hotel-booking-server/config"
	"hotel-booking-server/domain"
)

const currentUserKey = "currentUser"

// AuthVerifier checks bearer tokens against the external identity
// service. Every verification failure, whatever its cause, comes back as
// a uniform 401.
type AuthVerifier struct {
	cfg            *config.Config
	Tracer         trace.Tracer
	CircuitBreaker *gobreaker.CircuitBreaker
	logger         *logger.Logger
}

func NewAuthVerifier(cfg *config.Config, tr trace.Tracer, log *logger.Logger) *AuthVerifier {
	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "AuthServiceRequest",
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			fmt.Printf("Circuit Breaker state changed from %s to %s\n", from, to)
		},
	})
	return &AuthVerifier{
		cfg:            cfg,
		Tracer:         tr,
		CircuitBreaker: circuitBreaker,
		logger:         log,
	}
}

// VerifyToken gates a route behind the identity service. On success the
// verified user lands on the gin context for the ownership checks
// downstream.
func (a *AuthVerifier) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		spanCtx, span := a.Tracer.Start(c.Request.Context(), "AuthVerifier.VerifyToken")
		defer span.End()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			span.SetStatus(codes.Error, "Missing or malformed Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}

		currentUser, err := a.CurrentUser(authHeader, spanCtx)
		if err != nil {
			a.logger.WithFields(logger.Fields{"path": c.FullPath()}).Error("token verification failed: ", err)
			span.SetStatus(codes.Error, "Unauthorized")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		span.SetStatus(codes.Ok, "Token verified")
		c.Set(currentUserKey, currentUser)
		c.Next()
	}
}

// CurrentUser resolves the bearer token to the verified claims by asking
// the identity service.
func (a *AuthVerifier) CurrentUser(token string, ctx context.Context) (*domain.User, error) {
	spanCtx, span := a.Tracer.Start(ctx, "AuthVerifier.CurrentUser")
	defer span.End()

	url := a.cfg.AuthServiceURL + "/currentUser"

	timeout := 5 * time.Second
	ctxx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := a.performAuthorizationRequestWithCircuitBreaker(spanCtx, token, url)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			span.SetStatus(codes.Error, "Circuit is open. Auth service is not available.")
			return nil, errors.New("auth service is not available")
		}
		if ctxx.Err() == context.DeadlineExceeded {
			span.SetStatus(codes.Error, "Auth service is not available.")
			return nil, errors.New("auth service is not available")
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, "Unauthorized")
		return nil, errors.New("unauthorized")
	}

	var userResponse struct {
		User domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userResponse); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "Got current user from auth service")
	return &userResponse.User, nil
}

func (a *AuthVerifier) performAuthorizationRequestWithCircuitBreaker(ctx context.Context, token string, url string) (*http.Response, error) {
	result, err := a.CircuitBreaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequest("GET", url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", token)
		if a.cfg.AuthAPIKey != "" {
			req.Header.Set("X-Api-Key", a.cfg.AuthAPIKey)
		}
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

		client := &http.Client{}
		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, errors.New("unexpected response type from Circuit Breaker")
	}
	return resp, nil
}

// CurrentUserFromContext pulls the user VerifyToken attached earlier.
func CurrentUserFromContext(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}

func ExtractTraceInfoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
