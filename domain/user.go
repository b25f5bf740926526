package domain

// User holds the claims the identity service verified for the current
// request. Users are not persisted by this service.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email" validate:"required,email"`
}
