package dto

// UserCreate represents the data needed to register a new user.
type UserCreate struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password,omitempty"`
}

// UserLogin represents a username/password pair presented at login.
type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}
