package user

import "businessconnect/models"

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

type RegisterRequest struct {
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// LoginRequest accepts an email or a username in Email.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Device   string `json:"device"`
	IP       string `json:"ip"`
	Location string `json:"location"`
}

// SessionMeta describes the connection a session is opened from.
type SessionMeta struct {
	IP        string
	UserAgent string
}

// UpdateProfileRequest edits the caller's profile. Nil fields are untouched.
type UpdateProfileRequest struct {
	Name           *string             `json:"name"`
	Username       *string             `json:"username"`
	Email          *string             `json:"email"`
	Phone          *string             `json:"phone"`
	Location       *string             `json:"location"`
	Website        *string             `json:"website"`
	Bio            *string             `json:"bio"`
	ProfilePicture *string             `json:"profilePicture"`
	CoverImage     *string             `json:"coverImage"`
	Preferences    *models.Preferences `json:"preferences"`
}

// AuthResponse is the profile plus the issued token.
type AuthResponse struct {
	*models.User
	Token string `json:"token"`
}

// SessionView is a session as listed to its owner.
type SessionView struct {
	models.Session
	Current bool `json:"current"`
}
