package models

import "time"

// Role is a user's platform role.
type Role string

const (
	RoleUser          Role = "user"
	RoleBusinessOwner Role = "business_owner"
	RoleAdmin         Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleBusinessOwner, RoleAdmin:
		return true
	}
	return false
}

// Session is one signed-in device. Only the hash of the token is stored.
type Session struct {
	ID         string    `bson:"id" json:"id"`
	Device     string    `bson:"device" json:"device"`
	IP         string    `bson:"ip" json:"ip"`
	Location   string    `bson:"location" json:"location"`
	LastActive time.Time `bson:"lastActive" json:"lastActive"`
	TokenHash  string    `bson:"tokenHash" json:"-"`
}

type NotificationPreferences struct {
	Email bool `bson:"email" json:"email"`
	Push  bool `bson:"push" json:"push"`
	SMS   bool `bson:"sms" json:"sms"`
}

type Preferences struct {
	Theme         string                  `bson:"theme" json:"theme" validate:"omitempty,oneof=light dark system"`
	Notifications NotificationPreferences `bson:"notifications" json:"notifications"`
}

// DefaultPreferences are applied at registration.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "system",
		Notifications: NotificationPreferences{Email: true},
	}
}

type User struct {
	ID             string      `bson:"id" json:"id"`
	Name           string      `bson:"name" json:"name" validate:"required"`
	Username       string      `bson:"username,omitempty" json:"username,omitempty" validate:"omitempty,username"`
	Email          string      `bson:"email" json:"email" validate:"required,email"`
	PasswordHash   string      `bson:"passwordHash" json:"-"`
	Phone          string      `bson:"phone" json:"phone"`
	Role           Role        `bson:"role" json:"role" validate:"required,oneof=user business_owner admin"`
	ProfilePicture string      `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CoverImage     string      `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Location       string      `bson:"location" json:"location"`
	Website        string      `bson:"website" json:"website"`
	Bio            string      `bson:"bio" json:"bio"`
	Preferences    Preferences `bson:"preferences" json:"preferences"`
	Sessions       []Session   `bson:"sessions" json:"-"`
	CreatedAt      time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// FindSession returns the index of the session with the given id, or -1.
func (u *User) FindSession(sessionID string) int {
	for i, s := range u.Sessions {
		if s.ID == sessionID {
			return i
		}
	}
	return -1
}
