package models

import "time"

// Role constants as stored on user rows and inside JWT claims.
const (
	RoleAdmin   = "ROLE_ADMIN"
	RoleTeacher = "ROLE_TEACHER"
	RoleStudent = "ROLE_STUDENT"
)

// User represents an account in the portal's user directory.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
