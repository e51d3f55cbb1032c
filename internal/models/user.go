// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User is a collaborator entity owned by the identity service. Reviews only
// reference it for existence checks and the author join in responses.
type User struct {
	BaseModel
	Username     string   `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	FullName     string   `json:"full_name" gorm:"size:255"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);default:'customer'"`
	Active       bool     `json:"active" gorm:"default:true"`
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
