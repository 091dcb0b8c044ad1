package models

import (
	"fmt"
	"strings"
	"time"
)

// User is an identity record stored in the local user list.
// Email is the unique key across all stored users.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
	Avatar       string    `json:"avatar,omitempty"`
}

// Validate checks the record's required fields.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email is required")
	}
	return nil
}

// Merge applies the non-zero fields of partial onto a copy of u and returns it.
// Identity fields (ID, Email, RegisteredAt) never change through Merge.
func (u User) Merge(partial UserPatch) User {
	if partial.Name != nil {
		u.Name = *partial.Name
	}
	if partial.Avatar != nil {
		u.Avatar = *partial.Avatar
	}
	return u
}

// UserPatch carries optional profile fields for updates.
type UserPatch struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// LoginCredentials is the input to a login attempt.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the input to account registration.
type RegisterData struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// AuthResult is the outcome of an auth or profile operation.
// Failures carry a human-readable message instead of an error value so
// presentation code can surface it directly.
type AuthResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// Failure builds a failed AuthResult with the given message.
func Failure(message string) AuthResult {
	return AuthResult{Success: false, Message: message}
}

// Succeeded builds a successful AuthResult for the given user.
func Succeeded(u *User) AuthResult {
	return AuthResult{Success: true, User: u}
}
