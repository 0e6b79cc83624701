package model

import "time"

// Admin represents a catalog administrator account.
type Admin struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns the display name stored on courses owned by this admin.
func (a *Admin) FullName() string {
	return a.FirstName + " " + a.LastName
}

// View returns the safe public projection of the admin. The password hash is
// already excluded from serialization, but responses use this projection so
// the record never leaves the service layer whole.
func (a *Admin) View() AdminView {
	return AdminView{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

// AdminView is the projection of Admin returned by the API.
type AdminView struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterRequest is the payload for admin registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

// LoginRequest is the payload for admin authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login. The same token is also
// set as the adminSessionId http-only cookie.
type LoginResponse struct {
	Token string    `json:"token"`
	Admin AdminView `json:"admin"`
}
