package model

import "time"

// Course represents a catalog course owned by a single admin. The (Title,
// CreatedBy) pair is unique, enforced by a database index.
type Course struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	OwnerName   string    `json:"owner_name"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCourseRequest is the multipart form payload for course creation.
// The cover image arrives as a separate file field (coverImg) and is handled
// outside binding. Price stays a numeric string end to end.
type CreateCourseRequest struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description" binding:"required"`
	Price       string `form:"price" binding:"required,numeric"`
}

// UpdateCourseRequest carries a partial course update. Nil fields are left
// untouched; an explicitly supplied empty string is written as-is.
type UpdateCourseRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty"`
	Price       *string `json:"price" binding:"omitempty,numeric"`
}
