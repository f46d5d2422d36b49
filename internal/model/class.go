package model

import (
	"time"

	"github.com/google/uuid"
)

// Class is a group of students the teacher plans sessions for.
type Class struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Level     string    `json:"level"` // e.g. "CM2", "6e"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassForm carries validated input for class mutations.
type ClassForm struct {
	Name  string `json:"name" validate:"required,max=120"`
	Level string `json:"level" validate:"max=40"`
}
