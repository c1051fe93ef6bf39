package account

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// RegisterRequest payload.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email"    example:"asha@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
	Name     string `json:"name"     example:"Asha Rao"`
	Phone    string `json:"phone"`
}

// LoginRequest payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
