package dto

// UserDTO is the authenticated user
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
