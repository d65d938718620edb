package session

import "github.com/milkchain/milkchain/internal/api"

// User is the profile record of the authenticated account.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	County string `json:"county"`
	Status string `json:"status"`
}

func userFromAPI(u api.User) User {
	return User{
		ID:     u.ID,
		Name:   u.Name,
		Phone:  u.Phone,
		Email:  u.Email,
		Role:   Role(u.Role),
		County: u.County,
		Status: u.Status,
	}
}
