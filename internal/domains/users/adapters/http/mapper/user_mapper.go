package mapper

import (
	"time"

	userdomain "github.com/Apurer/henri-storefront/internal/domains/users/domain"
	userports "github.com/Apurer/henri-storefront/internal/domains/users/ports"
)

// User is the transport-level account payload. The hash never leaves the service.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email" form:"email"`
	Name      string    `json:"name" form:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterPayload is the signup body.
type RegisterPayload struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Name     string `json:"name" form:"name" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
}

// Credentials is the login body shared by customers and admins.
type Credentials struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func ToRegisterInput(payload RegisterPayload) userports.RegisterInput {
	return userports.RegisterInput{
		Email:    payload.Email,
		Name:     payload.Name,
		Password: payload.Password,
		Phone:    payload.Phone,
		Address:  payload.Address,
	}
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Address:   user.Address,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
