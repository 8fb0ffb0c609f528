package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
)

const MinPasswordLength = 4

// User is a storefront account. Admins and customers share the table.
type User struct {
	ID           int64
	Email        string
	Name         string
	Phone        string
	Address      string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// NewUser builds an account ensuring required invariants. The password is
// hashed with cost; 0 means bcrypt.DefaultCost.
func NewUser(email, name, password string, cost int) (*User, error) {
	user := &User{}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password, cost); err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) SetEmail(email string) error {
	email = NormalizeEmail(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// UpdateContact sets the optional phone and address.
func (u *User) UpdateContact(phone, address string) {
	u.Phone = strings.TrimSpace(phone)
	u.Address = strings.TrimSpace(address)
}

// SetPassword validates and stores a bcrypt hash.
func (u *User) SetPassword(password string, cost int) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the stored hash with the supplied password.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) PromoteToAdmin() { u.IsAdmin = true }
