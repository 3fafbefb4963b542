package domain

import (
	"net/mail"
	"strings"
	"time"
)

type Customer struct {
	ID        CustomerID
	Email     Email
	CreatedAt time.Time
}

func NewCustomer(email Email) Customer {
	return Customer{
		ID:        NewCustomerID(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// Email is a normalised (trimmed, lowercased) email address.
type Email string

// ParseEmail accepts a bare address only; display names are rejected.
func ParseEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@"):], ".") {
		return "", ErrInvalidEmail
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }
