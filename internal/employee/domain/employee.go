package domain

import (
	"errors"
	"time"
)

// Employee is an identity record created on registration. Immutable after
// creation; never deleted by any exposed operation.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Validate validates the employee for persistence. Returns an error describing
// the first validation failure.
func (e *Employee) Validate() error {
	if e.Name == "" {
		return errors.New("name is required")
	}
	if e.Email == "" {
		return errors.New("email is required")
	}
	if e.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}
