package domain

import (
	"errors"
	"time"
)

// Enquiry is a lead submitted through the public form. ClaimedBy is nil until
// an employee claims the lead; once set it never changes and the record is
// never deleted.
type Enquiry struct {
	ID             string
	Name           string
	Email          string
	CourseInterest string
	ClaimedBy      *string // employee email; nil while unclaimed
	CreatedAt      time.Time
}

// Validate validates the enquiry for persistence.
func (e *Enquiry) Validate() error {
	if e.Name == "" {
		return errors.New("name is required")
	}
	if e.Email == "" {
		return errors.New("email is required")
	}
	if e.CourseInterest == "" {
		return errors.New("course interest is required")
	}
	return nil
}

// Claimed reports whether the enquiry has been claimed.
func (e *Enquiry) Claimed() bool {
	return e.ClaimedBy != nil
}
