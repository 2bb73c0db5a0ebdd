// Package person holds the demographic fields shared by patients and
// doctors. Both entity kinds embed Person; there is no polymorphic
// dispatch over it anywhere else.
package person

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/platform/apperr"
)

var (
	// Optional leading +, then 7 to 15 digits.
	phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Person is the demographic core of a patient or doctor record. ID is
// assigned at creation and never changes. Identification is the
// externally meaningful code (e.g. national ID) whose uniqueness is
// enforced across patients and doctors jointly.
type Person struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Identification int       `json:"identification"`
	Age            int       `json:"age"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
}

// EntityID implements registry.Entity.
func (p Person) EntityID() uuid.UUID { return p.ID }

// Validate checks the demographic fields. It returns an
// apperr.InvalidArgument describing the first failing field.
func (p Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.InvalidArgument("name must not be blank")
	}
	if p.Identification <= 0 {
		return apperr.InvalidArgument("identification must be a positive number")
	}
	if p.Age <= 0 {
		return apperr.InvalidArgument("age must be a positive number")
	}
	if !phoneRe.MatchString(p.Phone) {
		return apperr.InvalidArgument("phone %q is not a valid phone number", p.Phone)
	}
	if !emailRe.MatchString(p.Email) {
		return apperr.InvalidArgument("email %q is not a valid email address", p.Email)
	}
	return nil
}

// ValidPhone reports whether s is an acceptable phone number: an
// optional leading + followed by 7 to 15 digits.
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }
