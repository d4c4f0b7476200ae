package models

import (
	"regexp"
	"strings"
)

// Gender represents a participant's gender selection
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
	GenderUnset  Gender = ""
)

// IsValid reports whether the gender is one of the three enumerated values
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Canonical returns the backend's canonical spelling of the gender
func (g Gender) Canonical() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	default:
		return ""
	}
}

// ParseGender normalizes free-form input into a Gender value
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	case "other":
		return GenderOther
	default:
		return GenderUnset
	}
}

// ParticipantSlot is one participant's registration form, one per purchased
// ticket unit. Slots are created empty when the cart is finalized into
// checkout and are identified by position for the session's lifetime.
type ParticipantSlot struct {
	TicketID   int    `json:"ticket_id"`
	TicketName string `json:"ticket_name"`

	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	ConfirmEmail       string `json:"confirm_email"`
	Phone              string `json:"phone"`
	DateOfBirth        string `json:"date_of_birth"`
	Gender             Gender `json:"gender"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Pincode            string `json:"pincode"`
	State              string `json:"state"`
	TShirtSize         string `json:"tshirt_size"`
	BloodGroup         string `json:"blood_group"`
	RunningClub        string `json:"running_club"`
	DisclaimerAccepted string `json:"disclaimer_accepted"` // must be the literal "yes"
}

// FieldError is a single failing field with its display message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an ordered list of failing fields. Order follows the form's
// field order so the first entry is always the first field to address.
type FieldErrors []FieldError

// ByField returns the message for a field, or "" if the field is valid
func (e FieldErrors) ByField(name string) string {
	for _, fe := range e {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

// Has reports whether a specific field is failing
func (e FieldErrors) Has(name string) bool {
	return e.ByField(name) != ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var nonDigitRegex = regexp.MustCompile(`\D`)

// Validate checks every blocking rule and collects all failures in field
// order. It is pure: no network calls, no mutation. An empty result means
// the slot may advance. Address, state, blood group and running club are
// optional and never block.
func (s *ParticipantSlot) Validate() FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(s.FullName) == "" {
		errs = append(errs, FieldError{Field: "full_name", Message: "Full name is required"})
	}

	if s.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	} else if !emailRegex.MatchString(s.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Please enter a valid email address"})
	}

	if s.ConfirmEmail == "" {
		errs = append(errs, FieldError{Field: "confirm_email", Message: "Please confirm your email"})
	} else if s.ConfirmEmail != s.Email {
		errs = append(errs, FieldError{Field: "confirm_email", Message: "Email addresses do not match"})
	}

	if s.Phone == "" {
		errs = append(errs, FieldError{Field: "phone", Message: "Phone number is required"})
	} else if len(nonDigitRegex.ReplaceAllString(s.Phone, "")) != 10 {
		errs = append(errs, FieldError{Field: "phone", Message: "Phone number must be 10 digits"})
	}

	if s.DateOfBirth == "" {
		errs = append(errs, FieldError{Field: "date_of_birth", Message: "Date of birth is required"})
	}

	if !s.Gender.IsValid() {
		errs = append(errs, FieldError{Field: "gender", Message: "Please select a gender"})
	}

	if s.TShirtSize == "" {
		errs = append(errs, FieldError{Field: "tshirt_size", Message: "T-shirt size is required"})
	}

	if s.City == "" {
		errs = append(errs, FieldError{Field: "city", Message: "City is required"})
	}

	if s.Pincode == "" {
		errs = append(errs, FieldError{Field: "pincode", Message: "Pincode is required"})
	}

	if s.DisclaimerAccepted != "yes" {
		errs = append(errs, FieldError{Field: "disclaimer_accepted", Message: "You must accept the disclaimer"})
	}

	return errs
}

// DigitsOnlyPhone returns the phone number stripped of everything except digits
func (s *ParticipantSlot) DigitsOnlyPhone() string {
	return nonDigitRegex.ReplaceAllString(s.Phone, "")
}
