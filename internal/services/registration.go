package services

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"labkit/internal/errors"
	"labkit/internal/logging"
	"labkit/internal/validation"
)

// Registrant is an accepted registration.
type Registrant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`

	PasswordHash []byte `json:"-"`
}

func (r *Registrant) setPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, "Password cannot be used.")
	}
	r.PasswordHash = hash
	return nil
}

// CheckPassword reports whether pwd matches the submitted password.
func (r Registrant) CheckPassword(pwd string) bool {
	return bcrypt.CompareHashAndPassword(r.PasswordHash, []byte(pwd)) == nil
}

// RegistrationResult is returned for a valid submission.
type RegistrationResult struct {
	Registrant Registrant `json:"registrant"`
	Welcome    string     `json:"welcome"`
	Summary    string     `json:"summary"`
}

// Registration validates the sign-up form. It keeps no state.
type Registration struct {
	validator *validation.Validator
}

// NewRegistration creates the form validator.
func NewRegistration() *Registration {
	return &Registration{validator: validation.NewValidator()}
}

// Submit checks every field independently. On success nothing is stored;
// the welcome message and a confirmation summary are returned. The
// password is only kept as a bcrypt hash on the registrant.
func (r *Registration) Submit(in validation.RegistrationInput) (*RegistrationResult, error) {
	if err := validation.ValidateRegistration(in); err != nil {
		return nil, validationFailure(err)
	}

	age, _ := r.validator.ParseWholeNumber(in.Age)
	registrant := Registrant{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Age:   age,
	}
	if err := registrant.setPassword(in.Password); err != nil {
		return nil, err
	}
	logging.Debugf("registration: accepted %s\n", registrant.Email)

	return &RegistrationResult{
		Registrant: registrant,
		Welcome:    fmt.Sprintf("Registration successful! Welcome, %s.", registrant.Name),
		Summary: fmt.Sprintf("Name: %s\nEmail: %s\nAge: %s",
			registrant.Name, registrant.Email, strings.TrimSpace(in.Age)),
	}, nil
}
