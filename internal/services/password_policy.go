package services

import "errors"

var ErrPasswordTooShort = errors.New("password too short")

// DefaultMinPasswordLength is the shipped minimum. Deployments may lower or
// raise it via MIN_PASSWORD_LENGTH.
const DefaultMinPasswordLength = 6

// PasswordPolicy checks length only. Complexity rules are deliberately
// absent: existing accounts carry all-lowercase passwords.
type PasswordPolicy struct {
	MinLength int
}

func NewPasswordPolicy(minLength int) PasswordPolicy {
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	return PasswordPolicy{MinLength: minLength}
}

func (policy PasswordPolicy) Validate(password string) error {
	if len([]rune(password)) < policy.MinLength {
		return ErrPasswordTooShort
	}
	return nil
}
