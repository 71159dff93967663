package auth

import "unicode"

const (
	minPasswordLength = 8
	maxPasswordLength = 26
	minLetters        = 2
	minDigits         = 2
	minSpecial        = 1
)

// checkPasswordPolicy enforces the password composition rules and returns the
// first unmet rule: length within [8, 26], at least 2 letters, 2 digits and
// 1 character that is neither.
func checkPasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return validationError("password too short - must be at least 8 characters long")
	}
	if len(password) > maxPasswordLength {
		return validationError("password too long - must be within 26 characters long")
	}

	var letters, digits, special int
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		default:
			special++
		}
	}

	if letters < minLetters {
		return validationError("password must contain at least 2 letters")
	}
	if digits < minDigits {
		return validationError("password must contain at least 2 numbers")
	}
	if special < minSpecial {
		return validationError("password must contain at least 1 special character")
	}
	return nil
}
