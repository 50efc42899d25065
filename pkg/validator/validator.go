package validator

import (
	"fmt"
	"unicode"
)

const (
	minUsernameLength = 1
	maxUsernameLength = 64
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordLength = 72

	errUsernameLengthFmt    = "username must be between %d and %d characters"
	errUsernameCharsFmt     = "username cannot contain whitespace or control characters"
	errPasswordMinLengthFmt = "password must be at least %d characters"
	errPasswordMaxLengthFmt = "password must not exceed %d bytes"
)

// Username checks a username before it is provisioned.
func Username(username string) error {
	n := len([]rune(username))
	if n < minUsernameLength || n > maxUsernameLength {
		return fmt.Errorf(errUsernameLengthFmt, minUsernameLength, maxUsernameLength)
	}

	for _, char := range username {
		if unicode.IsSpace(char) || unicode.IsControl(char) {
			return fmt.Errorf(errUsernameCharsFmt)
		}
	}

	return nil
}

// Password checks a password before it is hashed and stored.
func Password(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}
