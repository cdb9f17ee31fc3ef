package id

import (
	"regexp"

	"github.com/google/uuid"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewLoanID returns a random (v4) UUID in canonical 36-char form.
func NewLoanID() string { return uuid.NewString() }

// IsLoanID reports whether s is a canonical UUID.
func IsLoanID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// IsID32 reports whether s is exactly 32 lowercase hex characters, the
// compact form some clients send as an idempotency key.
func IsID32(s string) bool { return reHex32.MatchString(s) }
