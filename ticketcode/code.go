package ticketcode

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const byteLength = 4

var format = regexp.MustCompile(`^[0-9A-F]{8}$`)

// Generate returns an 8 character uppercase hex code. Codes are not checked
// for uniqueness here; the tickets table has a unique constraint on code.
func Generate() (string, error) {
	b := make([]byte, byteLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	return strings.ToUpper(hex.EncodeToString(b)), nil
}

func Valid(code string) bool {
	return format.MatchString(code)
}
