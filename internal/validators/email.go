package validators

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmailFormatValid checks the local@domain.tld shape. It does not resolve
// the domain.
func IsEmailFormatValid(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsClockValid accepts zero padded 24h "HH:MM".
func IsClockValid(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h := s[:2]
	m := s[3:]
	return h >= "00" && h <= "23" && m >= "00" && m <= "59" && isNumeric(h) && isNumeric(m)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
