package helpers

import "strings"

// NormalizeEmail lowercases the domain portion of an email address so that
// "Name@EXAMPLE.com" and "Name@example.com" resolve to the same account.
// The local part is left untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
