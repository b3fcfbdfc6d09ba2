// utils/phone.go
package utils

import "regexp"

var nonDigits = regexp.MustCompile(`\D`)

// DigitsOnly strips everything but digits from a phone number; both
// providers want the bare digits on the wire.
func DigitsOnly(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}
