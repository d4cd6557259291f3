package validator

import "strings"

// IsISBN returns true if a string is a valid ISBN-10 or ISBN-13.
// Hyphens and spaces are ignored before the checksum is verified.
func IsISBN(value string) bool {
	s := normalizeISBN(value)
	switch len(s) {
	case 10:
		return isISBN10(s)
	case 13:
		return isISBN13(s)
	default:
		return false
	}
}

func normalizeISBN(value string) string {
	r := strings.NewReplacer("-", "", " ", "")
	return r.Replace(value)
}

// isISBN10 verifies the weighted mod-11 checksum of a 10 character ISBN.
// The final character may be 'X', standing for the value ten.
func isISBN10(s string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		sum += int(s[i]-'0') * (10 - i)
	}
	switch {
	case s[9] == 'X' || s[9] == 'x':
		sum += 10
	case s[9] >= '0' && s[9] <= '9':
		sum += int(s[9] - '0')
	default:
		return false
	}
	return sum%11 == 0
}

// isISBN13 verifies the alternating 1/3 weighted mod-10 checksum of a
// 13 digit ISBN.
func isISBN13(s string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		digit := int(s[i] - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return sum%10 == 0
}
