package openlibrary

import (
	"strings"
	"unicode"
)

// maxISBNs bounds how many of a work's edition ISBNs are kept.
const maxISBNs = 20

// normalizeISBN drops an "ISBN" prefix and everything that isn't a digit or X.
func normalizeISBN(value string) string {
	value = strings.TrimSpace(strings.ToUpper(value))
	value = strings.TrimPrefix(value, "ISBN:")
	value = strings.TrimPrefix(value, "ISBN")

	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) || r == 'X' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validISBN checks the ISBN-10 (mod 11) or ISBN-13 (mod 10) checksum.
func validISBN(isbn string) bool {
	switch len(isbn) {
	case 10:
		sum := 0
		for i, r := range isbn {
			d := int(r - '0')
			if r == 'X' {
				if i != 9 {
					return false
				}
				d = 10
			}
			sum += d * (10 - i)
		}
		return sum%11 == 0
	case 13:
		sum := 0
		for i, r := range isbn {
			if r == 'X' {
				return false
			}
			d := int(r - '0')
			if i%2 == 1 {
				d *= 3
			}
			sum += d
		}
		return sum%10 == 0
	}
	return false
}

// cleanISBNs normalizes the ISBNs of a work, dropping invalid ones and
// duplicates. It returns nil when none are left.
func cleanISBNs(values []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range values {
		isbn := normalizeISBN(v)
		if !validISBN(isbn) || seen[isbn] {
			continue
		}
		seen[isbn] = true
		out = append(out, isbn)
		if len(out) == maxISBNs {
			break
		}
	}
	return out
}
