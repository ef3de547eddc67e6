package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 8

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

func HasDigit(p string) bool  { return containsRune(p, unicode.IsDigit) }
func HasAlpha(p string) bool  { return containsRune(p, unicode.IsLetter) }
func HasSymbol(p string) bool { return containsRune(p, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) }

// TooLong reports whether p exceeds what bcrypt can hash.
func TooLong(p string) bool { return len(p) > MaxPasswordBytes }

// StrongPassword reports whether p is long enough and mixes letters, digits
// and at least one non-alphanumeric character.
func StrongPassword(p string) bool {
	return len([]rune(p)) >= MinPasswordLen && HasDigit(p) && HasAlpha(p) && HasSymbol(p)
}

func containsRune(p string, pred func(rune) bool) bool {
	for _, r := range p {
		if pred(r) {
			return true
		}
	}
	return false
}
