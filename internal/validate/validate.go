package validate

import (
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

func (e *ErrField) Error() string { return e.Field + ": " + e.Msg }

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// Shares parses a share count typed by the user: ASCII digits only, no sign,
// no spaces, and greater than zero.
func Shares(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Int parses an optionally signed base-10 integer, ignoring surrounding spaces.
func Int(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

// IntParam reads a query parameter, falling back to def when it is missing
// or malformed and clamping it to [min, max].
func IntParam(v string, def, min, max int) int {
	n, err := strconv.Atoi(v)
	if v == "" || err != nil {
		n = def
	}
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n
}
