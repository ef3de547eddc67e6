package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongPassword(t *testing.T) {
	testTable := []struct {
		name     string
		password string
		expect   bool
	}{
		{name: "digits letters symbols", password: "abc123!@", expect: true},
		{name: "missing symbol", password: "abc12345", expect: false},
		{name: "missing digit", password: "abcdef!@", expect: false},
		{name: "missing letter", password: "123456!@", expect: false},
		{name: "too short", password: "ab1!", expect: false},
		{name: "space counts as symbol", password: "abc 1234", expect: true},
		{name: "empty", password: "", expect: false},
		{name: "longer than bcrypt input", password: strings.Repeat("a", 70) + "1!x", expect: true},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expect, StrongPassword(testCase.password))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, HasDigit("a1"))
	assert.False(t, HasDigit("ab"))
	assert.True(t, HasAlpha("1é"))
	assert.False(t, HasAlpha("12"))
	assert.True(t, HasSymbol("a#"))
	assert.False(t, HasSymbol("a1"))
}

func TestTooLong(t *testing.T) {
	testTable := []struct {
		name     string
		password string
		expect   bool
	}{
		{name: "short", password: "abc123!@", expect: false},
		{name: "exactly 72 bytes", password: strings.Repeat("a", 70) + "1!", expect: false},
		{name: "73 bytes", password: strings.Repeat("a", 70) + "1!x", expect: true},
		{name: "multibyte counted in bytes", password: strings.Repeat("é", 36) + "1", expect: true},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expect, TooLong(testCase.password))
			if !testCase.expect {
				_, err := HashPassword(testCase.password)
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("abc123!@")
	require.NoError(t, err)
	assert.NotEqual(t, "abc123!@", hash)
	assert.NoError(t, VerifyPassword("abc123!@", hash))
	assert.Error(t, VerifyPassword("abc123!#", hash))
}
