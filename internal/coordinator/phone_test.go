package coordinator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"5", "5"},
		{"555", "555"},
		{"5551", "(555) 1"},
		{"555123", "(555) 123"},
		{"5551234", "(555) 123-4"},
		{"5551234567", "(555) 123-4567"},
		{"555-123-4567", "(555) 123-4567"},
		{"(555) 123-45678", "(555) 123-4567"},
		{"+1 abc", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.in))
		})
	}
}

func TestFormatPhoneNumber_TenDigitsMatchPattern(t *testing.T) {
	pattern := regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
	for _, digits := range []string{"0000000000", "5551234567", "9998887777", "1234567890"} {
		assert.Regexp(t, pattern, FormatPhoneNumber(digits))
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("(555) 123-4567"))
	assert.Equal(t, "", NormalizePhone("phone"))
	assert.Equal(t, "15551234567", NormalizePhone("+1 555.123.4567"))
}

func TestCanSubmit(t *testing.T) {
	assert.True(t, CanSubmit(FormatPhoneNumber("5551234567")))
	assert.False(t, CanSubmit(FormatPhoneNumber("555123456")))
	assert.False(t, CanSubmit(""))
}
