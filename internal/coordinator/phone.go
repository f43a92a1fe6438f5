package coordinator

import (
	"fmt"
	"strings"
)

// formattedPhoneLength is len("(XXX) XXX-XXXX").
const formattedPhoneLength = 14

// NormalizePhone strips everything but ASCII digits.
func NormalizePhone(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

// FormatPhoneNumber renders partial input progressively as the shopper types:
// fewer than 4 digits are returned as-is, up to 6 become "(XXX) YYY", and
// anything longer becomes "(XXX) XXX-XXXX" truncated to ten digits.
func FormatPhoneNumber(value string) string {
	phone := NormalizePhone(value)
	switch {
	case len(phone) < 4:
		return phone
	case len(phone) < 7:
		return fmt.Sprintf("(%s) %s", phone[:3], phone[3:])
	default:
		return fmt.Sprintf("(%s) %s-%s", phone[:3], phone[3:6], phone[6:min(len(phone), 10)])
	}
}

// CanSubmit reports whether a value produced by FormatPhoneNumber holds a
// complete ten digit number.
func CanSubmit(formatted string) bool {
	return len(formatted) >= formattedPhoneLength
}
