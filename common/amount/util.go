package amount

import "strings"

// formatFractional left-pads the digits to the fractional width and drops trailing zeros
func formatFractional(str string) string {
	padded := strings.Repeat("0", FractionalCount-len(str)) + str
	return strings.TrimRight(padded, "0")
}

// padFractional right-pads the digits after the point to the fractional width
func padFractional(str string) string {
	return str + strings.Repeat("0", FractionalCount-len(str))
}
