package vitals

import "strconv"

// FormatNumber renders v without trailing zeros, 36.50 -> "36.5", 120 -> "120"
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
