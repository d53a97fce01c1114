package parser

// ICAO 9303 check digit: weighted sum modulo 10 with weights cycling 7,3,1.
// Digits count as their value, A-Z as 10-35, filler as 0.

var checkWeights = [3]int{7, 3, 1}

func charValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		// filler and anything unrecognized
		return 0
	}
}

// CheckDigit computes the check digit for a field as an ASCII digit.
func CheckDigit(field string) byte {
	sum := 0
	for i := 0; i < len(field); i++ {
		sum += charValue(field[i]) * checkWeights[i%3]
	}
	return byte('0' + sum%10)
}

// checkMatches reports whether the embedded check digit equals the
// recomputed one for the field.
func checkMatches(field string, embedded byte) bool {
	return CheckDigit(field) == embedded
}
