// Package cpf validates Brazilian CPF numbers (the two trailing check
// digits of an 11-digit identifier, weighted-sum mod 11).
package cpf

// Valid reports whether s is a well-formed CPF. Formatting punctuation
// (dots, dash, spaces) is ignored; only the digits count.
func Valid(s string) bool {
	digits := make([]int, 0, 11)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) != 11 {
		return false
	}

	// Sequences like 000.000.000-00 or 111.111.111-11 satisfy the checksum
	// but are known-invalid.
	same := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}

	if checkDigit(digits[:9], 10) != digits[9] {
		return false
	}
	return checkDigit(digits[:10], 11) == digits[10]
}

// checkDigit computes a verification digit over digits, weighting from
// firstWeight down to 2.
func checkDigit(digits []int, firstWeight int) int {
	sum := 0
	for i, d := range digits {
		sum += d * (firstWeight - i)
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}
