// Package cpf validates and formats Brazilian CPF tax ids.
//
// A CPF has 11 digits: nine base digits followed by two check digits, each
// computed modulo 11 over the preceding digits. The ten sequences made of a
// single repeated digit pass the arithmetic but are reserved and rejected.
package cpf

import "strings"

// Length is the number of digits in a normalized CPF.
const Length = 11

// Normalize strips every non-digit rune from s.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid reports whether s, after normalization, is an 11-digit CPF with
// correct check digits that is not a repeated-digit sequence.
func IsValid(s string) bool {
	v := Normalize(s)
	if len(v) != Length || isRepeated(v) {
		return false
	}
	if checkDigit(v[:9], 10) != int(v[9]-'0') {
		return false
	}
	return checkDigit(v[:10], 11) == int(v[10]-'0')
}

// Format masks s progressively as NNN.NNN.NNN-NN. Non-digits are dropped and
// input beyond 11 digits is truncated, so partial input formats as typed.
func Format(s string) string {
	v := Normalize(s)
	if len(v) > Length {
		v = v[:Length]
	}
	switch {
	case len(v) <= 3:
		return v
	case len(v) <= 6:
		return v[:3] + "." + v[3:]
	case len(v) <= 9:
		return v[:3] + "." + v[3:6] + "." + v[6:]
	default:
		return v[:3] + "." + v[3:6] + "." + v[6:9] + "-" + v[9:]
	}
}

func isRepeated(v string) bool {
	return strings.Count(v, v[:1]) == len(v)
}

// checkDigit weights digits from weight down to 2 and reduces (sum*10) mod 11,
// mapping 10 to 0.
func checkDigit(digits string, weight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}
	d := (sum * 10) % 11
	if d == 10 {
		return 0
	}
	return d
}
