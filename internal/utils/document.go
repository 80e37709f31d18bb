// Package utils holds the Brazilian document helpers used across the
// catalog: CPF/CNPJ check digits, input masks and identifier generation.
package utils

import (
	"math/rand/v2"
	"strings"
)

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toInts(s string) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = int(s[i] - '0')
	}
	return out
}

func repeated(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}

func mod11(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}

// GenerateCPF returns a random masked CPF with valid check digits.
func GenerateCPF(rng *rand.Rand) string {
	for {
		d := make([]int, 11)
		for i := 0; i < 9; i++ {
			d[i] = rng.IntN(10)
		}
		d[9] = mod11(d, []int{10, 9, 8, 7, 6, 5, 4, 3, 2})
		d[10] = mod11(d, []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})
		s := joinDigits(d)
		if !repeated(s) {
			return FormatDocument(s)
		}
	}
}

// GenerateCNPJ returns a random masked CNPJ. The branch number is fixed to
// 0001 as for a head office.
func GenerateCNPJ(rng *rand.Rand) string {
	for {
		d := make([]int, 14)
		for i := 0; i < 8; i++ {
			d[i] = rng.IntN(10)
		}
		d[8], d[9], d[10], d[11] = 0, 0, 0, 1
		d[12] = mod11(d, cnpjWeights1)
		d[13] = mod11(d, cnpjWeights2)
		s := joinDigits(d)
		if !repeated(s) {
			return FormatDocument(s)
		}
	}
}

func joinDigits(d []int) string {
	b := make([]byte, len(d))
	for i, v := range d {
		b[i] = byte('0' + v)
	}
	return string(b)
}

// ValidCPF reports whether cpf, masked or not, carries valid check digits.
func ValidCPF(cpf string) bool {
	s := Digits(cpf)
	if len(s) != 11 || repeated(s) {
		return false
	}
	d := toInts(s)
	for n := 9; n <= 10; n++ {
		sum := 0
		for i := 0; i < n; i++ {
			sum += d[i] * (n + 1 - i)
		}
		r := (sum * 10) % 11
		if r == 10 {
			r = 0
		}
		if r != d[n] {
			return false
		}
	}
	return true
}

// ValidCNPJ reports whether cnpj, masked or not, carries valid check digits.
func ValidCNPJ(cnpj string) bool {
	s := Digits(cnpj)
	if len(s) != 14 || repeated(s) {
		return false
	}
	d := toInts(s)
	check := func(weights []int) int {
		sum := 0
		for i, w := range weights {
			sum += d[i] * w
		}
		if sum%11 < 2 {
			return 0
		}
		return 11 - sum%11
	}
	return check(cnpjWeights1) == d[12] && check(cnpjWeights2) == d[13]
}

// ValidDocument accepts either a CPF or a CNPJ, chosen by digit count.
func ValidDocument(doc string) bool {
	switch len(Digits(doc)) {
	case 11:
		return ValidCPF(doc)
	case 14:
		return ValidCNPJ(doc)
	}
	return false
}
