package utils

import "github.com/google/uuid"

// FormatDocument masks an 11-digit CPF as 000.000.000-00 and a 14-digit
// CNPJ as 00.000.000/0000-00. Anything else is returned unchanged.
func FormatDocument(doc string) string {
	s := Digits(doc)
	switch len(s) {
	case 11:
		return s[:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:]
	case 14:
		return s[:2] + "." + s[2:5] + "." + s[5:8] + "/" + s[8:12] + "-" + s[12:]
	}
	return doc
}

// FormatCEP masks an 8-digit postal code as 00000-000.
func FormatCEP(cep string) string {
	s := Digits(cep)
	if len(s) != 8 {
		return cep
	}
	return s[:5] + "-" + s[5:]
}

// FormatPhone masks a 10-digit landline as (00) 0000-0000 and an 11-digit
// mobile number as (00) 00000-0000.
func FormatPhone(phone string) string {
	s := Digits(phone)
	switch len(s) {
	case 10:
		return "(" + s[:2] + ") " + s[2:6] + "-" + s[6:]
	case 11:
		return "(" + s[:2] + ") " + s[2:7] + "-" + s[7:]
	}
	return phone
}

// NewID returns a new random identifier.
func NewID() string { return uuid.New().String() }

// ShortID returns the first eight characters of id, for log lines.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
