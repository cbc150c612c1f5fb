package models

import "github.com/dmitrijs2005/polymap/internal/cpf"

// Account is a registered user's credentials plus the polygons they own.
//
// TaxID is the account's unique key. Password holds the stored secret, which
// is either an argon2id encoding produced by cryptox or a legacy plaintext
// value. Logged marks the account holding the active session; at most one
// account in the store has it set.
type Account struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	TaxID    string    `json:"cpf"`
	Password string    `json:"password"`
	Logged   bool      `json:"logged"`
	Polygons []Polygon `json:"polygons,omitempty"`
}

// Clone returns a deep copy of a so callers can mutate it without touching
// the original slices.
func (a Account) Clone() Account {
	out := a
	if a.Polygons != nil {
		out.Polygons = make([]Polygon, len(a.Polygons))
		for i, p := range a.Polygons {
			out.Polygons[i] = p.Clone()
		}
	}
	return out
}

// SameTaxID reports whether the two ids denote the same CPF once punctuation
// is ignored.
func SameTaxID(a, b string) bool {
	na, nb := cpf.Normalize(a), cpf.Normalize(b)
	return na != "" && na == nb
}

// IndexByTaxID returns the index of the account with the given tax id, or -1.
func IndexByTaxID(accounts []Account, taxID string) int {
	for i := range accounts {
		if SameTaxID(accounts[i].TaxID, taxID) {
			return i
		}
	}
	return -1
}

// CloneAll deep-copies a slice of accounts.
func CloneAll(accounts []Account) []Account {
	out := make([]Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}
