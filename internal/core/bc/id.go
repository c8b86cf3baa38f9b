// Package bc contains the pure business logic for bon de commande
// operations. This is part of the Functional Core - no I/O, only pure
// functions.
package bc

import "fmt"

// Numero formats a bon de commande number as a business rule.
// The format is BC-YYYY-NNNN where NNNN is a zero-padded per-year sequence.
func Numero(annee, sequence int) string {
	return fmt.Sprintf("BC-%04d-%04d", annee, sequence)
}

// ParseNumero extracts the year and sequence from a BC number.
// Returns ok=false if the format is invalid.
func ParseNumero(numero string) (annee, sequence int, ok bool) {
	n, err := fmt.Sscanf(numero, "BC-%d-%d", &annee, &sequence)
	if err != nil || n != 2 {
		return 0, 0, false
	}
	return annee, sequence, true
}

// NextNumero generates the number following lastNumero for the given
// year. An empty or foreign-year lastNumero starts the year at 0001.
func NextNumero(annee int, lastNumero string) string {
	lastYear, lastSeq, ok := ParseNumero(lastNumero)
	if !ok || lastYear != annee {
		return Numero(annee, 1)
	}
	return Numero(annee, lastSeq+1)
}
