// Package cli defines the cobra command tree. Commands parse arguments
// and flags, then delegate to the adapters and services from wire.
package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/example/budgetctl/internal/core/fault"
)

// userError converts a service error to its user-facing message. Storage
// details never reach the terminal.
func userError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(fault.Message(err))
}

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("identifiant invalide: %q", arg)
	}
	return id, nil
}

// parseAnnee parses a positional year argument.
func parseAnnee(arg string) (int, error) {
	annee, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("année invalide: %q", arg)
	}
	return annee, nil
}

// parseMontant parses a positional amount argument.
func parseMontant(arg string) (float64, error) {
	montant, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("montant invalide: %q", arg)
	}
	return montant, nil
}
