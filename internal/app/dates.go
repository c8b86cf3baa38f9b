// Package app contains the application services: use-case orchestration
// over the repository ports, with validation as the gate in front of
// every write.
package app

import (
	"time"

	"github.com/example/budgetctl/internal/core/fault"
)

// dateLayout is the storage format for calendar dates.
const dateLayout = "2006-01-02"

// parseDate parses an optional calendar date. Empty input yields a zero
// time without error.
func parseDate(value, fieldName string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fault.New(fault.KindValidation, "Date invalide pour '%s' (format attendu: AAAA-MM-JJ)", fieldName)
	}
	return t, nil
}
