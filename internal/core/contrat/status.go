// Package contrat contains the pure business logic for contract status
// and expiry. This is part of the Functional Core - no I/O, only pure
// functions.
package contrat

import "time"

// Statut values. Actif and Expiré are derived from date_fin at read
// time; Résilié is an explicit, sticky cancellation.
const (
	StatutActif   = "Actif"
	StatutExpire  = "Expiré"
	StatutResilie = "Résilié"
)

// Statuts is the accepted domain of contract statuses.
var Statuts = []string{StatutActif, StatutExpire, StatutResilie}

// ExpiryWindow is the default alert horizon for expiring contracts.
const ExpiryWindowMonths = 6

// ComputeStatut derives the status of a contract. Résilié wins over
// everything; otherwise a past date_fin means Expiré, else Actif.
// A zero dateFin never expires.
func ComputeStatut(resilie bool, dateFin, today time.Time) string {
	if resilie {
		return StatutResilie
	}
	if !dateFin.IsZero() && dateFin.Before(truncateDay(today)) {
		return StatutExpire
	}
	return StatutActif
}

// ExpiresWithin reports whether an active contract's end date falls
// inside the alert window of thresholdMonths from today. Contracts
// already expired or without an end date are not "expiring".
func ExpiresWithin(resilie bool, dateFin, today time.Time, thresholdMonths int) bool {
	if ComputeStatut(resilie, dateFin, today) != StatutActif {
		return false
	}
	if dateFin.IsZero() {
		return false
	}
	horizon := truncateDay(today).AddDate(0, thresholdMonths, 0)
	return !dateFin.After(horizon)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
