// Package budget contains the pure business logic for budget envelopes.
// This is part of the Functional Core - no I/O, only pure functions.
package budget

// Natures is the accepted domain of budget natures.
var Natures = []string{"Fonctionnement", "Investissement"}

// Available computes the available amount of a budget from first
// principles: allocation minus the sum of validated BC amounts.
func Available(montantInitial, montantConsomme float64) float64 {
	return montantInitial - montantConsomme
}

// CarryOverSource describes one source-year budget considered for
// carry-over into the next year.
type CarryOverSource struct {
	Nature            string
	MontantDisponible float64
	ServiceDemandeur  string
	ExistsInTarget    bool
}

// CarryOverEntry is one budget to create in the target year.
type CarryOverEntry struct {
	Nature           string
	MontantInitial   float64
	ServiceDemandeur string
}

// PlanCarryOver decides which target-year budgets to create from the
// source year. Natures already present in the target year are skipped;
// the unspent balance becomes the new allocation.
func PlanCarryOver(sources []CarryOverSource) []CarryOverEntry {
	var entries []CarryOverEntry
	for _, src := range sources {
		if src.ExistsInTarget {
			continue
		}
		entries = append(entries, CarryOverEntry{
			Nature:           src.Nature,
			MontantInitial:   src.MontantDisponible,
			ServiceDemandeur: src.ServiceDemandeur,
		})
	}
	return entries
}
