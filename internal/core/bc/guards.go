package bc

import "fmt"

// Types is the accepted domain of bon de commande types.
var Types = []string{"Assistance", "Formation", "Prestation", "Matériel", "Licences"}

// StateContext provides the state needed to evaluate lifecycle guards
// on a bon de commande. Populated by the caller from the stored row.
type StateContext struct {
	Numero string
	Valide bool
}

// ValidationContext provides the amounts needed to evaluate whether a
// draft BC can be validated against its budget.
type ValidationContext struct {
	Numero            string
	Valide            bool
	Montant           float64
	MontantDisponible float64
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanUpdate evaluates whether a BC can be modified.
// Rule: a validated BC is immutable.
func CanUpdate(ctx StateContext) GuardResult {
	if ctx.Valide {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Impossible de modifier le BC %s: un BC validé est immuable", ctx.Numero),
		}
	}
	return GuardResult{Allowed: true}
}

// CanDelete evaluates whether a BC can be deleted.
// Rule: a validated BC cannot be deleted, only reversed by a separate
// audited process.
func CanDelete(ctx StateContext) GuardResult {
	if ctx.Valide {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Impossible de supprimer le BC %s: un BC validé ne peut pas être supprimé", ctx.Numero),
		}
	}
	return GuardResult{Allowed: true}
}

// CanValidate evaluates whether a draft BC can be validated against its
// budget. Rules: validation is one-shot, and the amount must fit inside
// the budget's available balance.
func CanValidate(ctx ValidationContext) GuardResult {
	if ctx.Valide {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Le BC %s est déjà validé", ctx.Numero),
		}
	}
	if ctx.Montant > ctx.MontantDisponible {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("Budget insuffisant pour valider le BC %s: montant %.2f € > disponible %.2f €",
				ctx.Numero, ctx.Montant, ctx.MontantDisponible),
		}
	}
	return GuardResult{Allowed: true}
}
