package budget

import "fmt"

// DeleteContext provides context for budget deletion guards.
// Populated by the caller with pre-fetched dependency counts.
type DeleteContext struct {
	Annee             int
	Nature            string
	ValidatedBCs      int
	DraftBCs          int
	ForceDeleteDrafts bool
}

// CreateContext provides context for budget creation guards.
type CreateContext struct {
	Annee         int
	Nature        string
	AlreadyExists bool
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

// CanCreate evaluates whether a budget can be created.
// Rule: one budget per (annee, nature).
func CanCreate(ctx CreateContext) GuardResult {
	if ctx.AlreadyExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Un budget existe déjà pour %d / %s", ctx.Annee, ctx.Nature),
		}
	}
	return GuardResult{Allowed: true}
}

// CanDelete evaluates whether a budget can be deleted.
// Rule: a budget carrying validated BCs is part of the ledger history
// and cannot be removed.
func CanDelete(ctx DeleteContext) GuardResult {
	if ctx.ValidatedBCs > 0 {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("Impossible de supprimer le budget %d / %s: %d BC validé(s) y sont imputés",
				ctx.Annee, ctx.Nature, ctx.ValidatedBCs),
		}
	}
	if ctx.DraftBCs > 0 && !ctx.ForceDeleteDrafts {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("Impossible de supprimer le budget %d / %s: %d BC en brouillon y sont rattachés (utilisez --force pour les supprimer)",
				ctx.Annee, ctx.Nature, ctx.DraftBCs),
		}
	}
	return GuardResult{Allowed: true}
}
