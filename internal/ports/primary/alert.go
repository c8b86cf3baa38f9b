package primary

import "context"

// AlertService defines the primary port for the consolidated alert view.
type AlertService interface {
	// Alerts gathers everything needing attention: contracts expiring
	// within the threshold, depleted budgets for the current year, and
	// draft BCs waiting for validation.
	Alerts(ctx context.Context, req AlertRequest) (*AlertReport, error)
}

// AlertRequest parameterizes the alert sweep. Zero values fall back to
// the configured defaults.
type AlertRequest struct {
	ThresholdMonths int
	Annee           int
}

// AlertReport is the consolidated result of an alert sweep.
type AlertReport struct {
	ContratsExpirants []*ContratAlert
	BudgetsEpuises    []*BudgetAlert
	BCsEnAttente      []*BonCommande
}

// ContratAlert is one expiring contract with the days remaining.
type ContratAlert struct {
	Contrat       *Contrat
	JoursRestants int
	ClientNom     string
}

// BudgetAlert is one budget whose available amount fell under the
// depletion ratio.
type BudgetAlert struct {
	Budget          *Budget
	RatioDisponible float64 // disponible / initial, 0 when initial is 0
}
