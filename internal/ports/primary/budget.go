// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the CLI calls, and their DTOs.
package primary

import "context"

// BudgetService defines the primary port for budget operations.
type BudgetService interface {
	// CreateBudget creates a new budget envelope for a (year, nature).
	CreateBudget(ctx context.Context, req CreateBudgetRequest) (*Budget, error)

	// GetBudget retrieves a budget by id.
	GetBudget(ctx context.Context, id int64) (*Budget, error)

	// GetBudgetByAnneeNature retrieves the budget for a (year, nature).
	GetBudgetByAnneeNature(ctx context.Context, annee int, nature string) (*Budget, error)

	// ListBudgets lists budgets with optional filters.
	ListBudgets(ctx context.Context, filters BudgetFilters) ([]*Budget, error)

	// UpdateBudget updates the allocation and descriptive fields of a
	// budget. Consumed and available amounts follow from validated BCs
	// and cannot be set directly.
	UpdateBudget(ctx context.Context, req UpdateBudgetRequest) (*Budget, error)

	// DeleteBudget deletes a budget. Validated BCs always block the
	// delete; draft BCs block it unless force is set, in which case
	// they are removed with the budget.
	DeleteBudget(ctx context.Context, id int64, force bool) (*DeleteBudgetResult, error)

	// RecomputeBudget rebuilds a budget's consumed/available amounts
	// from its validated BCs.
	RecomputeBudget(ctx context.Context, id int64) (*Budget, error)

	// CarryOver copies each nature's remaining available amount into
	// the target year's initial allocation, skipping natures that
	// already have a budget there. A zero toAnnee means the year after
	// fromAnnee.
	CarryOver(ctx context.Context, fromAnnee, toAnnee int) (*CarryOverResult, error)

	// Statistics aggregates the year's budgets and BCs per nature.
	Statistics(ctx context.Context, annee int) (*BudgetStatistics, error)
}

// Budget represents a budget envelope in the primary port layer.
type Budget struct {
	ID                int64
	Annee             int
	Nature            string
	MontantInitial    float64
	MontantConsomme   float64
	MontantDisponible float64
	ServiceDemandeur  string
}

// CreateBudgetRequest contains the data needed to create a budget.
type CreateBudgetRequest struct {
	Annee            int
	Nature           string
	MontantInitial   float64
	ServiceDemandeur string
}

// UpdateBudgetRequest contains the data to update on a budget. Nil
// fields keep their current value.
type UpdateBudgetRequest struct {
	ID               int64
	MontantInitial   *float64
	ServiceDemandeur *string
}

// BudgetFilters contains filter options for listing budgets.
type BudgetFilters struct {
	Annee  int
	Nature string
}

// DeleteBudgetResult captures the outcome of a budget delete.
type DeleteBudgetResult struct {
	DraftBCsDeleted int
}

// CarryOverResult captures the outcome of a year-end carry-over.
type CarryOverResult struct {
	FromAnnee int
	ToAnnee   int
	Created   []*Budget
	Skipped   []string // natures already budgeted in the target year
}

// BudgetStatistics aggregates a year's budgets and BC activity.
type BudgetStatistics struct {
	Annee            int
	TotalInitial     float64
	TotalConsomme    float64
	TotalDisponible  float64
	ParNature        []*NatureStatistics
	BCsValides       int
	BCsEnAttente     int
	MontantEnAttente float64
}

// NatureStatistics is the per-nature slice of BudgetStatistics.
type NatureStatistics struct {
	Nature            string
	MontantInitial    float64
	MontantConsomme   float64
	MontantDisponible float64
	BCsValides        int
	BCsEnAttente      int
}
