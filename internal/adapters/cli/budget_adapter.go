// Package cli provides thin CLI adapters that translate between CLI
// concerns and application services. Adapters handle output formatting
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/budgetctl/internal/ports/primary"
)

// BudgetAdapter is a thin adapter that translates CLI operations to
// BudgetService calls. It depends only on the BudgetService interface,
// enabling easy testing with mocks.
type BudgetAdapter struct {
	service primary.BudgetService
	out     io.Writer
}

// NewBudgetAdapter creates a new BudgetAdapter with the given service.
func NewBudgetAdapter(service primary.BudgetService, out io.Writer) *BudgetAdapter {
	return &BudgetAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new budget envelope.
func (a *BudgetAdapter) Create(ctx context.Context, annee int, nature string, montant float64, serviceDemandeur string) error {
	budget, err := a.service.CreateBudget(ctx, primary.CreateBudgetRequest{
		Annee:            annee,
		Nature:           nature,
		MontantInitial:   montant,
		ServiceDemandeur: serviceDemandeur,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Budget %s %d créé : dotation %.2f €\n", budget.Nature, budget.Annee, budget.MontantInitial)
	return nil
}

// List lists budgets with optional year and nature filters.
func (a *BudgetAdapter) List(ctx context.Context, annee int, nature string) error {
	budgets, err := a.service.ListBudgets(ctx, primary.BudgetFilters{
		Annee:  annee,
		Nature: nature,
	})
	if err != nil {
		return err
	}

	if len(budgets) == 0 {
		fmt.Fprintln(a.out, "Aucun budget")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-6s %-6s %-16s %14s %14s %14s\n", "ID", "ANNÉE", "NATURE", "DOTATION", "CONSOMMÉ", "DISPONIBLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	for _, b := range budgets {
		fmt.Fprintf(a.out, "%-6d %-6d %-16s %12.2f € %12.2f € %12.2f €\n",
			b.ID, b.Annee, b.Nature, b.MontantInitial, b.MontantConsomme, b.MontantDisponible)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single budget.
func (a *BudgetAdapter) Show(ctx context.Context, id int64) (*primary.Budget, error) {
	budget, err := a.service.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nBudget %d\n", budget.ID)
	fmt.Fprintf(a.out, "Année:      %d\n", budget.Annee)
	fmt.Fprintf(a.out, "Nature:     %s\n", budget.Nature)
	fmt.Fprintf(a.out, "Dotation:   %.2f €\n", budget.MontantInitial)
	fmt.Fprintf(a.out, "Consommé:   %.2f €\n", budget.MontantConsomme)
	fmt.Fprintf(a.out, "Disponible: %.2f €\n", budget.MontantDisponible)
	if budget.ServiceDemandeur != "" {
		fmt.Fprintf(a.out, "Service:    %s\n", budget.ServiceDemandeur)
	}
	fmt.Fprintln(a.out)

	return budget, nil
}

// Update updates a budget's allocation and/or requesting service.
func (a *BudgetAdapter) Update(ctx context.Context, id int64, montant *float64, serviceDemandeur *string) error {
	if montant == nil && serviceDemandeur == nil {
		return fmt.Errorf("préciser au moins --montant ou --service")
	}

	budget, err := a.service.UpdateBudget(ctx, primary.UpdateBudgetRequest{
		ID:               id,
		MontantInitial:   montant,
		ServiceDemandeur: serviceDemandeur,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Budget %d mis à jour : disponible %.2f €\n", budget.ID, budget.MontantDisponible)
	return nil
}

// Delete deletes a budget, optionally forcing draft BC removal.
func (a *BudgetAdapter) Delete(ctx context.Context, id int64, force bool) error {
	result, err := a.service.DeleteBudget(ctx, id, force)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Budget %d supprimé\n", id)
	if result.DraftBCsDeleted > 0 {
		fmt.Fprintf(a.out, "  %d brouillon(s) de BC supprimé(s) avec le budget\n", result.DraftBCsDeleted)
	}
	return nil
}

// Recompute rebuilds a budget's amounts from its validated BCs.
func (a *BudgetAdapter) Recompute(ctx context.Context, id int64) error {
	budget, err := a.service.RecomputeBudget(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Budget %d recalculé : consommé %.2f €, disponible %.2f €\n",
		budget.ID, budget.MontantConsomme, budget.MontantDisponible)
	return nil
}

// CarryOver copies remaining amounts into the target year.
func (a *BudgetAdapter) CarryOver(ctx context.Context, fromAnnee, toAnnee int) error {
	result, err := a.service.CarryOver(ctx, fromAnnee, toAnnee)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Report %d → %d\n", result.FromAnnee, result.ToAnnee)
	for _, b := range result.Created {
		fmt.Fprintf(a.out, "✓ %s : %.2f € reportés\n", b.Nature, b.MontantInitial)
	}
	for _, nature := range result.Skipped {
		fmt.Fprintf(a.out, "  %s : déjà budgété en %d, ignoré\n", nature, result.ToAnnee)
	}
	if len(result.Created) == 0 && len(result.Skipped) == 0 {
		fmt.Fprintln(a.out, "Rien à reporter")
	}
	return nil
}

// Statistics prints the aggregated year view.
func (a *BudgetAdapter) Statistics(ctx context.Context, annee int) error {
	stats, err := a.service.Statistics(ctx, annee)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nStatistiques %d\n", stats.Annee)
	fmt.Fprintf(a.out, "Dotation totale:   %.2f €\n", stats.TotalInitial)
	fmt.Fprintf(a.out, "Consommé total:    %.2f €\n", stats.TotalConsomme)
	fmt.Fprintf(a.out, "Disponible total:  %.2f €\n", stats.TotalDisponible)
	fmt.Fprintf(a.out, "BCs validés:       %d\n", stats.BCsValides)
	fmt.Fprintf(a.out, "BCs en attente:    %d (%.2f €)\n", stats.BCsEnAttente, stats.MontantEnAttente)

	if len(stats.ParNature) > 0 {
		fmt.Fprintf(a.out, "\n%-16s %14s %14s %14s %8s %8s\n", "NATURE", "DOTATION", "CONSOMMÉ", "DISPONIBLE", "VALIDÉS", "ATTENTE")
		fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
		for _, n := range stats.ParNature {
			fmt.Fprintf(a.out, "%-16s %12.2f € %12.2f € %12.2f € %8d %8d\n",
				n.Nature, n.MontantInitial, n.MontantConsomme, n.MontantDisponible, n.BCsValides, n.BCsEnAttente)
		}
	}
	fmt.Fprintln(a.out)

	return nil
}
