package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/budgetctl/internal/ports/primary"
)

// BonCommandeAdapter is a thin adapter that translates CLI operations
// to BonCommandeService calls.
type BonCommandeAdapter struct {
	service primary.BonCommandeService
	out     io.Writer
}

// NewBonCommandeAdapter creates a new BonCommandeAdapter with the given
// service.
func NewBonCommandeAdapter(service primary.BonCommandeService, out io.Writer) *BonCommandeAdapter {
	return &BonCommandeAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a draft BC against a budget.
func (a *BonCommandeAdapter) Create(ctx context.Context, req primary.CreateBonCommandeRequest) error {
	bc, err := a.service.CreateBonCommande(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Bon de commande %s créé (brouillon) : %.2f €\n", bc.Numero, bc.Montant)
	return nil
}

// List lists BCs with optional filters.
func (a *BonCommandeAdapter) List(ctx context.Context, filters primary.BonCommandeFilters) error {
	bcs, err := a.service.ListBonsCommande(ctx, filters)
	if err != nil {
		return err
	}

	if len(bcs) == 0 {
		fmt.Fprintln(a.out, "Aucun bon de commande")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-14s %-12s %14s %-10s %s\n", "NUMÉRO", "TYPE", "MONTANT", "STATUT", "SERVICE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────")
	for _, bc := range bcs {
		statut := "brouillon"
		if bc.Valide {
			statut = "validé"
		}
		fmt.Fprintf(a.out, "%-14s %-12s %12.2f € %-10s %s\n",
			bc.Numero, bc.Type, bc.Montant, statut, bc.ServiceDemandeur)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single BC, looked up by numero.
func (a *BonCommandeAdapter) Show(ctx context.Context, numero string) (*primary.BonCommande, error) {
	bc, err := a.service.GetBonCommandeByNumero(ctx, numero)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nBon de commande %s\n", bc.Numero)
	fmt.Fprintf(a.out, "Budget:   %d\n", bc.BudgetID)
	if bc.ContratID != 0 {
		fmt.Fprintf(a.out, "Contrat:  %d\n", bc.ContratID)
	}
	fmt.Fprintf(a.out, "Type:     %s\n", bc.Type)
	fmt.Fprintf(a.out, "Montant:  %.2f €\n", bc.Montant)
	if bc.ServiceDemandeur != "" {
		fmt.Fprintf(a.out, "Service:  %s\n", bc.ServiceDemandeur)
	}
	if bc.Valide {
		fmt.Fprintf(a.out, "Statut:   validé le %s\n", bc.DateValidation)
	} else {
		fmt.Fprintf(a.out, "Statut:   brouillon\n")
	}
	if bc.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", bc.Description)
	}
	fmt.Fprintln(a.out)

	return bc, nil
}

// Update updates a draft BC.
func (a *BonCommandeAdapter) Update(ctx context.Context, req primary.UpdateBonCommandeRequest) error {
	bc, err := a.service.UpdateBonCommande(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Bon de commande %s mis à jour\n", bc.Numero)
	return nil
}

// Validate validates a draft BC, consuming its budget.
func (a *BonCommandeAdapter) Validate(ctx context.Context, id int64) error {
	bc, err := a.service.ValidateBonCommande(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Bon de commande %s validé : %.2f € imputés au budget %d\n",
		bc.Numero, bc.Montant, bc.BudgetID)
	return nil
}

// Delete deletes a draft BC.
func (a *BonCommandeAdapter) Delete(ctx context.Context, id int64) error {
	if err := a.service.DeleteBonCommande(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Bon de commande %d supprimé\n", id)
	return nil
}
