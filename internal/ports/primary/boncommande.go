package primary

import "context"

// BonCommandeService defines the primary port for purchase order
// operations.
type BonCommandeService interface {
	// CreateBonCommande creates a draft BC with the next sequential
	// numero for the budget's year.
	CreateBonCommande(ctx context.Context, req CreateBonCommandeRequest) (*BonCommande, error)

	// GetBonCommande retrieves a BC by id.
	GetBonCommande(ctx context.Context, id int64) (*BonCommande, error)

	// GetBonCommandeByNumero retrieves a BC by its numero.
	GetBonCommandeByNumero(ctx context.Context, numero string) (*BonCommande, error)

	// ListBonsCommande lists BCs with optional filters.
	ListBonsCommande(ctx context.Context, filters BonCommandeFilters) ([]*BonCommande, error)

	// UpdateBonCommande updates a draft BC. Validated BCs are immutable.
	UpdateBonCommande(ctx context.Context, req UpdateBonCommandeRequest) (*BonCommande, error)

	// ValidateBonCommande validates a draft BC, consuming its amount
	// from the owning budget. Fails when the budget's available amount
	// is insufficient. Validation is terminal.
	ValidateBonCommande(ctx context.Context, id int64) (*BonCommande, error)

	// DeleteBonCommande deletes a draft BC. Validated BCs are immutable.
	DeleteBonCommande(ctx context.Context, id int64) error
}

// BonCommande represents a purchase order in the primary port layer.
type BonCommande struct {
	ID               int64
	Numero           string
	BudgetID         int64
	ContratID        int64
	Type             string
	ServiceDemandeur string
	Montant          float64
	Valide           bool
	DateCreation     string
	DateValidation   string
	Description      string
}

// CreateBonCommandeRequest contains the data needed to create a BC.
type CreateBonCommandeRequest struct {
	BudgetID         int64
	ContratID        int64 // 0 when unset
	Type             string
	ServiceDemandeur string
	Montant          float64
	Description      string
}

// UpdateBonCommandeRequest contains the data to update on a draft BC.
// Nil fields keep their current value.
type UpdateBonCommandeRequest struct {
	ID               int64
	ContratID        *int64
	Type             *string
	ServiceDemandeur *string
	Montant          *float64
	Description      *string
}

// BonCommandeFilters contains filter options for listing BCs.
type BonCommandeFilters struct {
	Valide   *bool
	BudgetID int64
	Annee    int
}
