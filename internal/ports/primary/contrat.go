package primary

import "context"

// ContratService defines the primary port for contract operations.
type ContratService interface {
	// CreateContrat creates a new contract for a client.
	CreateContrat(ctx context.Context, req CreateContratRequest) (*Contrat, error)

	// GetContrat retrieves a contract by id.
	GetContrat(ctx context.Context, id int64) (*Contrat, error)

	// GetContratByNumero retrieves a contract by its unique number.
	GetContratByNumero(ctx context.Context, numero string) (*Contrat, error)

	// ListContrats lists contracts, soonest-ending first, with the
	// statut derived at read time.
	ListContrats(ctx context.Context, filters ContratFilters) ([]*Contrat, error)

	// ListExpiring lists non-cancelled contracts ending within the
	// threshold number of months from today.
	ListExpiring(ctx context.Context, thresholdMonths int) ([]*Contrat, error)

	// UpdateContrat updates an existing contract.
	UpdateContrat(ctx context.Context, req UpdateContratRequest) (*Contrat, error)

	// ResilierContrat marks a contract as cancelled. The marker is
	// sticky regardless of dates.
	ResilierContrat(ctx context.Context, id int64) error

	// DeleteContrat deletes a contract. Blocked when BCs reference it.
	DeleteContrat(ctx context.Context, id int64) error
}

// Contrat represents a contract in the primary port layer. Statut is
// derived from the cancellation marker and the end date, never stored.
type Contrat struct {
	ID          int64
	Numero      string
	ClientID    int64
	ContactID   int64
	DateDebut   string
	DateFin     string
	Montant     float64
	Description string
	Statut      string
}

// CreateContratRequest contains the data needed to create a contract.
type CreateContratRequest struct {
	Numero      string
	ClientID    int64
	ContactID   int64 // 0 when unset
	DateDebut   string
	DateFin     string
	Montant     float64
	Description string
}

// UpdateContratRequest contains the data to update on a contract. Nil
// fields keep their current value.
type UpdateContratRequest struct {
	ID          int64
	ContactID   *int64
	DateDebut   *string
	DateFin     *string
	Montant     *float64
	Description *string
}

// ContratFilters contains filter options for listing contracts.
type ContratFilters struct {
	ClientID int64
	Statut   string // derived statut to keep, empty for all
}
