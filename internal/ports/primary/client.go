package primary

import "context"

// ClientService defines the primary port for client operations.
type ClientService interface {
	// CreateClient creates a new client.
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)

	// GetClient retrieves a client by id.
	GetClient(ctx context.Context, id int64) (*Client, error)

	// GetClientByNom retrieves a client by its unique name.
	GetClientByNom(ctx context.Context, nom string) (*Client, error)

	// ListClients lists clients, active only unless asked otherwise.
	ListClients(ctx context.Context, filters ClientFilters) ([]*Client, error)

	// UpdateClient updates an existing client.
	UpdateClient(ctx context.Context, req UpdateClientRequest) (*Client, error)

	// DeactivateClient soft-deletes a client; its history stays intact.
	DeactivateClient(ctx context.Context, id int64) error

	// ReactivateClient reverses a soft delete.
	ReactivateClient(ctx context.Context, id int64) error

	// DeleteClient hard-deletes a client and cascades to its contacts
	// and contrats. Blocked when validated BCs or an active FAP project
	// depend on the client.
	DeleteClient(ctx context.Context, id int64) error
}

// Client represents a client organization in the primary port layer.
type Client struct {
	ID            int64
	Nom           string
	RaisonSociale string
	Adresse       string
	CodePostal    string
	Ville         string
	Email         string
	Telephone     string
	Actif         bool
}

// CreateClientRequest contains the data needed to create a client.
type CreateClientRequest struct {
	Nom           string
	RaisonSociale string
	Adresse       string
	CodePostal    string
	Ville         string
	Email         string
	Telephone     string
}

// UpdateClientRequest contains the data to update on a client. Nil
// fields keep their current value.
type UpdateClientRequest struct {
	ID            int64
	Nom           *string
	RaisonSociale *string
	Adresse       *string
	CodePostal    *string
	Ville         *string
	Email         *string
	Telephone     *string
}

// ClientFilters contains filter options for listing clients.
type ClientFilters struct {
	IncludeInactive bool
}
