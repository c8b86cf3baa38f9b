package primary

import "context"

// ProjetService defines the primary port for project operations,
// including the owned investments and sourcing contacts.
type ProjetService interface {
	// CreateProjet creates a new project.
	CreateProjet(ctx context.Context, req CreateProjetRequest) (*Projet, error)

	// GetProjet retrieves a project by id, with its investments and
	// sourcing contacts loaded.
	GetProjet(ctx context.Context, id int64) (*Projet, error)

	// GetProjetByNom retrieves a project by its unique name.
	GetProjetByNom(ctx context.Context, nom string) (*Projet, error)

	// ListProjets lists projects with optional filters.
	ListProjets(ctx context.Context, filters ProjetFilters) ([]*Projet, error)

	// UpdateProjet updates an existing project.
	UpdateProjet(ctx context.Context, req UpdateProjetRequest) (*Projet, error)

	// DeleteProjet deletes a project and its owned rows.
	DeleteProjet(ctx context.Context, id int64) error

	// AddInvestissement adds a planned investment to a project.
	AddInvestissement(ctx context.Context, req AddInvestissementRequest) (*Investissement, error)

	// UpdateInvestissement updates a planned investment.
	UpdateInvestissement(ctx context.Context, req UpdateInvestissementRequest) (*Investissement, error)

	// DeleteInvestissement removes a planned investment.
	DeleteInvestissement(ctx context.Context, projetID, investissementID int64) error

	// AddContactSourcing adds a sourcing contact to a project.
	AddContactSourcing(ctx context.Context, req AddContactSourcingRequest) (*ContactSourcing, error)

	// UpdateContactSourcing updates a sourcing contact.
	UpdateContactSourcing(ctx context.Context, req UpdateContactSourcingRequest) (*ContactSourcing, error)

	// DeleteContactSourcing removes a sourcing contact.
	DeleteContactSourcing(ctx context.Context, projetID, contactID int64) error
}

// Projet represents an investment project in the primary port layer.
type Projet struct {
	ID                   int64
	Nom                  string
	ClientID             int64
	FAPRedigee           bool
	PorteurProjet        string
	ServiceDemandeur     string
	DateDebut            string
	DateFinEstimee       string
	DateMiseService      string
	Remarques            string
	Statut               string
	Investissements      []*Investissement
	ContactsSourcing     []*ContactSourcing
	TotalInvestissements float64
}

// Investissement represents a planned investment of a project.
type Investissement struct {
	ID            int64
	ProjetID      int64
	Type          string
	Description   string
	MontantEstime float64
}

// ContactSourcing represents a sourcing contact of a project.
type ContactSourcing struct {
	ID         int64
	ProjetID   int64
	Nom        string
	Prenom     string
	Entreprise string
	Telephone  string
	Email      string
	Notes      string
}

// CreateProjetRequest contains the data needed to create a project.
type CreateProjetRequest struct {
	Nom              string
	ClientID         int64 // 0 for an internal project
	PorteurProjet    string
	ServiceDemandeur string
	DateDebut        string
	DateFinEstimee   string
	Remarques        string
	Statut           string // defaults to "En cours" when empty
}

// UpdateProjetRequest contains the data to update on a project. Nil
// fields keep their current value.
type UpdateProjetRequest struct {
	ID               int64
	Nom              *string
	ClientID         *int64
	FAPRedigee       *bool
	PorteurProjet    *string
	ServiceDemandeur *string
	DateDebut        *string
	DateFinEstimee   *string
	DateMiseService  *string
	Remarques        *string
	Statut           *string
}

// ProjetFilters contains filter options for listing projects.
type ProjetFilters struct {
	Statut   string
	ClientID int64
}

// AddInvestissementRequest contains the data for a new investment.
type AddInvestissementRequest struct {
	ProjetID      int64
	Type          string
	Description   string
	MontantEstime float64
}

// UpdateInvestissementRequest contains the data to update on an
// investment. Nil fields keep their current value.
type UpdateInvestissementRequest struct {
	ID            int64
	ProjetID      int64
	Type          *string
	Description   *string
	MontantEstime *float64
}

// AddContactSourcingRequest contains the data for a new sourcing contact.
type AddContactSourcingRequest struct {
	ProjetID   int64
	Nom        string
	Prenom     string
	Entreprise string
	Telephone  string
	Email      string
	Notes      string
}

// UpdateContactSourcingRequest contains the data to update on a
// sourcing contact. Nil fields keep their current value.
type UpdateContactSourcingRequest struct {
	ID         int64
	ProjetID   int64
	Nom        *string
	Prenom     *string
	Entreprise *string
	Telephone  *string
	Email      *string
	Notes      *string
}
