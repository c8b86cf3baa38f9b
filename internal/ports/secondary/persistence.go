// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application
// drives the store.
package secondary

import "context"

// ClientRepository defines the secondary port for client persistence.
type ClientRepository interface {
	// Create persists a new client and returns its id.
	Create(ctx context.Context, client *ClientRecord) (int64, error)

	// GetByID retrieves a client by its id.
	GetByID(ctx context.Context, id int64) (*ClientRecord, error)

	// GetByNom retrieves a client by its unique name, nil if absent.
	GetByNom(ctx context.Context, nom string) (*ClientRecord, error)

	// List retrieves clients matching the given filters, ordered by name.
	List(ctx context.Context, filters ClientFilters) ([]*ClientRecord, error)

	// Update updates an existing client.
	Update(ctx context.Context, client *ClientRecord) error

	// SetActif flips the soft-delete flag.
	SetActif(ctx context.Context, id int64, actif bool) error

	// Delete removes a client; owned contacts and contrats cascade.
	Delete(ctx context.Context, id int64) error

	// CountBlockers returns the financial dependents that block deletion.
	CountBlockers(ctx context.Context, id int64) (*ClientBlockers, error)
}

// ClientRecord represents a client as stored in persistence.
type ClientRecord struct {
	ID            int64
	Nom           string
	RaisonSociale string
	Adresse       string
	CodePostal    string
	Ville         string
	Email         string
	Telephone     string
	Actif         bool
	CreatedAt     string
	UpdatedAt     string
}

// ClientFilters contains filter options for querying clients.
type ClientFilters struct {
	IncludeInactive bool
}

// ClientBlockers carries the dependent counts that veto a client delete.
type ClientBlockers struct {
	ValidatedBCs     int // validated BCs reached through the client's contrats
	ActiveFAPProjets int // projets En cours with a FAP dossier
}

// ContactRepository defines the secondary port for contact persistence.
type ContactRepository interface {
	// Create persists a new contact and returns its id.
	Create(ctx context.Context, contact *ContactRecord) (int64, error)

	// GetByID retrieves a contact by its id.
	GetByID(ctx context.Context, id int64) (*ContactRecord, error)

	// ListByClient retrieves a client's contacts ordered by name.
	ListByClient(ctx context.Context, clientID int64) ([]*ContactRecord, error)

	// Update updates an existing contact.
	Update(ctx context.Context, contact *ContactRecord) error

	// Delete removes a contact.
	Delete(ctx context.Context, id int64) error

	// ClientExists checks if a client exists (for validation).
	ClientExists(ctx context.Context, clientID int64) (bool, error)
}

// ContactRecord represents a contact as stored in persistence.
type ContactRecord struct {
	ID        int64
	ClientID  int64
	Nom       string
	Prenom    string
	Fonction  string
	Telephone string
	Email     string
	Notes     string
}

// ContratRepository defines the secondary port for contract persistence.
type ContratRepository interface {
	// Create persists a new contract and returns its id.
	Create(ctx context.Context, contrat *ContratRecord) (int64, error)

	// GetByID retrieves a contract by its id.
	GetByID(ctx context.Context, id int64) (*ContratRecord, error)

	// GetByNumero retrieves a contract by its unique number, nil if absent.
	GetByNumero(ctx context.Context, numero string) (*ContratRecord, error)

	// List retrieves contracts matching the filters, ordered by date_fin
	// ascending (soonest-ending first).
	List(ctx context.Context, filters ContratFilters) ([]*ContratRecord, error)

	// Update updates an existing contract.
	Update(ctx context.Context, contrat *ContratRecord) error

	// SetResilie marks a contract as explicitly cancelled.
	SetResilie(ctx context.Context, id int64) error

	// Delete removes a contract.
	Delete(ctx context.Context, id int64) error

	// CountBCs returns the number of BCs referencing a contract.
	CountBCs(ctx context.Context, contratID int64) (int, error)

	// ClientExists checks if a client exists (for validation).
	ClientExists(ctx context.Context, clientID int64) (bool, error)
}

// ContratRecord represents a contract as stored in persistence.
// Only the cancellation marker persists; Actif/Expiré is derived.
type ContratRecord struct {
	ID          int64
	Numero      string
	ClientID    int64
	ContactID   int64 // 0 when unset
	DateDebut   string
	DateFin     string
	Montant     float64
	Description string
	Resilie     bool
}

// ContratFilters contains filter options for querying contracts.
type ContratFilters struct {
	ClientID int64
}

// BudgetRepository defines the secondary port for budget persistence.
type BudgetRepository interface {
	// Create persists a new budget and returns its id. The store derives
	// montant_disponible from the allocation on insert.
	Create(ctx context.Context, budget *BudgetRecord) (int64, error)

	// GetByID retrieves a budget by its id.
	GetByID(ctx context.Context, id int64) (*BudgetRecord, error)

	// GetByAnneeNature retrieves the budget for a (year, nature) pair,
	// nil if absent.
	GetByAnneeNature(ctx context.Context, annee int, nature string) (*BudgetRecord, error)

	// List retrieves budgets matching the filters, newest year first.
	List(ctx context.Context, filters BudgetFilters) ([]*BudgetRecord, error)

	// Update updates the allocation and descriptive fields of a budget.
	// Consumed/available amounts are never written directly.
	Update(ctx context.Context, budget *BudgetRecord) error

	// Delete removes a budget.
	Delete(ctx context.Context, id int64) error

	// RecomputeAvailable rebuilds montant_consomme and
	// montant_disponible from the validated BCs. Idempotent.
	RecomputeAvailable(ctx context.Context, id int64) error

	// CountBCs returns the validated and draft BC counts for a budget.
	CountBCs(ctx context.Context, budgetID int64) (validated, draft int, err error)

	// DeleteDraftBCs removes the draft BCs attached to a budget and
	// returns how many were removed.
	DeleteDraftBCs(ctx context.Context, budgetID int64) (int, error)

	// ListLowAvailability retrieves the year's budgets whose available
	// amount fell under ratio × allocation, most depleted first.
	ListLowAvailability(ctx context.Context, annee int, ratio float64) ([]*BudgetRecord, error)
}

// BudgetRecord represents a budget envelope as stored in persistence.
type BudgetRecord struct {
	ID                int64
	Annee             int
	Nature            string
	MontantInitial    float64
	MontantConsomme   float64
	MontantDisponible float64
	ServiceDemandeur  string
}

// BudgetFilters contains filter options for querying budgets.
type BudgetFilters struct {
	Annee  int
	Nature string
}

// BonCommandeRepository defines the secondary port for purchase order
// persistence.
type BonCommandeRepository interface {
	// Create persists a new draft BC and returns its id.
	Create(ctx context.Context, bc *BonCommandeRecord) (int64, error)

	// GetByID retrieves a BC by its id.
	GetByID(ctx context.Context, id int64) (*BonCommandeRecord, error)

	// GetByNumero retrieves a BC by its unique number, nil if absent.
	GetByNumero(ctx context.Context, numero string) (*BonCommandeRecord, error)

	// List retrieves BCs matching the filters, ordered numero descending.
	List(ctx context.Context, filters BonCommandeFilters) ([]*BonCommandeRecord, error)

	// Update updates a draft BC. The caller enforces immutability.
	Update(ctx context.Context, bc *BonCommandeRecord) error

	// Delete removes a draft BC. The caller enforces immutability.
	Delete(ctx context.Context, id int64) error

	// LastNumeroForYear returns the highest numero assigned in a year,
	// empty if none.
	LastNumeroForYear(ctx context.Context, annee int) (string, error)

	// Validate atomically flips a draft BC to validated after checking
	// the owning budget's available amount; the store's trigger imputes
	// the amount in the same transaction. Faults: NotFound, Immutable,
	// InsufficientBudget.
	Validate(ctx context.Context, id int64) error

	// BudgetExists checks if a budget exists (for validation).
	BudgetExists(ctx context.Context, budgetID int64) (bool, error)

	// ContratExists checks if a contract exists (for validation).
	ContratExists(ctx context.Context, contratID int64) (bool, error)

	// StatsForYear aggregates BC counts and amounts per nature and
	// validation state for a year.
	StatsForYear(ctx context.Context, annee int) ([]*BonCommandeStat, error)
}

// BonCommandeRecord represents a purchase order as stored in persistence.
type BonCommandeRecord struct {
	ID               int64
	Numero           string
	BudgetID         int64
	ContratID        int64 // 0 when unset
	Type             string
	ServiceDemandeur string
	Montant          float64
	Valide           bool
	DateCreation     string
	DateValidation   string
	Description      string
}

// BonCommandeFilters contains filter options for querying BCs.
type BonCommandeFilters struct {
	Valide   *bool
	BudgetID int64
	Annee    int
}

// BonCommandeStat is one aggregation bucket of StatsForYear.
type BonCommandeStat struct {
	Nature       string
	Valide       bool
	Count        int
	TotalMontant float64
}

// ProjetRepository defines the secondary port for project persistence,
// including the owned investments and sourcing contacts.
type ProjetRepository interface {
	// Create persists a new project and returns its id.
	Create(ctx context.Context, projet *ProjetRecord) (int64, error)

	// GetByID retrieves a project by its id.
	GetByID(ctx context.Context, id int64) (*ProjetRecord, error)

	// GetByNom retrieves a project by its unique name, nil if absent.
	GetByNom(ctx context.Context, nom string) (*ProjetRecord, error)

	// List retrieves projects matching the filters, ordered by name.
	List(ctx context.Context, filters ProjetFilters) ([]*ProjetRecord, error)

	// Update updates an existing project.
	Update(ctx context.Context, projet *ProjetRecord) error

	// Delete removes a project; owned rows cascade.
	Delete(ctx context.Context, id int64) error

	// ClientExists checks if a client exists (for validation).
	ClientExists(ctx context.Context, clientID int64) (bool, error)

	// ListInvestissements retrieves a project's planned investments.
	ListInvestissements(ctx context.Context, projetID int64) ([]*InvestissementRecord, error)

	// AddInvestissement persists a new investment and returns its id.
	AddInvestissement(ctx context.Context, inv *InvestissementRecord) (int64, error)

	// UpdateInvestissement updates an existing investment.
	UpdateInvestissement(ctx context.Context, inv *InvestissementRecord) error

	// DeleteInvestissement removes an investment.
	DeleteInvestissement(ctx context.Context, id int64) error

	// TotalInvestissements sums a project's estimated investments.
	TotalInvestissements(ctx context.Context, projetID int64) (float64, error)

	// ListContactsSourcing retrieves a project's sourcing contacts.
	ListContactsSourcing(ctx context.Context, projetID int64) ([]*ContactSourcingRecord, error)

	// AddContactSourcing persists a new sourcing contact and returns its id.
	AddContactSourcing(ctx context.Context, contact *ContactSourcingRecord) (int64, error)

	// UpdateContactSourcing updates an existing sourcing contact.
	UpdateContactSourcing(ctx context.Context, contact *ContactSourcingRecord) error

	// DeleteContactSourcing removes a sourcing contact.
	DeleteContactSourcing(ctx context.Context, id int64) error
}

// ProjetRecord represents a project as stored in persistence.
type ProjetRecord struct {
	ID               int64
	Nom              string
	ClientID         int64 // 0 when the project is internal
	FAPRedigee       bool
	PorteurProjet    string
	ServiceDemandeur string
	DateDebut        string
	DateFinEstimee   string
	DateMiseService  string
	Remarques        string
	Statut           string
}

// ProjetFilters contains filter options for querying projects.
type ProjetFilters struct {
	Statut   string
	ClientID int64
}

// InvestissementRecord represents a planned investment of a project.
type InvestissementRecord struct {
	ID            int64
	ProjetID      int64
	Type          string
	Description   string
	MontantEstime float64
}

// ContactSourcingRecord represents a sourcing contact of a project.
type ContactSourcingRecord struct {
	ID         int64
	ProjetID   int64
	Nom        string
	Prenom     string
	Entreprise string
	Telephone  string
	Email      string
	Notes      string
}

// TodoRepository defines the secondary port for todo persistence.
type TodoRepository interface {
	// Create persists a new todo and returns its id.
	Create(ctx context.Context, todo *TodoRecord) (int64, error)

	// GetByID retrieves a todo by its id.
	GetByID(ctx context.Context, id int64) (*TodoRecord, error)

	// List retrieves todos matching the filters, most urgent first then
	// by due date.
	List(ctx context.Context, filters TodoFilters) ([]*TodoRecord, error)

	// Update updates an existing todo.
	Update(ctx context.Context, todo *TodoRecord) error

	// SetComplete flips completion and stamps/clears date_completion.
	SetComplete(ctx context.Context, id int64, complete bool) error

	// Delete removes a todo.
	Delete(ctx context.Context, id int64) error

	// HasOpenForContrat reports whether an incomplete todo already
	// references the contract.
	HasOpenForContrat(ctx context.Context, contratID int64) (bool, error)

	// ContratExists checks if a contract exists (for validation).
	ContratExists(ctx context.Context, contratID int64) (bool, error)
}

// TodoRecord represents a todo item as stored in persistence.
type TodoRecord struct {
	ID             int64
	Motif          string
	Description    string
	ContratID      int64 // 0 when unset
	DateEcheance   string
	Priorite       string
	Complete       bool
	DateCompletion string
}

// TodoFilters contains filter options for querying todos.
type TodoFilters struct {
	Complete  *bool
	ContratID int64
}

// SauvegardeRepository defines the secondary port for backup bookkeeping.
type SauvegardeRepository interface {
	// Create records a backup event and returns its id.
	Create(ctx context.Context, sauvegarde *SauvegardeRecord) (int64, error)

	// GetByID retrieves a backup record by its id.
	GetByID(ctx context.Context, id int64) (*SauvegardeRecord, error)

	// List retrieves backup records, newest first.
	List(ctx context.Context) ([]*SauvegardeRecord, error)

	// Delete removes a backup record.
	Delete(ctx context.Context, id int64) error
}

// SauvegardeRecord represents a backup event as stored in persistence.
type SauvegardeRecord struct {
	ID             int64
	NomFichier     string
	Chemin         string
	DateSauvegarde string
	TailleKo       float64
	Commentaire    string
}
