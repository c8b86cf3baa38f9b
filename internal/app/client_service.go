package app

import (
	"context"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/core/validate"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ClientServiceImpl implements the ClientService interface.
type ClientServiceImpl struct {
	clientRepo secondary.ClientRepository
}

// NewClientService creates a new ClientService with injected dependencies.
func NewClientService(clientRepo secondary.ClientRepository) *ClientServiceImpl {
	return &ClientServiceImpl{clientRepo: clientRepo}
}

func validateClientFields(nom, codePostal, email, telephone string) error {
	if v := validate.Required(nom, "nom"); !v.OK {
		return fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.CodePostal(codePostal); !v.OK {
		return fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.Email(email); !v.OK {
		return fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.Telephone(telephone); !v.OK {
		return fault.New(fault.KindValidation, "%s", v.Reason)
	}
	return nil
}

// CreateClient creates a new client.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, req primary.CreateClientRequest) (*primary.Client, error) {
	if err := validateClientFields(req.Nom, req.CodePostal, req.Email, req.Telephone); err != nil {
		return nil, err
	}

	id, err := s.clientRepo.Create(ctx, &secondary.ClientRecord{
		Nom:           req.Nom,
		RaisonSociale: req.RaisonSociale,
		Adresse:       req.Adresse,
		CodePostal:    req.CodePostal,
		Ville:         req.Ville,
		Email:         req.Email,
		Telephone:     req.Telephone,
	})
	if err != nil {
		return nil, err
	}

	return s.GetClient(ctx, id)
}

// GetClient retrieves a client by id.
func (s *ClientServiceImpl) GetClient(ctx context.Context, id int64) (*primary.Client, error) {
	record, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToClient(record), nil
}

// GetClientByNom retrieves a client by its unique name.
func (s *ClientServiceImpl) GetClientByNom(ctx context.Context, nom string) (*primary.Client, error) {
	record, err := s.clientRepo.GetByNom(ctx, nom)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fault.New(fault.KindNotFound, "Client %q introuvable", nom)
	}
	return recordToClient(record), nil
}

// ListClients lists clients, active only unless asked otherwise.
func (s *ClientServiceImpl) ListClients(ctx context.Context, filters primary.ClientFilters) ([]*primary.Client, error) {
	records, err := s.clientRepo.List(ctx, secondary.ClientFilters{
		IncludeInactive: filters.IncludeInactive,
	})
	if err != nil {
		return nil, err
	}

	clients := make([]*primary.Client, len(records))
	for i, r := range records {
		clients[i] = recordToClient(r)
	}
	return clients, nil
}

// UpdateClient updates an existing client.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, req primary.UpdateClientRequest) (*primary.Client, error) {
	record, err := s.clientRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Nom != nil {
		record.Nom = *req.Nom
	}
	if req.RaisonSociale != nil {
		record.RaisonSociale = *req.RaisonSociale
	}
	if req.Adresse != nil {
		record.Adresse = *req.Adresse
	}
	if req.CodePostal != nil {
		record.CodePostal = *req.CodePostal
	}
	if req.Ville != nil {
		record.Ville = *req.Ville
	}
	if req.Email != nil {
		record.Email = *req.Email
	}
	if req.Telephone != nil {
		record.Telephone = *req.Telephone
	}

	if err := validateClientFields(record.Nom, record.CodePostal, record.Email, record.Telephone); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.GetClient(ctx, req.ID)
}

// DeactivateClient soft-deletes a client; its history stays intact.
func (s *ClientServiceImpl) DeactivateClient(ctx context.Context, id int64) error {
	return s.clientRepo.SetActif(ctx, id, false)
}

// ReactivateClient reverses a soft delete.
func (s *ClientServiceImpl) ReactivateClient(ctx context.Context, id int64) error {
	return s.clientRepo.SetActif(ctx, id, true)
}

// DeleteClient hard-deletes a client. Validated BCs reached through the
// client's contrats, or an active FAP project, block the delete;
// contacts and contrats cascade when it goes through.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, id int64) error {
	record, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	blockers, err := s.clientRepo.CountBlockers(ctx, id)
	if err != nil {
		return err
	}
	if blockers.ValidatedBCs > 0 {
		return fault.New(fault.KindIntegrity,
			"Impossible de supprimer le client %q: %d BC validé(s) sont liés à ses contrats",
			record.Nom, blockers.ValidatedBCs)
	}
	if blockers.ActiveFAPProjets > 0 {
		return fault.New(fault.KindIntegrity,
			"Impossible de supprimer le client %q: %d projet(s) en cours avec FAP rédigée",
			record.Nom, blockers.ActiveFAPProjets)
	}

	return s.clientRepo.Delete(ctx, id)
}

// recordToClient converts a storage record to the primary port type.
func recordToClient(r *secondary.ClientRecord) *primary.Client {
	return &primary.Client{
		ID:            r.ID,
		Nom:           r.Nom,
		RaisonSociale: r.RaisonSociale,
		Adresse:       r.Adresse,
		CodePostal:    r.CodePostal,
		Ville:         r.Ville,
		Email:         r.Email,
		Telephone:     r.Telephone,
		Actif:         r.Actif,
	}
}
