package app

import (
	"context"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/core/validate"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ProjetStatuts is the accepted domain of project statuses.
var ProjetStatuts = []string{"En cours", "Terminé", "Suspendu"}

// InvestissementTypes is the accepted domain of investment types.
var InvestissementTypes = []string{"Matériel", "Licence", "Installation", "Formation", "Accompagnement"}

// ProjetServiceImpl implements the ProjetService interface.
type ProjetServiceImpl struct {
	projetRepo secondary.ProjetRepository
}

// NewProjetService creates a new ProjetService with injected dependencies.
func NewProjetService(projetRepo secondary.ProjetRepository) *ProjetServiceImpl {
	return &ProjetServiceImpl{projetRepo: projetRepo}
}

// CreateProjet creates a new project.
func (s *ProjetServiceImpl) CreateProjet(ctx context.Context, req primary.CreateProjetRequest) (*primary.Projet, error) {
	if v := validate.Required(req.Nom, "nom"); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	statut := req.Statut
	if statut == "" {
		statut = "En cours"
	}
	if v := validate.OneOf(statut, "Statut", ProjetStatuts); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	debut, err := parseDate(req.DateDebut, "date_debut")
	if err != nil {
		return nil, err
	}
	fin, err := parseDate(req.DateFinEstimee, "date_fin_estimee")
	if err != nil {
		return nil, err
	}
	if v := validate.DateRange(debut, fin); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	if req.ClientID != 0 {
		exists, err := s.projetRepo.ClientExists(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fault.New(fault.KindNotFound, "Client %d introuvable", req.ClientID)
		}
	}

	id, err := s.projetRepo.Create(ctx, &secondary.ProjetRecord{
		Nom:              req.Nom,
		ClientID:         req.ClientID,
		PorteurProjet:    req.PorteurProjet,
		ServiceDemandeur: req.ServiceDemandeur,
		DateDebut:        req.DateDebut,
		DateFinEstimee:   req.DateFinEstimee,
		Remarques:        req.Remarques,
		Statut:           statut,
	})
	if err != nil {
		return nil, err
	}

	return s.GetProjet(ctx, id)
}

// GetProjet retrieves a project with its investments and sourcing
// contacts loaded.
func (s *ProjetServiceImpl) GetProjet(ctx context.Context, id int64) (*primary.Projet, error) {
	record, err := s.projetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assembleProjet(ctx, record)
}

// GetProjetByNom retrieves a project by its unique name.
func (s *ProjetServiceImpl) GetProjetByNom(ctx context.Context, nom string) (*primary.Projet, error) {
	record, err := s.projetRepo.GetByNom(ctx, nom)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fault.New(fault.KindNotFound, "Projet %q introuvable", nom)
	}
	return s.assembleProjet(ctx, record)
}

// ListProjets lists projects with optional filters. Owned rows are not
// loaded for listings.
func (s *ProjetServiceImpl) ListProjets(ctx context.Context, filters primary.ProjetFilters) ([]*primary.Projet, error) {
	if filters.Statut != "" {
		if v := validate.OneOf(filters.Statut, "Statut", ProjetStatuts); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
	}

	records, err := s.projetRepo.List(ctx, secondary.ProjetFilters{
		Statut:   filters.Statut,
		ClientID: filters.ClientID,
	})
	if err != nil {
		return nil, err
	}

	projets := make([]*primary.Projet, len(records))
	for i, r := range records {
		projets[i] = recordToProjet(r)
	}
	return projets, nil
}

// UpdateProjet updates an existing project.
func (s *ProjetServiceImpl) UpdateProjet(ctx context.Context, req primary.UpdateProjetRequest) (*primary.Projet, error) {
	record, err := s.projetRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Nom != nil {
		if v := validate.Required(*req.Nom, "nom"); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.Nom = *req.Nom
	}
	if req.ClientID != nil {
		if *req.ClientID != 0 {
			exists, err := s.projetRepo.ClientExists(ctx, *req.ClientID)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, fault.New(fault.KindNotFound, "Client %d introuvable", *req.ClientID)
			}
		}
		record.ClientID = *req.ClientID
	}
	if req.FAPRedigee != nil {
		record.FAPRedigee = *req.FAPRedigee
	}
	if req.PorteurProjet != nil {
		record.PorteurProjet = *req.PorteurProjet
	}
	if req.ServiceDemandeur != nil {
		record.ServiceDemandeur = *req.ServiceDemandeur
	}
	if req.DateDebut != nil {
		record.DateDebut = *req.DateDebut
	}
	if req.DateFinEstimee != nil {
		record.DateFinEstimee = *req.DateFinEstimee
	}
	if req.DateMiseService != nil {
		record.DateMiseService = *req.DateMiseService
	}
	if req.Remarques != nil {
		record.Remarques = *req.Remarques
	}
	if req.Statut != nil {
		if v := validate.OneOf(*req.Statut, "Statut", ProjetStatuts); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.Statut = *req.Statut
	}

	debut, err := parseDate(record.DateDebut, "date_debut")
	if err != nil {
		return nil, err
	}
	fin, err := parseDate(record.DateFinEstimee, "date_fin_estimee")
	if err != nil {
		return nil, err
	}
	if v := validate.DateRange(debut, fin); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	if err := s.projetRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.GetProjet(ctx, req.ID)
}

// DeleteProjet deletes a project and its owned rows.
func (s *ProjetServiceImpl) DeleteProjet(ctx context.Context, id int64) error {
	return s.projetRepo.Delete(ctx, id)
}

// AddInvestissement adds a planned investment to a project.
func (s *ProjetServiceImpl) AddInvestissement(ctx context.Context, req primary.AddInvestissementRequest) (*primary.Investissement, error) {
	if v := validate.OneOf(req.Type, "Type", InvestissementTypes); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.Montant(req.MontantEstime); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	if _, err := s.projetRepo.GetByID(ctx, req.ProjetID); err != nil {
		return nil, err
	}

	id, err := s.projetRepo.AddInvestissement(ctx, &secondary.InvestissementRecord{
		ProjetID:      req.ProjetID,
		Type:          req.Type,
		Description:   req.Description,
		MontantEstime: req.MontantEstime,
	})
	if err != nil {
		return nil, err
	}

	return &primary.Investissement{
		ID:            id,
		ProjetID:      req.ProjetID,
		Type:          req.Type,
		Description:   req.Description,
		MontantEstime: req.MontantEstime,
	}, nil
}

// UpdateInvestissement updates a planned investment.
func (s *ProjetServiceImpl) UpdateInvestissement(ctx context.Context, req primary.UpdateInvestissementRequest) (*primary.Investissement, error) {
	invs, err := s.projetRepo.ListInvestissements(ctx, req.ProjetID)
	if err != nil {
		return nil, err
	}

	var record *secondary.InvestissementRecord
	for _, inv := range invs {
		if inv.ID == req.ID {
			record = inv
			break
		}
	}
	if record == nil {
		return nil, fault.New(fault.KindNotFound, "Investissement %d introuvable pour le projet %d", req.ID, req.ProjetID)
	}

	if req.Type != nil {
		if v := validate.OneOf(*req.Type, "Type", InvestissementTypes); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.Type = *req.Type
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.MontantEstime != nil {
		if v := validate.Montant(*req.MontantEstime); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.MontantEstime = *req.MontantEstime
	}

	if err := s.projetRepo.UpdateInvestissement(ctx, record); err != nil {
		return nil, err
	}

	return &primary.Investissement{
		ID:            record.ID,
		ProjetID:      record.ProjetID,
		Type:          record.Type,
		Description:   record.Description,
		MontantEstime: record.MontantEstime,
	}, nil
}

// DeleteInvestissement removes a planned investment.
func (s *ProjetServiceImpl) DeleteInvestissement(ctx context.Context, projetID, investissementID int64) error {
	invs, err := s.projetRepo.ListInvestissements(ctx, projetID)
	if err != nil {
		return err
	}
	for _, inv := range invs {
		if inv.ID == investissementID {
			return s.projetRepo.DeleteInvestissement(ctx, investissementID)
		}
	}
	return fault.New(fault.KindNotFound, "Investissement %d introuvable pour le projet %d", investissementID, projetID)
}

// AddContactSourcing adds a sourcing contact to a project.
func (s *ProjetServiceImpl) AddContactSourcing(ctx context.Context, req primary.AddContactSourcingRequest) (*primary.ContactSourcing, error) {
	if err := validateContactFields(req.Nom, req.Prenom, req.Telephone, req.Email); err != nil {
		return nil, err
	}

	if _, err := s.projetRepo.GetByID(ctx, req.ProjetID); err != nil {
		return nil, err
	}

	id, err := s.projetRepo.AddContactSourcing(ctx, &secondary.ContactSourcingRecord{
		ProjetID:   req.ProjetID,
		Nom:        req.Nom,
		Prenom:     req.Prenom,
		Entreprise: req.Entreprise,
		Telephone:  req.Telephone,
		Email:      req.Email,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &primary.ContactSourcing{
		ID:         id,
		ProjetID:   req.ProjetID,
		Nom:        req.Nom,
		Prenom:     req.Prenom,
		Entreprise: req.Entreprise,
		Telephone:  req.Telephone,
		Email:      req.Email,
		Notes:      req.Notes,
	}, nil
}

// UpdateContactSourcing updates a sourcing contact.
func (s *ProjetServiceImpl) UpdateContactSourcing(ctx context.Context, req primary.UpdateContactSourcingRequest) (*primary.ContactSourcing, error) {
	contacts, err := s.projetRepo.ListContactsSourcing(ctx, req.ProjetID)
	if err != nil {
		return nil, err
	}

	var record *secondary.ContactSourcingRecord
	for _, c := range contacts {
		if c.ID == req.ID {
			record = c
			break
		}
	}
	if record == nil {
		return nil, fault.New(fault.KindNotFound, "Contact sourcing %d introuvable pour le projet %d", req.ID, req.ProjetID)
	}

	if req.Nom != nil {
		record.Nom = *req.Nom
	}
	if req.Prenom != nil {
		record.Prenom = *req.Prenom
	}
	if req.Entreprise != nil {
		record.Entreprise = *req.Entreprise
	}
	if req.Telephone != nil {
		record.Telephone = *req.Telephone
	}
	if req.Email != nil {
		record.Email = *req.Email
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := validateContactFields(record.Nom, record.Prenom, record.Telephone, record.Email); err != nil {
		return nil, err
	}

	if err := s.projetRepo.UpdateContactSourcing(ctx, record); err != nil {
		return nil, err
	}

	return &primary.ContactSourcing{
		ID:         record.ID,
		ProjetID:   record.ProjetID,
		Nom:        record.Nom,
		Prenom:     record.Prenom,
		Entreprise: record.Entreprise,
		Telephone:  record.Telephone,
		Email:      record.Email,
		Notes:      record.Notes,
	}, nil
}

// DeleteContactSourcing removes a sourcing contact.
func (s *ProjetServiceImpl) DeleteContactSourcing(ctx context.Context, projetID, contactID int64) error {
	contacts, err := s.projetRepo.ListContactsSourcing(ctx, projetID)
	if err != nil {
		return err
	}
	for _, c := range contacts {
		if c.ID == contactID {
			return s.projetRepo.DeleteContactSourcing(ctx, contactID)
		}
	}
	return fault.New(fault.KindNotFound, "Contact sourcing %d introuvable pour le projet %d", contactID, projetID)
}

// assembleProjet loads the owned rows and the investment total.
func (s *ProjetServiceImpl) assembleProjet(ctx context.Context, record *secondary.ProjetRecord) (*primary.Projet, error) {
	projet := recordToProjet(record)

	invs, err := s.projetRepo.ListInvestissements(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	for _, inv := range invs {
		projet.Investissements = append(projet.Investissements, &primary.Investissement{
			ID:            inv.ID,
			ProjetID:      inv.ProjetID,
			Type:          inv.Type,
			Description:   inv.Description,
			MontantEstime: inv.MontantEstime,
		})
		projet.TotalInvestissements += inv.MontantEstime
	}

	contacts, err := s.projetRepo.ListContactsSourcing(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		projet.ContactsSourcing = append(projet.ContactsSourcing, &primary.ContactSourcing{
			ID:         c.ID,
			ProjetID:   c.ProjetID,
			Nom:        c.Nom,
			Prenom:     c.Prenom,
			Entreprise: c.Entreprise,
			Telephone:  c.Telephone,
			Email:      c.Email,
			Notes:      c.Notes,
		})
	}

	return projet, nil
}

// recordToProjet converts a storage record to the primary port type.
func recordToProjet(r *secondary.ProjetRecord) *primary.Projet {
	return &primary.Projet{
		ID:               r.ID,
		Nom:              r.Nom,
		ClientID:         r.ClientID,
		FAPRedigee:       r.FAPRedigee,
		PorteurProjet:    r.PorteurProjet,
		ServiceDemandeur: r.ServiceDemandeur,
		DateDebut:        r.DateDebut,
		DateFinEstimee:   r.DateFinEstimee,
		DateMiseService:  r.DateMiseService,
		Remarques:        r.Remarques,
		Statut:           r.Statut,
	}
}
