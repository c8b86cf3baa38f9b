package app

import (
	"context"
	"time"

	"github.com/example/budgetctl/internal/core/contrat"
	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/core/validate"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ContratServiceImpl implements the ContratService interface. The
// statut of every returned contract is derived at read time.
type ContratServiceImpl struct {
	contratRepo secondary.ContratRepository
	now         func() time.Time
}

// NewContratService creates a new ContratService with injected dependencies.
func NewContratService(contratRepo secondary.ContratRepository) *ContratServiceImpl {
	return &ContratServiceImpl{
		contratRepo: contratRepo,
		now:         time.Now,
	}
}

// CreateContrat creates a new contract for a client.
func (s *ContratServiceImpl) CreateContrat(ctx context.Context, req primary.CreateContratRequest) (*primary.Contrat, error) {
	if v := validate.Required(req.Numero, "numero"); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.Montant(req.Montant); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	debut, err := parseDate(req.DateDebut, "date_debut")
	if err != nil {
		return nil, err
	}
	fin, err := parseDate(req.DateFin, "date_fin")
	if err != nil {
		return nil, err
	}
	if v := validate.DateRange(debut, fin); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	exists, err := s.contratRepo.ClientExists(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fault.New(fault.KindNotFound, "Client %d introuvable", req.ClientID)
	}

	id, err := s.contratRepo.Create(ctx, &secondary.ContratRecord{
		Numero:      req.Numero,
		ClientID:    req.ClientID,
		ContactID:   req.ContactID,
		DateDebut:   req.DateDebut,
		DateFin:     req.DateFin,
		Montant:     req.Montant,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return s.GetContrat(ctx, id)
}

// GetContrat retrieves a contract by id.
func (s *ContratServiceImpl) GetContrat(ctx context.Context, id int64) (*primary.Contrat, error) {
	record, err := s.contratRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recordToContrat(record)
}

// GetContratByNumero retrieves a contract by its unique number.
func (s *ContratServiceImpl) GetContratByNumero(ctx context.Context, numero string) (*primary.Contrat, error) {
	record, err := s.contratRepo.GetByNumero(ctx, numero)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fault.New(fault.KindNotFound, "Contrat %q introuvable", numero)
	}
	return s.recordToContrat(record)
}

// ListContrats lists contracts, soonest-ending first, with the statut
// derived at read time.
func (s *ContratServiceImpl) ListContrats(ctx context.Context, filters primary.ContratFilters) ([]*primary.Contrat, error) {
	records, err := s.contratRepo.List(ctx, secondary.ContratFilters{
		ClientID: filters.ClientID,
	})
	if err != nil {
		return nil, err
	}

	var contrats []*primary.Contrat
	for _, r := range records {
		c, err := s.recordToContrat(r)
		if err != nil {
			return nil, err
		}
		if filters.Statut != "" && c.Statut != filters.Statut {
			continue
		}
		contrats = append(contrats, c)
	}
	return contrats, nil
}

// ListExpiring lists non-cancelled contracts ending within the
// threshold number of months from today.
func (s *ContratServiceImpl) ListExpiring(ctx context.Context, thresholdMonths int) ([]*primary.Contrat, error) {
	if thresholdMonths <= 0 {
		thresholdMonths = contrat.ExpiryWindowMonths
	}

	records, err := s.contratRepo.List(ctx, secondary.ContratFilters{})
	if err != nil {
		return nil, err
	}

	today := s.now()
	var expiring []*primary.Contrat
	for _, r := range records {
		fin, err := parseDate(r.DateFin, "date_fin")
		if err != nil {
			return nil, err
		}
		if !contrat.ExpiresWithin(r.Resilie, fin, today, thresholdMonths) {
			continue
		}
		c, err := s.recordToContrat(r)
		if err != nil {
			return nil, err
		}
		expiring = append(expiring, c)
	}
	return expiring, nil
}

// UpdateContrat updates an existing contract.
func (s *ContratServiceImpl) UpdateContrat(ctx context.Context, req primary.UpdateContratRequest) (*primary.Contrat, error) {
	record, err := s.contratRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		record.ContactID = *req.ContactID
	}
	if req.DateDebut != nil {
		record.DateDebut = *req.DateDebut
	}
	if req.DateFin != nil {
		record.DateFin = *req.DateFin
	}
	if req.Montant != nil {
		if v := validate.Montant(*req.Montant); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.Montant = *req.Montant
	}
	if req.Description != nil {
		record.Description = *req.Description
	}

	debut, err := parseDate(record.DateDebut, "date_debut")
	if err != nil {
		return nil, err
	}
	fin, err := parseDate(record.DateFin, "date_fin")
	if err != nil {
		return nil, err
	}
	if v := validate.DateRange(debut, fin); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	if err := s.contratRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.GetContrat(ctx, req.ID)
}

// ResilierContrat marks a contract as cancelled.
func (s *ContratServiceImpl) ResilierContrat(ctx context.Context, id int64) error {
	return s.contratRepo.SetResilie(ctx, id)
}

// DeleteContrat deletes a contract. Blocked when BCs reference it.
func (s *ContratServiceImpl) DeleteContrat(ctx context.Context, id int64) error {
	record, err := s.contratRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.contratRepo.CountBCs(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fault.New(fault.KindIntegrity,
			"Impossible de supprimer le contrat %q: %d bon(s) de commande y sont rattachés",
			record.Numero, count)
	}

	return s.contratRepo.Delete(ctx, id)
}

// recordToContrat converts a storage record to the primary port type,
// deriving the statut.
func (s *ContratServiceImpl) recordToContrat(r *secondary.ContratRecord) (*primary.Contrat, error) {
	fin, err := parseDate(r.DateFin, "date_fin")
	if err != nil {
		return nil, err
	}
	return &primary.Contrat{
		ID:          r.ID,
		Numero:      r.Numero,
		ClientID:    r.ClientID,
		ContactID:   r.ContactID,
		DateDebut:   r.DateDebut,
		DateFin:     r.DateFin,
		Montant:     r.Montant,
		Description: r.Description,
		Statut:      contrat.ComputeStatut(r.Resilie, fin, s.now()),
	}, nil
}
