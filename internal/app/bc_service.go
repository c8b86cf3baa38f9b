package app

import (
	"context"

	"github.com/example/budgetctl/internal/core/bc"
	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/core/validate"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// BonCommandeServiceImpl implements the BonCommandeService interface.
type BonCommandeServiceImpl struct {
	bcRepo     secondary.BonCommandeRepository
	budgetRepo secondary.BudgetRepository
}

// NewBonCommandeService creates a new BonCommandeService with injected
// dependencies.
func NewBonCommandeService(
	bcRepo secondary.BonCommandeRepository,
	budgetRepo secondary.BudgetRepository,
) *BonCommandeServiceImpl {
	return &BonCommandeServiceImpl{
		bcRepo:     bcRepo,
		budgetRepo: budgetRepo,
	}
}

// CreateBonCommande creates a draft BC with the next sequential numero
// for the budget's year.
func (s *BonCommandeServiceImpl) CreateBonCommande(ctx context.Context, req primary.CreateBonCommandeRequest) (*primary.BonCommande, error) {
	if v := validate.OneOf(req.Type, "Type", bc.Types); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.MontantPositif(req.Montant); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	// The budget carries the year its numero is drawn from.
	budgetRec, err := s.budgetRepo.GetByID(ctx, req.BudgetID)
	if err != nil {
		return nil, err
	}

	if req.ContratID != 0 {
		exists, err := s.bcRepo.ContratExists(ctx, req.ContratID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fault.New(fault.KindNotFound, "Contrat %d introuvable", req.ContratID)
		}
	}

	last, err := s.bcRepo.LastNumeroForYear(ctx, budgetRec.Annee)
	if err != nil {
		return nil, err
	}
	numero := bc.NextNumero(budgetRec.Annee, last)

	id, err := s.bcRepo.Create(ctx, &secondary.BonCommandeRecord{
		Numero:           numero,
		BudgetID:         req.BudgetID,
		ContratID:        req.ContratID,
		Type:             req.Type,
		ServiceDemandeur: req.ServiceDemandeur,
		Montant:          req.Montant,
		Description:      req.Description,
	})
	if err != nil {
		return nil, err
	}

	return s.GetBonCommande(ctx, id)
}

// GetBonCommande retrieves a BC by id.
func (s *BonCommandeServiceImpl) GetBonCommande(ctx context.Context, id int64) (*primary.BonCommande, error) {
	record, err := s.bcRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToBonCommande(record), nil
}

// GetBonCommandeByNumero retrieves a BC by its numero.
func (s *BonCommandeServiceImpl) GetBonCommandeByNumero(ctx context.Context, numero string) (*primary.BonCommande, error) {
	if v := validate.NumeroBC(numero); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	record, err := s.bcRepo.GetByNumero(ctx, numero)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fault.New(fault.KindNotFound, "Bon de commande %s introuvable", numero)
	}
	return recordToBonCommande(record), nil
}

// ListBonsCommande lists BCs with optional filters.
func (s *BonCommandeServiceImpl) ListBonsCommande(ctx context.Context, filters primary.BonCommandeFilters) ([]*primary.BonCommande, error) {
	records, err := s.bcRepo.List(ctx, secondary.BonCommandeFilters{
		Valide:   filters.Valide,
		BudgetID: filters.BudgetID,
		Annee:    filters.Annee,
	})
	if err != nil {
		return nil, err
	}

	bcs := make([]*primary.BonCommande, len(records))
	for i, r := range records {
		bcs[i] = recordToBonCommande(r)
	}
	return bcs, nil
}

// UpdateBonCommande updates a draft BC. Validated BCs are immutable.
func (s *BonCommandeServiceImpl) UpdateBonCommande(ctx context.Context, req primary.UpdateBonCommandeRequest) (*primary.BonCommande, error) {
	record, err := s.bcRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	guard := bc.CanUpdate(bc.StateContext{Numero: record.Numero, Valide: record.Valide})
	if !guard.Allowed {
		return nil, fault.New(fault.KindImmutable, "%s", guard.Reason)
	}

	if req.Type != nil {
		if v := validate.OneOf(*req.Type, "Type", bc.Types); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.Type = *req.Type
	}
	if req.Montant != nil {
		if v := validate.MontantPositif(*req.Montant); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.Montant = *req.Montant
	}
	if req.ContratID != nil {
		if *req.ContratID != 0 {
			exists, err := s.bcRepo.ContratExists(ctx, *req.ContratID)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, fault.New(fault.KindNotFound, "Contrat %d introuvable", *req.ContratID)
			}
		}
		record.ContratID = *req.ContratID
	}
	if req.ServiceDemandeur != nil {
		record.ServiceDemandeur = *req.ServiceDemandeur
	}
	if req.Description != nil {
		record.Description = *req.Description
	}

	if err := s.bcRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.GetBonCommande(ctx, req.ID)
}

// ValidateBonCommande validates a draft BC, consuming its amount from
// the owning budget. The availability check and the flip run in one
// store transaction.
func (s *BonCommandeServiceImpl) ValidateBonCommande(ctx context.Context, id int64) (*primary.BonCommande, error) {
	if err := s.bcRepo.Validate(ctx, id); err != nil {
		return nil, err
	}
	return s.GetBonCommande(ctx, id)
}

// DeleteBonCommande deletes a draft BC. Validated BCs are immutable.
func (s *BonCommandeServiceImpl) DeleteBonCommande(ctx context.Context, id int64) error {
	record, err := s.bcRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	guard := bc.CanDelete(bc.StateContext{Numero: record.Numero, Valide: record.Valide})
	if !guard.Allowed {
		return fault.New(fault.KindImmutable, "%s", guard.Reason)
	}

	return s.bcRepo.Delete(ctx, id)
}

// recordToBonCommande converts a storage record to the primary port type.
func recordToBonCommande(r *secondary.BonCommandeRecord) *primary.BonCommande {
	return &primary.BonCommande{
		ID:               r.ID,
		Numero:           r.Numero,
		BudgetID:         r.BudgetID,
		ContratID:        r.ContratID,
		Type:             r.Type,
		ServiceDemandeur: r.ServiceDemandeur,
		Montant:          r.Montant,
		Valide:           r.Valide,
		DateCreation:     r.DateCreation,
		DateValidation:   r.DateValidation,
		Description:      r.Description,
	}
}
