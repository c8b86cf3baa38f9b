package app

import (
	"context"
	"time"

	"github.com/example/budgetctl/internal/core/budget"
	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/core/validate"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// BudgetServiceImpl implements the BudgetService interface.
type BudgetServiceImpl struct {
	budgetRepo secondary.BudgetRepository
	bcRepo     secondary.BonCommandeRepository
	now        func() time.Time
}

// NewBudgetService creates a new BudgetService with injected dependencies.
func NewBudgetService(
	budgetRepo secondary.BudgetRepository,
	bcRepo secondary.BonCommandeRepository,
) *BudgetServiceImpl {
	return &BudgetServiceImpl{
		budgetRepo: budgetRepo,
		bcRepo:     bcRepo,
		now:        time.Now,
	}
}

// CreateBudget creates a new budget envelope for a (year, nature).
func (s *BudgetServiceImpl) CreateBudget(ctx context.Context, req primary.CreateBudgetRequest) (*primary.Budget, error) {
	if v := validate.Annee(req.Annee, s.now()); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.OneOf(req.Nature, "Nature", budget.Natures); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.Montant(req.MontantInitial); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	existing, err := s.budgetRepo.GetByAnneeNature(ctx, req.Annee, req.Nature)
	if err != nil {
		return nil, err
	}
	guard := budget.CanCreate(budget.CreateContext{
		Annee:         req.Annee,
		Nature:        req.Nature,
		AlreadyExists: existing != nil,
	})
	if !guard.Allowed {
		return nil, fault.New(fault.KindDuplicate, "%s", guard.Reason)
	}

	id, err := s.budgetRepo.Create(ctx, &secondary.BudgetRecord{
		Annee:            req.Annee,
		Nature:           req.Nature,
		MontantInitial:   req.MontantInitial,
		ServiceDemandeur: req.ServiceDemandeur,
	})
	if err != nil {
		return nil, err
	}

	return s.GetBudget(ctx, id)
}

// GetBudget retrieves a budget by id.
func (s *BudgetServiceImpl) GetBudget(ctx context.Context, id int64) (*primary.Budget, error) {
	record, err := s.budgetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToBudget(record), nil
}

// GetBudgetByAnneeNature retrieves the budget for a (year, nature).
func (s *BudgetServiceImpl) GetBudgetByAnneeNature(ctx context.Context, annee int, nature string) (*primary.Budget, error) {
	record, err := s.budgetRepo.GetByAnneeNature(ctx, annee, nature)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fault.New(fault.KindNotFound, "Aucun budget %s pour %d", nature, annee)
	}
	return recordToBudget(record), nil
}

// ListBudgets lists budgets with optional filters.
func (s *BudgetServiceImpl) ListBudgets(ctx context.Context, filters primary.BudgetFilters) ([]*primary.Budget, error) {
	records, err := s.budgetRepo.List(ctx, secondary.BudgetFilters{
		Annee:  filters.Annee,
		Nature: filters.Nature,
	})
	if err != nil {
		return nil, err
	}

	budgets := make([]*primary.Budget, len(records))
	for i, r := range records {
		budgets[i] = recordToBudget(r)
	}
	return budgets, nil
}

// UpdateBudget updates the allocation and descriptive fields of a budget.
func (s *BudgetServiceImpl) UpdateBudget(ctx context.Context, req primary.UpdateBudgetRequest) (*primary.Budget, error) {
	record, err := s.budgetRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.MontantInitial != nil {
		if v := validate.Montant(*req.MontantInitial); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		// Shrinking below the consumed amount would drive the available
		// balance negative.
		if *req.MontantInitial < record.MontantConsomme {
			return nil, fault.New(fault.KindValidation,
				"La dotation (%.2f €) ne peut pas être inférieure au montant déjà consommé (%.2f €)",
				*req.MontantInitial, record.MontantConsomme)
		}
		record.MontantInitial = *req.MontantInitial
	}
	if req.ServiceDemandeur != nil {
		record.ServiceDemandeur = *req.ServiceDemandeur
	}

	if err := s.budgetRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.GetBudget(ctx, req.ID)
}

// DeleteBudget deletes a budget, guarded by its BC dependents.
func (s *BudgetServiceImpl) DeleteBudget(ctx context.Context, id int64, force bool) (*primary.DeleteBudgetResult, error) {
	record, err := s.budgetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	validated, draft, err := s.budgetRepo.CountBCs(ctx, id)
	if err != nil {
		return nil, err
	}

	guard := budget.CanDelete(budget.DeleteContext{
		Annee:             record.Annee,
		Nature:            record.Nature,
		ValidatedBCs:      validated,
		DraftBCs:          draft,
		ForceDeleteDrafts: force,
	})
	if !guard.Allowed {
		return nil, fault.New(fault.KindIntegrity, "%s", guard.Reason)
	}

	result := &primary.DeleteBudgetResult{}
	if draft > 0 {
		deleted, err := s.budgetRepo.DeleteDraftBCs(ctx, id)
		if err != nil {
			return nil, err
		}
		result.DraftBCsDeleted = deleted
	}

	if err := s.budgetRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return result, nil
}

// RecomputeBudget rebuilds a budget's ledger columns from its validated
// BCs.
func (s *BudgetServiceImpl) RecomputeBudget(ctx context.Context, id int64) (*primary.Budget, error) {
	if err := s.budgetRepo.RecomputeAvailable(ctx, id); err != nil {
		return nil, err
	}
	return s.GetBudget(ctx, id)
}

// CarryOver copies each nature's remaining available amount into the
// target year's initial allocation, skipping natures already budgeted
// there.
func (s *BudgetServiceImpl) CarryOver(ctx context.Context, fromAnnee, toAnnee int) (*primary.CarryOverResult, error) {
	if v := validate.Annee(fromAnnee, s.now()); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if toAnnee == 0 {
		toAnnee = fromAnnee + 1
	}
	if v := validate.Annee(toAnnee, s.now()); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if toAnnee == fromAnnee {
		return nil, fault.New(fault.KindValidation, "L'année cible du report doit différer de l'année source")
	}

	sourceRecords, err := s.budgetRepo.List(ctx, secondary.BudgetFilters{Annee: fromAnnee})
	if err != nil {
		return nil, err
	}
	if len(sourceRecords) == 0 {
		return nil, fault.New(fault.KindNotFound, "Aucun budget pour %d", fromAnnee)
	}

	result := &primary.CarryOverResult{FromAnnee: fromAnnee, ToAnnee: toAnnee}

	sources := make([]budget.CarryOverSource, 0, len(sourceRecords))
	for _, src := range sourceRecords {
		existing, err := s.budgetRepo.GetByAnneeNature(ctx, toAnnee, src.Nature)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped = append(result.Skipped, src.Nature)
		}
		sources = append(sources, budget.CarryOverSource{
			Nature:            src.Nature,
			MontantDisponible: src.MontantDisponible,
			ServiceDemandeur:  src.ServiceDemandeur,
			ExistsInTarget:    existing != nil,
		})
	}

	for _, entry := range budget.PlanCarryOver(sources) {
		id, err := s.budgetRepo.Create(ctx, &secondary.BudgetRecord{
			Annee:            toAnnee,
			Nature:           entry.Nature,
			MontantInitial:   entry.MontantInitial,
			ServiceDemandeur: entry.ServiceDemandeur,
		})
		if err != nil {
			return nil, err
		}
		created, err := s.GetBudget(ctx, id)
		if err != nil {
			return nil, err
		}
		result.Created = append(result.Created, created)
	}

	return result, nil
}

// Statistics aggregates the year's budgets and BCs per nature.
func (s *BudgetServiceImpl) Statistics(ctx context.Context, annee int) (*primary.BudgetStatistics, error) {
	budgets, err := s.budgetRepo.List(ctx, secondary.BudgetFilters{Annee: annee})
	if err != nil {
		return nil, err
	}

	bcStats, err := s.bcRepo.StatsForYear(ctx, annee)
	if err != nil {
		return nil, err
	}

	stats := &primary.BudgetStatistics{Annee: annee}
	perNature := map[string]*primary.NatureStatistics{}

	for _, b := range budgets {
		ns := &primary.NatureStatistics{
			Nature:            b.Nature,
			MontantInitial:    b.MontantInitial,
			MontantConsomme:   b.MontantConsomme,
			MontantDisponible: b.MontantDisponible,
		}
		perNature[b.Nature] = ns
		stats.ParNature = append(stats.ParNature, ns)
		stats.TotalInitial += b.MontantInitial
		stats.TotalConsomme += b.MontantConsomme
	}
	stats.TotalDisponible = budget.Available(stats.TotalInitial, stats.TotalConsomme)

	for _, stat := range bcStats {
		ns := perNature[stat.Nature]
		if stat.Valide {
			stats.BCsValides += stat.Count
			if ns != nil {
				ns.BCsValides += stat.Count
			}
		} else {
			stats.BCsEnAttente += stat.Count
			stats.MontantEnAttente += stat.TotalMontant
			if ns != nil {
				ns.BCsEnAttente += stat.Count
			}
		}
	}

	return stats, nil
}

// recordToBudget converts a storage record to the primary port type.
func recordToBudget(r *secondary.BudgetRecord) *primary.Budget {
	return &primary.Budget{
		ID:                r.ID,
		Annee:             r.Annee,
		Nature:            r.Nature,
		MontantInitial:    r.MontantInitial,
		MontantConsomme:   r.MontantConsomme,
		MontantDisponible: r.MontantDisponible,
		ServiceDemandeur:  r.ServiceDemandeur,
	}
}
